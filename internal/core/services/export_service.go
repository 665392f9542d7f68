package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

// ExportTimeLayout matches the millisecond UTC form downstream consumers of
// data.json already parse.
const ExportTimeLayout = "2006-01-02T15:04:05.000Z"

type exportRecord struct {
	ID             int64  `json:"id"`
	Timestamp      string `json:"timestamp"`
	OccupancyLevel int    `json:"occupancy_level"`
}

type ExportService struct {
	repo domain.SampleRepository
}

func NewExportService(repo domain.SampleRepository) *ExportService {
	return &ExportService{repo: repo}
}

// Export writes every stored sample, oldest first, to w as a single JSON
// array with no trailing newline and returns how many were written.
func (s *ExportService) Export(ctx context.Context, w io.Writer) (int, error) {
	samples, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading samples for export: %w", err)
	}

	records := lo.Map(samples, func(sample domain.Sample, _ int) exportRecord {
		return exportRecord{
			ID:             sample.ID,
			Timestamp:      sample.Timestamp.UTC().Format(ExportTimeLayout),
			OccupancyLevel: sample.OccupancyLevel,
		}
	})

	data, err := json.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("encoding export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("writing export: %w", err)
	}

	return len(records), nil
}
