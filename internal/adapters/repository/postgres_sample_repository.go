package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

var _ domain.SampleRepository = (*PostgresSampleRepository)(nil)

// The table is owned by the scraper; this service only reads it and, for
// ingestion, appends to it.
const sampleColumns = `id, "timestamp", occupancy_level`

type PostgresSampleRepository struct {
	db *sqlx.DB
}

func NewPostgresSampleRepository(db *sqlx.DB) *PostgresSampleRepository {
	return &PostgresSampleRepository{db: db}
}

func (r *PostgresSampleRepository) ListAll(ctx context.Context) ([]domain.Sample, error) {
	samples := []domain.Sample{}

	query := `SELECT ` + sampleColumns + ` FROM gym_occupancy ORDER BY "timestamp" ASC, id ASC`

	if err := r.db.SelectContext(ctx, &samples, query); err != nil {
		return nil, mapPgError(err)
	}
	return samples, nil
}

func (r *PostgresSampleRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Sample, error) {
	samples := []domain.Sample{}

	query := `
		SELECT ` + sampleColumns + ` FROM gym_occupancy
		WHERE "timestamp" >= $1
		ORDER BY "timestamp" ASC, id ASC`

	if err := r.db.SelectContext(ctx, &samples, query, since); err != nil {
		return nil, mapPgError(err)
	}
	return samples, nil
}

func (r *PostgresSampleRepository) Create(ctx context.Context, sample *domain.Sample) error {
	query := `
		INSERT INTO gym_occupancy ("timestamp", occupancy_level)
		VALUES (:timestamp, :occupancy_level)
		RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, sample)
	if err != nil {
		return mapPgError(err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&sample.ID); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *PostgresSampleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM gym_occupancy"); err != nil {
		return 0, mapPgError(err)
	}
	return count, nil
}

// mapPgError translates server error codes from either driver (pgx in
// production, lib/pq in the integration tests) into domain errors.
func mapPgError(err error) error {
	var code, msg string

	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		code, msg = pgErr.Code, pgErr.Message
	case errors.As(err, &pqErr):
		code, msg = string(pqErr.Code), pqErr.Message
	default:
		return err
	}

	switch code {
	case "42P01", "3D000":
		return fmt.Errorf("%w: %s", domain.ErrStorageUnavailable, msg)
	case "23514":
		return fmt.Errorf("%w: %s", domain.ErrInvalidSample, msg)
	}
	return err
}
