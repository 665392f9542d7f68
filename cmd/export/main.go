package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/gym-occupancy/internal/adapters/repository"
	"github.com/comitanigiacomo/gym-occupancy/internal/config"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var out, envFile string

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Dump every gym occupancy sample, oldest first, to a JSON file.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var envFiles []string
			if envFile != "" {
				envFiles = append(envFiles, envFile)
			}

			cfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}
			log.SetLevel(cfg.LogLevel)

			db, err := repository.ConnectPostgres(cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repository.NewPostgresSampleRepository(db)

			n, err := exportToFile(cmd.Context(), repo, out)
			if err != nil {
				log.Error("export failed", "err", err)
				return err
			}

			stored, err := checkExportCount(cmd.Context(), repo, n)
			if err != nil {
				return err
			}

			log.Info("export complete", "samples", n, "stored", stored, "file", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "data.json", "destination file")
	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load before the environment")

	return cmd
}

// checkExportCount compares the rows written with the table size. Rows the
// scraper inserts after the read only produce a warning; a table smaller
// than the export means the file cannot be trusted.
func checkExportCount(ctx context.Context, repo domain.SampleRepository, written int) (int, error) {
	stored, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting stored samples: %w", err)
	}

	switch {
	case stored < written:
		return stored, fmt.Errorf("export wrote %d samples but the table holds %d", written, stored)
	case stored > written:
		log.Warn("samples were added during the export", "written", written, "stored", stored)
	}
	return stored, nil
}

// exportToFile writes to a temporary sibling first so an interrupted run
// never leaves a truncated file behind.
func exportToFile(ctx context.Context, repo domain.SampleRepository, path string) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.json")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := services.NewExportService(repo).Export(ctx, tmp)
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("moving export into place: %w", err)
	}
	return n, nil
}
