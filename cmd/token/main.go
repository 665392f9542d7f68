package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/gym-occupancy/internal/config"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/services"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var client, envFile string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Issue a bearer token the scraper uses for POST /api/v1/samples.",
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

			if ttl == 0 {
				ttl = cfg.IngestTokenTTL
			}

			token, err := issueToken(cfg, client, ttl)
			if err != nil {
				return err
			}

			log.Info("token issued", "client", client, "expires", time.Now().Add(ttl).Format(time.RFC3339))
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&client, "client", "c", "scraper", "name recorded as the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to INGEST_TOKEN_TTL)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load before the environment")

	return cmd
}

func issueToken(cfg *config.Config, client string, ttl time.Duration) (string, error) {
	if cfg.IngestTokenSecret == "" {
		return "", errors.New("INGEST_TOKEN_SECRET is not set")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token lifetime must be positive, got %s", ttl)
	}
	return services.NewTokenService(cfg.IngestTokenSecret, cfg.IngestTokenIssuer, ttl).GenerateToken(client)
}
