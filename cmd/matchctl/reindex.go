package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/database"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/search"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/referralcoordination/backend/pkg/config"
)

func newReindexCmd() *cobra.Command {
	var (
		reset    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Push every stored provider into the Typesense index",
		Long: `Copies the provider table into Typesense. With --interval the command
keeps running and reindexes on that period until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval < 0 {
				return errors.New("interval must not be negative")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Typesense.Enabled {
				return errors.New("TYPESENSE_ENABLED is not set")
			}

			pgClient, err := postgres.NewClient(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
			}
			defer pgClient.Close()

			tsClient, err := typesense.NewClient(&cfg.Typesense)
			if err != nil {
				return fmt.Errorf("failed to connect to Typesense: %w", err)
			}

			service := services.NewProviderService(
				database.NewProviderAdapter(pgClient),
				search.NewTypesenseAdapter(tsClient),
				nil,
			)

			ctx := cmd.Context()
			for {
				if err := reindexOnce(ctx, cmd.OutOrStdout(), tsClient, service, reset); err != nil {
					if interval == 0 {
						return err
					}
					log.Error().Err(err).Msg("Reindex failed")
				}
				if interval == 0 {
					return nil
				}
				reset = false

				log.Info().Dur("interval", interval).Msg("Waiting for next reindex")
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(interval):
				}
			}
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop the collection before the first reindex")
	cmd.Flags().DurationVar(&interval, "interval", 0, "repeat period, e.g. 6h; 0 runs once")
	return cmd
}

func reindexOnce(ctx context.Context, out io.Writer, tsClient *typesense.Client, service *services.ProviderService, reset bool) error {
	if reset {
		if err := tsClient.DropSchema(ctx); err != nil {
			return err
		}
	}

	indexed, err := service.Reindex(ctx)
	if err != nil {
		return fmt.Errorf("reindex stopped after %d providers: %w", indexed, err)
	}
	fmt.Fprintf(out, "indexed %d providers\n", indexed)
	return nil
}
