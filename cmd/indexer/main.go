package main

import (
	"context"
	"fmt"
	"os"

	"github.com/zatekoja/venue-explorer/internal/adapters/database"
	"github.com/zatekoja/venue-explorer/internal/adapters/search"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/observability"
	"github.com/zatekoja/venue-explorer/pkg/config"
)

const batchSize = 200

// Backfills the Typesense venue collection from the database. Safe to
// re-run; documents are upserted.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("venue-explorer-indexer", cfg.Env)
	logger := observability.GetLogger()

	if cfg.Typesense.URL == "" {
		logger.Fatal().Msg("TYPESENSE_URL is required for indexing")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Typesense client")
	}

	ctx := context.Background()
	geoIndex := search.NewTypesenseAdapter(typesenseClient)
	if err := geoIndex.InitSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to init Typesense schema")
	}

	venueRepo := database.NewVenueAdapter(pgClient)

	indexed := 0
	for offset := 0; ; offset += batchSize {
		venues, err := venueRepo.List(ctx, batchSize, offset)
		if err != nil {
			logger.Fatal().Err(err).Int("offset", offset).Msg("failed to list venues")
		}
		if len(venues) == 0 {
			break
		}

		for _, venue := range venues {
			if err := geoIndex.Index(ctx, venue); err != nil {
				logger.Error().Err(err).Int64("venue_id", venue.ID).Msg("failed to index venue")
				continue
			}
			indexed++
		}
		logger.Info().Int("indexed", indexed).Msg("batch complete")
	}

	logger.Info().Int("indexed", indexed).Msg("backfill finished")
}
