package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zatekoja/venue-explorer/internal/adapters/cache"
	"github.com/zatekoja/venue-explorer/internal/adapters/database"
	"github.com/zatekoja/venue-explorer/internal/adapters/search"
	"github.com/zatekoja/venue-explorer/internal/api/handlers"
	"github.com/zatekoja/venue-explorer/internal/api/routes"
	"github.com/zatekoja/venue-explorer/internal/application/services"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/redis"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/observability"
	"github.com/zatekoja/venue-explorer/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry is optional; the service runs without it
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized")

	// Redis is optional; without it city reads skip the cache layer
	var cachePinger handlers.Pinger
	cityRepo := database.NewCityAdapter(pgClient)
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
	} else {
		defer redisClient.Close()
		cachePinger = redisClient
		cityRepo = database.NewCachedCityAdapter(cityRepo, cache.NewRedisAdapter(redisClient), metrics)
		logger.Info().Msg("Redis client initialized, city reads cached")
	}

	venueRepo := database.NewVenueAdapter(pgClient)
	artistRepo := database.NewArtistAdapter(pgClient)
	eventRepo := database.NewEventAdapter(pgClient)
	mediaRepo := database.NewMediaAdapter(pgClient)

	// Typesense is optional; without it nearby venue lookups fall back
	// to database bounding-box queries
	var geoIndex repositories.VenueGeoIndex
	if cfg.Typesense.URL != "" {
		typesenseClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			logger.Warn().Err(err).Msg("Typesense unavailable, nearby search will use the database")
		} else {
			adapter := search.NewTypesenseAdapter(typesenseClient)
			if err := adapter.InitSchema(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to init Typesense schema")
			}
			geoIndex = adapter
			logger.Info().Msg("Typesense geo index initialized")
		}
	}

	searchService := services.NewSearchService(venueRepo, artistRepo, eventRepo, geoIndex, metrics)
	venueService := services.NewVenueService(venueRepo, eventRepo)
	artistService := services.NewArtistService(artistRepo, eventRepo, mediaRepo)
	eventService := services.NewEventService(eventRepo)
	cityService := services.NewCityService(cityRepo, venueRepo)

	router := routes.NewRouter(
		handlers.NewSearchHandler(searchService),
		handlers.NewVenueHandler(venueService),
		handlers.NewArtistHandler(artistService),
		handlers.NewEventHandler(eventService),
		handlers.NewCityHandler(cityService),
		handlers.NewHealthHandler(pgClient, cachePinger),
		metrics,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}
