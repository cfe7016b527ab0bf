package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/zatekoja/venue-explorer/internal/adapters/database"
	"github.com/zatekoja/venue-explorer/internal/adapters/search"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/venue-explorer/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()
	db := goqu.New("postgres", pgClient.DB())

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				media,
				event_artists,
				events,
				artists,
				venues,
				cities
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	cities := []goqu.Record{
		{"name": "Berlin", "state_province": "Berlin", "country": "Germany", "latitude": 52.5200, "longitude": 13.4050},
		{"name": "Hamburg", "state_province": "Hamburg", "country": "Germany", "latitude": 53.5511, "longitude": 9.9937},
		{"name": "Austin", "state_province": "Texas", "country": "United States", "latitude": 30.2672, "longitude": -97.7431},
	}
	mustInsert(ctx, pgClient, db, "cities", cities)

	venues := []goqu.Record{
		{"name": "Berghain", "city_id": 1, "address": "Am Wriezener Bahnhof", "latitude": 52.5111, "longitude": 13.4430, "capacity": 1500, "website": "https://berghain.berlin", "prosper_rank": 95, "genres": pq.Array([]string{"techno", "electronic"})},
		{"name": "Quasimodo", "city_id": 1, "address": "Kantstrasse 12a", "latitude": 52.5057, "longitude": 13.3229, "capacity": 300, "website": "", "prosper_rank": 70, "genres": pq.Array([]string{"jazz", "blues"})},
		{"name": "Molotow", "city_id": 2, "address": "Nobistor 14", "latitude": 53.5497, "longitude": 9.9634, "capacity": 400, "website": "https://molotowclub.com", "prosper_rank": 65, "genres": pq.Array([]string{"indie", "rock"})},
		{"name": "Mohawk", "city_id": 3, "address": "912 Red River St", "latitude": 30.2695, "longitude": -97.7365, "capacity": 900, "website": "https://mohawkaustin.com", "prosper_rank": 80, "genres": pq.Array([]string{"rock", "indie", "punk"})},
	}
	mustInsert(ctx, pgClient, db, "venues", venues)

	artists := []goqu.Record{
		{"name": "Marcel Dettmann", "genres": pq.Array([]string{"techno"}), "photo_url": "https://img.example/dettmann.jpg", "profile_bio": "Berlin techno stalwart."},
		{"name": "Kamasi Washington", "genres": pq.Array([]string{"jazz"}), "photo_url": "https://img.example/kamasi.jpg", "profile_bio": "Saxophonist and bandleader."},
		{"name": "The Black Angels", "genres": pq.Array([]string{"psych", "rock"}), "photo_url": "", "profile_bio": "Austin psych rock."},
	}
	mustInsert(ctx, pgClient, db, "artists", artists)

	now := time.Now().UTC()
	events := []goqu.Record{
		{"venue_id": 1, "title": "Klubnacht", "description": "Marathon techno night.", "event_datetime": now.AddDate(0, 0, 14), "ticket_url": "https://tickets.example/klubnacht", "external_id": "evt-001"},
		{"venue_id": 2, "title": "Jazz Evening", "description": "An intimate jazz set.", "event_datetime": now.AddDate(0, 0, 7), "ticket_url": "", "external_id": "evt-002"},
		{"venue_id": 4, "title": "Psych Fest Warmup", "description": "Local psych showcase.", "event_datetime": now.AddDate(0, 1, 0), "ticket_url": "https://tickets.example/psych", "external_id": "evt-003"},
	}
	mustInsert(ctx, pgClient, db, "events", events)

	eventArtists := []goqu.Record{
		{"event_id": 1, "artist_id": 1},
		{"event_id": 2, "artist_id": 2},
		{"event_id": 3, "artist_id": 3},
	}
	mustInsert(ctx, pgClient, db, "event_artists", eventArtists)

	media := []goqu.Record{
		{"artist_id": 1, "type": "photo", "url": "https://img.example/dettmann-live.jpg"},
		{"artist_id": 2, "type": "video", "url": "https://video.example/kamasi-set.mp4"},
		{"artist_id": 2, "type": "photo", "url": "https://img.example/kamasi-stage.jpg"},
	}
	mustInsert(ctx, pgClient, db, "media", media)

	log.Println("Seed data inserted")

	if cfg.Typesense.URL == "" {
		return
	}
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Typesense unavailable, skipping venue indexing: %v", err)
		return
	}
	geoIndex := search.NewTypesenseAdapter(tsClient)
	if err := geoIndex.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to init Typesense schema: %v", err)
	}

	venueRepo := database.NewVenueAdapter(pgClient)
	seeded, err := venueRepo.List(ctx, 100, 0)
	if err != nil {
		log.Fatalf("Failed to list venues: %v", err)
	}
	for _, venue := range seeded {
		if err := geoIndex.Index(ctx, venue); err != nil {
			log.Printf("Failed to index venue %d: %v", venue.ID, err)
		}
	}
	log.Printf("Indexed %d venues into Typesense", len(seeded))
}

func mustInsert(ctx context.Context, client *postgres.Client, db *goqu.Database, table string, rows []goqu.Record) {
	query, args, err := db.Insert(table).Rows(rows).ToSQL()
	if err != nil {
		log.Fatalf("Failed to build %s insert: %v", table, err)
	}
	if _, err := client.DB().ExecContext(ctx, query, args...); err != nil {
		log.Fatalf("Failed to seed %s: %v", table, err)
	}
}
