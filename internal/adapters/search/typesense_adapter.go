package search

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
	tsclient "github.com/zatekoja/venue-explorer/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/venue-explorer/pkg/geo"
)

// TypesenseAdapter implements the venue geo index on Typesense. It is
// an optional fast path for nearby search; documents carry only the
// fields that path needs.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements VenueGeoIndex
var _ repositories.VenueGeoIndex = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the venues collection exists before any documents
// are written or queried
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// Index upserts a venue document
func (a *TypesenseAdapter) Index(ctx context.Context, venue *entities.Venue) error {
	document := map[string]interface{}{
		"id":           strconv.FormatInt(venue.ID, 10),
		"name":         venue.Name,
		"location":     []float64{venue.Coordinates.Latitude, venue.Coordinates.Longitude},
		"city_id":      venue.CityID,
		"genres":       venue.Genres,
		"prosper_rank": venue.ProsperRank,
		"created_at":   venue.CreatedAt.Unix(),
	}
	if venue.City != nil {
		document["state_province"] = venue.City.StateProvince
		document["country"] = venue.City.Country
	}
	if venue.Capacity != nil {
		document["capacity"] = *venue.Capacity
	}

	_, err := a.client.Client().Collection(tsclient.VenuesCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index venue: %w", err)
	}
	return nil
}

// FindNearby returns venues within radiusKm of center, nearest first
func (a *TypesenseAdapter) FindNearby(ctx context.Context, center geo.Coordinate, radiusKm float64, limit int) ([]*entities.Venue, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String("*"),
		QueryBy: pointer.String("name"),
		FilterBy: pointer.String(fmt.Sprintf(
			"location:(%f, %f, %f km)",
			center.Latitude, center.Longitude, radiusKm,
		)),
		SortBy:  pointer.String(fmt.Sprintf("location(%f, %f):asc", center.Latitude, center.Longitude)),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.VenuesCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}

	venues := []*entities.Venue{}
	if result.Hits == nil {
		return venues, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document
		venue := &entities.Venue{}

		if idStr, ok := doc["id"].(string); ok {
			venue.ID, _ = strconv.ParseInt(idStr, 10, 64)
		}
		if name, ok := doc["name"].(string); ok {
			venue.Name = name
		}
		if loc, ok := doc["location"].([]interface{}); ok && len(loc) == 2 {
			venue.Coordinates.Latitude, _ = loc[0].(float64)
			venue.Coordinates.Longitude, _ = loc[1].(float64)
		}
		if cityID, ok := doc["city_id"].(float64); ok {
			venue.CityID = int64(cityID)
		}
		if rank, ok := doc["prosper_rank"].(float64); ok {
			venue.ProsperRank = int(rank)
		}
		if capacity, ok := doc["capacity"].(float64); ok {
			c := int(capacity)
			venue.Capacity = &c
		}
		if genres, ok := doc["genres"].([]interface{}); ok {
			for _, g := range genres {
				if s, ok := g.(string); ok {
					venue.Genres = append(venue.Genres, s)
				}
			}
		}
		if createdAt, ok := doc["created_at"].(float64); ok {
			venue.CreatedAt = time.Unix(int64(createdAt), 0).UTC()
		}

		// State/country ride along for facet continuity even though the
		// nearby path does not aggregate.
		city := &entities.City{ID: venue.CityID}
		if state, ok := doc["state_province"].(string); ok {
			city.StateProvince = state
		}
		if country, ok := doc["country"].(string); ok {
			city.Country = country
		}
		venue.City = city

		venues = append(venues, venue)
	}

	return venues, nil
}
