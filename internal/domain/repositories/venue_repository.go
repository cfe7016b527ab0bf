package repositories

import (
	"context"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/pkg/geo"
)

// VenueSearchFilter defines the structural predicates for a venue
// candidate fetch. All set fields are AND-composed and pushed into the
// store query; Term is a broad text/genre predicate, exact ranking
// happens in the search core afterwards.
type VenueSearchFilter struct {
	Term           string
	Genres         []string
	StateProvinces []string
	Countries      []string
	CapacityMin    *int
	CapacityMax    *int
	ProsperRankMin *int
	Bounds         *geo.Bounds
	Limit          int
}

// VenueRepository defines the interface for venue data operations
type VenueRepository interface {
	// GetByID retrieves a venue with its city joined
	GetByID(ctx context.Context, id int64) (*entities.Venue, error)

	// ListByCity retrieves venues in a city with the total match count
	ListByCity(ctx context.Context, cityID int64, limit, offset int) ([]*entities.Venue, int, error)

	// List retrieves venues in id order, used for index backfills
	List(ctx context.Context, limit, offset int) ([]*entities.Venue, error)

	// SearchCandidates fetches the filtered candidate pool, capped at
	// filter.Limit rows
	SearchCandidates(ctx context.Context, filter VenueSearchFilter) ([]*entities.Venue, error)

	// FacetCounts computes genre/state/country counts over the
	// filtered (but unranked) venue pool
	FacetCounts(ctx context.Context, filter VenueSearchFilter) (*entities.Aggregations, error)
}

// VenueGeoIndex is an optional external geo index over venues (e.g.
// Typesense). Nearby search prefers it when configured and falls back
// to the database otherwise.
type VenueGeoIndex interface {
	// FindNearby returns venues within radiusKm of center
	FindNearby(ctx context.Context, center geo.Coordinate, radiusKm float64, limit int) ([]*entities.Venue, error)

	// Index upserts a venue document
	Index(ctx context.Context, venue *entities.Venue) error
}
