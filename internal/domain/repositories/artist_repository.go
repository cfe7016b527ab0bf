package repositories

import (
	"context"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// ArtistSearchFilter defines the structural predicates for an artist
// candidate fetch
type ArtistSearchFilter struct {
	Term     string
	Genres   []string
	HasBio   *bool
	HasPhoto *bool
	Limit    int
}

// ArtistRepository defines the interface for artist data operations
type ArtistRepository interface {
	// GetByID retrieves an artist by ID
	GetByID(ctx context.Context, id int64) (*entities.Artist, error)

	// SearchCandidates fetches the filtered candidate pool, capped at
	// filter.Limit rows
	SearchCandidates(ctx context.Context, filter ArtistSearchFilter) ([]*entities.Artist, error)

	// GenreFacetCounts computes genre counts over the filtered (but
	// unranked) artist pool
	GenreFacetCounts(ctx context.Context, filter ArtistSearchFilter) (entities.FacetCounts, error)
}
