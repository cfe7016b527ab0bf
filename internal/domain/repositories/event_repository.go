package repositories

import (
	"context"
	"time"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/pkg/geo"
)

// EventSearchFilter defines the structural predicates for an event
// candidate fetch. Term matches title, description, or an associated
// artist name; Bounds locates events through their venue.
type EventSearchFilter struct {
	Term       string
	StartDate  *time.Time
	EndDate    *time.Time
	HasTickets *bool
	Bounds     *geo.Bounds
	Limit      int
}

// EventRepository defines the interface for event data operations
type EventRepository interface {
	// GetByIDWithDetails retrieves an event with venue and artists
	GetByIDWithDetails(ctx context.Context, id int64) (*entities.Event, error)

	// ListByVenue retrieves events at a venue with the total count
	ListByVenue(ctx context.Context, venueID int64, upcomingOnly bool, limit, offset int) ([]*entities.Event, int, error)

	// ListUpcomingByArtist retrieves upcoming events featuring an artist
	ListUpcomingByArtist(ctx context.Context, artistID int64, limit, offset int) ([]*entities.Event, int, error)

	// CountUpcomingByVenue counts upcoming events at a venue
	CountUpcomingByVenue(ctx context.Context, venueID int64) (int, error)

	// CountUpcomingByArtist counts upcoming events featuring an artist
	CountUpcomingByArtist(ctx context.Context, artistID int64) (int, error)

	// SearchCandidates fetches the filtered candidate pool with venue
	// and artists populated, capped at filter.Limit rows
	SearchCandidates(ctx context.Context, filter EventSearchFilter) ([]*entities.Event, error)
}
