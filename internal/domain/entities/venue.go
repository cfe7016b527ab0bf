package entities

import (
	"time"

	"github.com/zatekoja/venue-explorer/pkg/geo"
)

// Venue represents a music venue
type Venue struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	CityID      int64          `json:"city_id" db:"city_id"`
	Address     string         `json:"address,omitempty" db:"address"`
	Coordinates geo.Coordinate `json:"coordinates" db:"-"`
	Capacity    *int           `json:"capacity,omitempty" db:"capacity"`
	Website     string         `json:"website,omitempty" db:"website"`
	ProsperRank int            `json:"prosper_rank" db:"prosper_rank"`
	Genres      []string       `json:"genres,omitempty" db:"-"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`

	// Joined city row, populated by the venue queries
	City *City `json:"city,omitempty" db:"-"`
}

// VenueResponse decorates a venue with request-scoped fields
type VenueResponse struct {
	Venue
	DistanceKm          *float64 `json:"distance_km,omitempty"`
	UpcomingEventsCount *int     `json:"upcoming_events_count,omitempty"`
}
