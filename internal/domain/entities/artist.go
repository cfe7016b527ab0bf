package entities

import "time"

// Artist represents a performing artist
type Artist struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Genres     []string  `json:"genres" db:"-"`
	PhotoURL   string    `json:"photo_url,omitempty" db:"photo_url"`
	ProfileBio string    `json:"profile_bio,omitempty" db:"profile_bio"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ArtistResponse decorates an artist with request-scoped counts
type ArtistResponse struct {
	Artist
	UpcomingEventsCount *int `json:"upcoming_events_count,omitempty"`
	MediaCount          *int `json:"media_count,omitempty"`
}
