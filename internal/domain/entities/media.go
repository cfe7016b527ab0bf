package entities

import "time"

// MediaType discriminates artist media items
type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
)

// Media represents a photo or video attached to an artist
type Media struct {
	ID        int64     `json:"id" db:"id"`
	ArtistID  int64     `json:"artist_id" db:"artist_id"`
	Type      MediaType `json:"type" db:"type"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
