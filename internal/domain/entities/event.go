package entities

import "time"

// Event represents a scheduled performance at a venue
type Event struct {
	ID            int64     `json:"id" db:"id"`
	VenueID       int64     `json:"venue_id" db:"venue_id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description,omitempty" db:"description"`
	EventDatetime time.Time `json:"event_datetime" db:"event_datetime"`
	TicketURL     string    `json:"ticket_url,omitempty" db:"ticket_url"`
	ExternalID    string    `json:"external_id,omitempty" db:"external_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Joined rows, populated by the event queries
	Venue   *Venue   `json:"venue,omitempty" db:"-"`
	Artists []Artist `json:"artists,omitempty" db:"-"`
}

// EventResponse decorates an event with request-scoped fields
type EventResponse struct {
	Event
	DaysUntilEvent *int `json:"days_until_event,omitempty"`
}
