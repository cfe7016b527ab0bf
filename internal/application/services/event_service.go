package services

import (
	"context"
	"time"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
)

// EventService serves event detail lookups
type EventService struct {
	events repositories.EventRepository
	now    func() time.Time
}

// NewEventService creates an event service
func NewEventService(events repositories.EventRepository) *EventService {
	return &EventService{events: events, now: time.Now}
}

// GetEvent retrieves an event with its venue and artists
func (s *EventService) GetEvent(ctx context.Context, id int64) (*entities.EventResponse, error) {
	event, err := s.events.GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	response := eventResponse(event, s.now())
	return &response, nil
}
