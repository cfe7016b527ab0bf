package services

import (
	"context"
	"time"

	"github.com/zatekoja/venue-explorer/pkg/pagination"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
)

// EventListResponse is a paginated event list
type EventListResponse struct {
	Events     []entities.EventResponse `json:"events"`
	Pagination pagination.Metadata      `json:"pagination"`
}

// VenueService serves venue detail and venue-scoped event listings
type VenueService struct {
	venues repositories.VenueRepository
	events repositories.EventRepository
	now    func() time.Time
}

// NewVenueService creates a venue service
func NewVenueService(venues repositories.VenueRepository, events repositories.EventRepository) *VenueService {
	return &VenueService{venues: venues, events: events, now: time.Now}
}

// GetVenue retrieves a venue with its upcoming event count
func (s *VenueService) GetVenue(ctx context.Context, id int64) (*entities.VenueResponse, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.events.CountUpcomingByVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.VenueResponse{Venue: *venue, UpcomingEventsCount: &count}, nil
}

// ListVenueEvents retrieves a page of events at a venue. upcomingOnly
// restricts the set to events at or after the current time.
func (s *VenueService) ListVenueEvents(ctx context.Context, venueID int64, upcomingOnly bool, page, limit int) (*EventListResponse, error) {
	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		return nil, err
	}

	page = pagination.ClampPage(page)
	limit = pagination.ClampLimit(limit)
	events, total, err := s.events.ListByVenue(ctx, venueID, upcomingOnly, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]entities.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, eventResponse(event, now))
	}
	return &EventListResponse{
		Events:     responses,
		Pagination: pagination.Paginate(total, page, limit),
	}, nil
}
