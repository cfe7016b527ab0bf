package services

import (
	"context"
	"time"

	"github.com/zatekoja/venue-explorer/pkg/pagination"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
)

// MediaListResponse is a paginated media list
type MediaListResponse struct {
	Media      []*entities.Media   `json:"media"`
	Pagination pagination.Metadata `json:"pagination"`
}

// ArtistService serves artist detail, artist-scoped event listings,
// and artist media.
type ArtistService struct {
	artists repositories.ArtistRepository
	events  repositories.EventRepository
	media   repositories.MediaRepository
	now     func() time.Time
}

// NewArtistService creates an artist service
func NewArtistService(artists repositories.ArtistRepository, events repositories.EventRepository, media repositories.MediaRepository) *ArtistService {
	return &ArtistService{artists: artists, events: events, media: media, now: time.Now}
}

// GetArtist retrieves an artist with upcoming event and media counts
func (s *ArtistService) GetArtist(ctx context.Context, id int64) (*entities.ArtistResponse, error) {
	artist, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	eventCount, err := s.events.CountUpcomingByArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	mediaCount, err := s.media.CountByArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.ArtistResponse{
		Artist:              *artist,
		UpcomingEventsCount: &eventCount,
		MediaCount:          &mediaCount,
	}, nil
}

// ListArtistEvents retrieves a page of upcoming events featuring an artist
func (s *ArtistService) ListArtistEvents(ctx context.Context, artistID int64, page, limit int) (*EventListResponse, error) {
	if _, err := s.artists.GetByID(ctx, artistID); err != nil {
		return nil, err
	}

	page = pagination.ClampPage(page)
	limit = pagination.ClampLimit(limit)
	events, total, err := s.events.ListUpcomingByArtist(ctx, artistID, limit, (page-1)*limit)
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

// ListArtistMedia retrieves a page of an artist's media items
func (s *ArtistService) ListArtistMedia(ctx context.Context, artistID int64, page, limit int) (*MediaListResponse, error) {
	if _, err := s.artists.GetByID(ctx, artistID); err != nil {
		return nil, err
	}

	page = pagination.ClampPage(page)
	limit = pagination.ClampLimit(limit)
	media, total, err := s.media.ListByArtist(ctx, artistID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &MediaListResponse{
		Media:      media,
		Pagination: pagination.Paginate(total, page, limit),
	}, nil
}
