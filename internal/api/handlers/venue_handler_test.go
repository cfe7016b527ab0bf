package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"

	"github.com/zatekoja/venue-explorer/internal/api/handlers"
	"github.com/zatekoja/venue-explorer/internal/application/services"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// MockVenueService defines the mock venue service
type MockVenueService struct {
	mock.Mock
}

func (m *MockVenueService) GetVenue(ctx context.Context, id int64) (*entities.VenueResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VenueResponse), args.Error(1)
}

func (m *MockVenueService) ListVenueEvents(ctx context.Context, venueID int64, upcomingOnly bool, page, limit int) (*services.EventListResponse, error) {
	args := m.Called(ctx, venueID, upcomingOnly, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.EventListResponse), args.Error(1)
}

func getVenueRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/venues/"+id, nil)
	req.SetPathValue("id", id)
	return req
}

func TestGetVenue(t *testing.T) {
	mockService := new(MockVenueService)
	count := 3
	mockService.On("GetVenue", mock.Anything, int64(42)).Return(&entities.VenueResponse{
		Venue:               entities.Venue{ID: 42, Name: "Berghain"},
		UpcomingEventsCount: &count,
	}, nil)
	handler := handlers.NewVenueHandler(mockService)

	rec := httptest.NewRecorder()
	handler.GetVenue(rec, getVenueRequest("42"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body entities.VenueResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Berghain", body.Name)
	require.NotNil(t, body.UpcomingEventsCount)
	assert.Equal(t, 3, *body.UpcomingEventsCount)
	mockService.AssertExpectations(t)
}

func TestGetVenueRejectsBadID(t *testing.T) {
	handler := handlers.NewVenueHandler(new(MockVenueService))

	for _, id := range []string{"abc", "0", "-5"} {
		rec := httptest.NewRecorder()
		handler.GetVenue(rec, getVenueRequest(id))
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestGetVenueNotFound(t *testing.T) {
	mockService := new(MockVenueService)
	mockService.On("GetVenue", mock.Anything, int64(7)).
		Return(nil, apperrors.NewNotFoundError("venue with id 7 not found"))
	handler := handlers.NewVenueHandler(mockService)

	rec := httptest.NewRecorder()
	handler.GetVenue(rec, getVenueRequest("7"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListVenueEventsDefaultsToUpcoming(t *testing.T) {
	mockService := new(MockVenueService)
	mockService.On("ListVenueEvents", mock.Anything, int64(42), true, 0, 0).
		Return(&services.EventListResponse{Events: []entities.EventResponse{}}, nil)
	handler := handlers.NewVenueHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/venues/42/events", nil)
	req.SetPathValue("id", "42")
	rec := httptest.NewRecorder()
	handler.ListVenueEvents(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}
