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

	"github.com/zatekoja/venue-explorer/internal/api/handlers"
	"github.com/zatekoja/venue-explorer/internal/application/services"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// MockCityService defines the mock city service
type MockCityService struct {
	mock.Mock
}

func (m *MockCityService) ListCities(ctx context.Context, page, limit int) (*services.CityListResponse, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CityListResponse), args.Error(1)
}

func (m *MockCityService) ListCityVenues(ctx context.Context, cityID int64, page, limit int) (*services.VenueListResponse, error) {
	args := m.Called(ctx, cityID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.VenueListResponse), args.Error(1)
}

func (m *MockCityService) ListRegions(ctx context.Context) (*services.RegionListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RegionListResponse), args.Error(1)
}

func (m *MockCityService) ListRegionCities(ctx context.Context, region string, page, limit int) (*services.RegionCityListResponse, error) {
	args := m.Called(ctx, region, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RegionCityListResponse), args.Error(1)
}

func TestListRegions(t *testing.T) {
	mockService := new(MockCityService)
	mockService.On("ListRegions", mock.Anything).Return(&services.RegionListResponse{
		Regions: []*entities.Region{
			{Name: "Berlin", Country: "Germany", CityCount: 1, VenueCount: 3, DisplayName: "Berlin, Germany"},
		},
	}, nil)
	handler := handlers.NewCityHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/regions", nil)
	rec := httptest.NewRecorder()
	handler.ListRegions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body services.RegionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Regions, 1)
	assert.Equal(t, "Berlin, Germany", body.Regions[0].DisplayName)
	mockService.AssertExpectations(t)
}

func TestListRegionCities(t *testing.T) {
	mockService := new(MockCityService)
	mockService.On("ListRegionCities", mock.Anything, "Berlin", 0, 0).
		Return(&services.RegionCityListResponse{
			Region: "Berlin",
			Cities: []*entities.RegionCity{
				{City: entities.City{ID: 1, Name: "Berlin"}, VenueCount: 3},
			},
		}, nil)
	handler := handlers.NewCityHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/regions/Berlin/cities", nil)
	req.SetPathValue("region", "Berlin")
	rec := httptest.NewRecorder()
	handler.ListRegionCities(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body services.RegionCityListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Cities, 1)
	assert.Equal(t, 3, body.Cities[0].VenueCount)
	mockService.AssertExpectations(t)
}
