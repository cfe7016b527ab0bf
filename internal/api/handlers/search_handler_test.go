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
	"github.com/zatekoja/venue-explorer/pkg/pagination"

	"github.com/zatekoja/venue-explorer/internal/api/handlers"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// MockSearchService defines the mock search service
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, query *entities.SearchQuery) (*entities.SearchResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SearchResponse), args.Error(1)
}

func (m *MockSearchService) SearchNearby(ctx context.Context, query *entities.NearbyQuery) (*entities.SearchResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SearchResponse), args.Error(1)
}

func emptySearchResponse() *entities.SearchResponse {
	return &entities.SearchResponse{
		Results:      []entities.ScoredResult{},
		Aggregations: entities.NewAggregations(),
		Pagination:   pagination.Paginate(0, 1, 10),
	}
}

func TestSearchParsesQueryParameters(t *testing.T) {
	mockService := new(MockSearchService)
	handler := handlers.NewSearchHandler(mockService)

	mockService.On("Search", mock.Anything, mock.MatchedBy(func(q *entities.SearchQuery) bool {
		return q.Term == "jazz" &&
			len(q.Types) == 2 &&
			q.Types[0] == entities.EntityTypeVenue &&
			q.Types[1] == entities.EntityTypeArtist &&
			len(q.Genres) == 2 &&
			q.CapacityMin != nil && *q.CapacityMin == 100 &&
			q.Page == 2 && q.Limit == 5
	})).Return(emptySearchResponse(), nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/search?q=jazz&types=venue,artist&genres=jazz,blues&capacity_min=100&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestSearchRegionFilterParamNames(t *testing.T) {
	// singular names are the canonical ones; plural forms are an alias
	urls := []string{
		"/api/search?q=jazz&state_province=Berlin,Hamburg&country=Germany",
		"/api/search?q=jazz&state_provinces=Berlin,Hamburg&countries=Germany",
	}
	for _, url := range urls {
		mockService := new(MockSearchService)
		handler := handlers.NewSearchHandler(mockService)

		mockService.On("Search", mock.Anything, mock.MatchedBy(func(q *entities.SearchQuery) bool {
			return len(q.StateProvinces) == 2 &&
				q.StateProvinces[0] == "Berlin" &&
				len(q.Countries) == 1 &&
				q.Countries[0] == "Germany"
		})).Return(emptySearchResponse(), nil)

		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, url)
		mockService.AssertExpectations(t)
	}
}

func TestSearchRejectsMalformedParameters(t *testing.T) {
	handler := handlers.NewSearchHandler(new(MockSearchService))

	urls := []string{
		"/api/search?q=x&capacity_min=abc",
		"/api/search?q=x&types=venue,playlist",
		"/api/search?q=x&has_tickets=maybe",
		"/api/search?q=x&start_date=not-a-date",
	}
	for _, url := range urls {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		handler.Search(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
	}
}

func TestSearchAcceptsDateOnlyFilters(t *testing.T) {
	mockService := new(MockSearchService)
	handler := handlers.NewSearchHandler(mockService)

	mockService.On("Search", mock.Anything, mock.MatchedBy(func(q *entities.SearchQuery) bool {
		return q.StartDate != nil && q.StartDate.Year() == 2026 && q.StartDate.Month() == 10
	})).Return(emptySearchResponse(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=x&start_date=2026-10-01", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestSearchMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperrors.NewFieldValidationError("q", "search term is required"), http.StatusBadRequest},
		{"dependency", apperrors.NewDependencyError("venue search failed", assert.AnError), http.StatusBadGateway},
		{"internal", apperrors.NewInternalError("boom", assert.AnError), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSearchService)
			mockService.On("Search", mock.Anything, mock.Anything).Return(nil, tt.err)
			handler := handlers.NewSearchHandler(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/search?q=x", nil)
			rec := httptest.NewRecorder()
			handler.Search(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSearchNearbyRequiresCoordinates(t *testing.T) {
	handler := handlers.NewSearchHandler(new(MockSearchService))

	urls := []string{
		"/api/search/nearby",
		"/api/search/nearby?lat=52.5",
		"/api/search/nearby?lat=abc&lon=13.4",
		"/api/search/nearby?lat=91&lon=13.4",
	}
	for _, url := range urls {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		handler.SearchNearby(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
	}
}

func TestSearchNearbyDefaultsRadius(t *testing.T) {
	mockService := new(MockSearchService)
	handler := handlers.NewSearchHandler(mockService)

	mockService.On("SearchNearby", mock.Anything, mock.MatchedBy(func(q *entities.NearbyQuery) bool {
		return q.RadiusKm == 10.0 && q.Center.Latitude == 52.52
	})).Return(emptySearchResponse(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/search/nearby?lat=52.52&lon=13.405", nil)
	rec := httptest.NewRecorder()
	handler.SearchNearby(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}
