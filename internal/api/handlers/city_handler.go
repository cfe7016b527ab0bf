package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/venue-explorer/internal/application/services"
)

// CityProvider defines the interface for city and region operations
type CityProvider interface {
	ListCities(ctx context.Context, page, limit int) (*services.CityListResponse, error)
	ListCityVenues(ctx context.Context, cityID int64, page, limit int) (*services.VenueListResponse, error)
	ListRegions(ctx context.Context) (*services.RegionListResponse, error)
	ListRegionCities(ctx context.Context, region string, page, limit int) (*services.RegionCityListResponse, error)
}

// CityHandler handles city requests
type CityHandler struct {
	service CityProvider
}

// NewCityHandler creates a new city handler
func NewCityHandler(service CityProvider) *CityHandler {
	return &CityHandler{service: service}
}

// ListCities handles GET /api/cities
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	page, limit, err := queryPageLimit(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cities, err := h.service.ListCities(r.Context(), page, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cities)
}

// ListCityVenues handles GET /api/cities/{id}/venues
func (h *CityHandler) ListCityVenues(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	page, limit, err := queryPageLimit(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	venues, err := h.service.ListCityVenues(r.Context(), id, page, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, venues)
}

// ListRegions handles GET /api/regions
func (h *CityHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.ListRegions(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, regions)
}

// ListRegionCities handles GET /api/regions/{region}/cities
func (h *CityHandler) ListRegionCities(w http.ResponseWriter, r *http.Request) {
	region := r.PathValue("region")
	page, limit, err := queryPageLimit(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cities, err := h.service.ListRegionCities(r.Context(), region, page, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cities)
}
