package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zatekoja/venue-explorer/pkg/geo"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// SearchProvider defines the interface for search operations
type SearchProvider interface {
	Search(ctx context.Context, query *entities.SearchQuery) (*entities.SearchResponse, error)
	SearchNearby(ctx context.Context, query *entities.NearbyQuery) (*entities.SearchResponse, error)
}

// SearchHandler handles search requests
type SearchHandler struct {
	service SearchProvider
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service SearchProvider) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query, err := parseSearchQuery(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp, err := h.service.Search(r.Context(), query)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// SearchNearby handles GET /api/search/nearby
func (h *SearchHandler) SearchNearby(w http.ResponseWriter, r *http.Request) {
	query, err := parseNearbyQuery(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp, err := h.service.SearchNearby(r.Context(), query)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func parseSearchQuery(r *http.Request) (*entities.SearchQuery, error) {
	types, err := queryEntityTypes(r)
	if err != nil {
		return nil, err
	}
	capacityMin, err := queryIntPtr(r, "capacity_min")
	if err != nil {
		return nil, err
	}
	capacityMax, err := queryIntPtr(r, "capacity_max")
	if err != nil {
		return nil, err
	}
	prosperRankMin, err := queryIntPtr(r, "prosper_rank_min")
	if err != nil {
		return nil, err
	}
	startDate, err := queryTimePtr(r, "start_date")
	if err != nil {
		return nil, err
	}
	endDate, err := queryTimePtr(r, "end_date")
	if err != nil {
		return nil, err
	}
	hasTickets, err := queryBoolPtr(r, "has_tickets")
	if err != nil {
		return nil, err
	}
	hasBio, err := queryBoolPtr(r, "has_bio")
	if err != nil {
		return nil, err
	}
	hasPhoto, err := queryBoolPtr(r, "has_photo")
	if err != nil {
		return nil, err
	}
	page, limit, err := queryPageLimit(r)
	if err != nil {
		return nil, err
	}

	return &entities.SearchQuery{
		Term:           r.URL.Query().Get("q"),
		Types:          types,
		Genres:         queryCSV(r, "genres"),
		StateProvinces: queryCSVAlias(r, "state_province", "state_provinces"),
		Countries:      queryCSVAlias(r, "country", "countries"),
		CapacityMin:    capacityMin,
		CapacityMax:    capacityMax,
		ProsperRankMin: prosperRankMin,
		StartDate:      startDate,
		EndDate:        endDate,
		HasTickets:     hasTickets,
		HasBio:         hasBio,
		HasPhoto:       hasPhoto,
		SortBy:         strings.ToLower(r.URL.Query().Get("sort_by")),
		SortDir:        entities.SortDirection(strings.ToLower(r.URL.Query().Get("sort_dir"))),
		Page:           page,
		Limit:          limit,
	}, nil
}

func parseNearbyQuery(r *http.Request) (*entities.NearbyQuery, error) {
	lat, err := queryFloat(r, "lat")
	if err != nil {
		return nil, err
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		return nil, err
	}
	center, err := geo.NewCoordinate(lat, lon)
	if err != nil {
		return nil, err
	}

	radius := 10.0
	if r.URL.Query().Get("radius") != "" {
		radius, err = queryFloat(r, "radius")
		if err != nil {
			return nil, err
		}
	}
	types, err := queryEntityTypes(r)
	if err != nil {
		return nil, err
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return nil, err
	}

	return &entities.NearbyQuery{
		Center:   center,
		RadiusKm: radius,
		Term:     r.URL.Query().Get("q"),
		Types:    types,
		Limit:    limit,
	}, nil
}
