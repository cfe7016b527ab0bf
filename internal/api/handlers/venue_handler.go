package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/zatekoja/venue-explorer/internal/application/services"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// VenueProvider defines the interface for venue operations
type VenueProvider interface {
	GetVenue(ctx context.Context, id int64) (*entities.VenueResponse, error)
	ListVenueEvents(ctx context.Context, venueID int64, upcomingOnly bool, page, limit int) (*services.EventListResponse, error)
}

// VenueHandler handles venue requests
type VenueHandler struct {
	service VenueProvider
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(service VenueProvider) *VenueHandler {
	return &VenueHandler{service: service}
}

// GetVenue handles GET /api/venues/{id}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	venue, err := h.service.GetVenue(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, venue)
}

// ListVenueEvents handles GET /api/venues/{id}/events
func (h *VenueHandler) ListVenueEvents(w http.ResponseWriter, r *http.Request) {
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

	// upcoming defaults to true; pass upcoming=false for full history
	upcomingOnly := true
	if raw := r.URL.Query().Get("upcoming"); raw != "" {
		upcomingOnly, err = strconv.ParseBool(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "upcoming must be true or false")
			return
		}
	}

	events, err := h.service.ListVenueEvents(r.Context(), id, upcomingOnly, page, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, events)
}
