package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// EventProvider defines the interface for event operations
type EventProvider interface {
	GetEvent(ctx context.Context, id int64) (*entities.EventResponse, error)
}

// EventHandler handles event requests
type EventHandler struct {
	service EventProvider
}

// NewEventHandler creates a new event handler
func NewEventHandler(service EventProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	event, err := h.service.GetEvent(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, event)
}
