package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/venue-explorer/internal/application/services"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// ArtistProvider defines the interface for artist operations
type ArtistProvider interface {
	GetArtist(ctx context.Context, id int64) (*entities.ArtistResponse, error)
	ListArtistEvents(ctx context.Context, artistID int64, page, limit int) (*services.EventListResponse, error)
	ListArtistMedia(ctx context.Context, artistID int64, page, limit int) (*services.MediaListResponse, error)
}

// ArtistHandler handles artist requests
type ArtistHandler struct {
	service ArtistProvider
}

// NewArtistHandler creates a new artist handler
func NewArtistHandler(service ArtistProvider) *ArtistHandler {
	return &ArtistHandler{service: service}
}

// GetArtist handles GET /api/artists/{id}
func (h *ArtistHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	artist, err := h.service.GetArtist(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, artist)
}

// ListArtistEvents handles GET /api/artists/{id}/events
func (h *ArtistHandler) ListArtistEvents(w http.ResponseWriter, r *http.Request) {
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

	events, err := h.service.ListArtistEvents(r.Context(), id, page, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, events)
}

// ListArtistMedia handles GET /api/artists/{id}/media
func (h *ArtistHandler) ListArtistMedia(w http.ResponseWriter, r *http.Request) {
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

	media, err := h.service.ListArtistMedia(r.Context(), id, page, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, media)
}
