package routes

import (
	"net/http"

	"github.com/zatekoja/venue-explorer/internal/api/handlers"
	"github.com/zatekoja/venue-explorer/internal/api/middleware"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler *handlers.SearchHandler
	venueHandler  *handlers.VenueHandler
	artistHandler *handlers.ArtistHandler
	eventHandler  *handlers.EventHandler
	cityHandler   *handlers.CityHandler
	healthHandler *handlers.HealthHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	venueHandler *handlers.VenueHandler,
	artistHandler *handlers.ArtistHandler,
	eventHandler *handlers.EventHandler,
	cityHandler *handlers.CityHandler,
	healthHandler *handlers.HealthHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		searchHandler: searchHandler,
		venueHandler:  venueHandler,
		artistHandler: artistHandler,
		eventHandler:  eventHandler,
		cityHandler:   cityHandler,
		healthHandler: healthHandler,
		metrics:       metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Search endpoints
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)
	r.mux.HandleFunc("GET /api/search/nearby", r.searchHandler.SearchNearby)

	// Venue endpoints
	r.mux.HandleFunc("GET /api/venues/{id}", r.venueHandler.GetVenue)
	r.mux.HandleFunc("GET /api/venues/{id}/events", r.venueHandler.ListVenueEvents)

	// Artist endpoints
	r.mux.HandleFunc("GET /api/artists/{id}", r.artistHandler.GetArtist)
	r.mux.HandleFunc("GET /api/artists/{id}/events", r.artistHandler.ListArtistEvents)
	r.mux.HandleFunc("GET /api/artists/{id}/media", r.artistHandler.ListArtistMedia)

	// Event endpoints
	r.mux.HandleFunc("GET /api/events/{id}", r.eventHandler.GetEvent)

	// City and region endpoints
	r.mux.HandleFunc("GET /api/cities", r.cityHandler.ListCities)
	r.mux.HandleFunc("GET /api/cities/{id}/venues", r.cityHandler.ListCityVenues)
	r.mux.HandleFunc("GET /api/regions", r.cityHandler.ListRegions)
	r.mux.HandleFunc("GET /api/regions/{region}/cities", r.cityHandler.ListRegionCities)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
