package repositories

import (
	"context"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// CityRepository defines the interface for city data operations
type CityRepository interface {
	// GetByID retrieves a city by ID
	GetByID(ctx context.Context, id int64) (*entities.City, error)

	// List retrieves cities with the total count
	List(ctx context.Context, limit, offset int) ([]*entities.City, int, error)

	// ListRegions retrieves all regions with their city and venue counts
	ListRegions(ctx context.Context) ([]*entities.Region, error)

	// ListCitiesByRegion retrieves cities in a region ordered by venue
	// count, with the total count of cities in that region
	ListCitiesByRegion(ctx context.Context, region string, limit, offset int) ([]*entities.RegionCity, int, error)
}
