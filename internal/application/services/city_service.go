package services

import (
	"context"
	"strings"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"
	"github.com/zatekoja/venue-explorer/pkg/pagination"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
)

// CityListResponse is a paginated city list
type CityListResponse struct {
	Cities     []*entities.City    `json:"cities"`
	Pagination pagination.Metadata `json:"pagination"`
}

// VenueListResponse is a paginated venue list
type VenueListResponse struct {
	Venues     []*entities.Venue   `json:"venues"`
	Pagination pagination.Metadata `json:"pagination"`
}

// RegionListResponse lists all regions with their rollup counts
type RegionListResponse struct {
	Regions []*entities.Region `json:"regions"`
}

// RegionCityListResponse is a paginated list of a region's cities
type RegionCityListResponse struct {
	Region     string                 `json:"region"`
	Cities     []*entities.RegionCity `json:"cities"`
	Pagination pagination.Metadata    `json:"pagination"`
}

// CityService serves city listings and city-scoped venue listings
type CityService struct {
	cities repositories.CityRepository
	venues repositories.VenueRepository
}

// NewCityService creates a city service
func NewCityService(cities repositories.CityRepository, venues repositories.VenueRepository) *CityService {
	return &CityService{cities: cities, venues: venues}
}

// ListCities retrieves a page of cities
func (s *CityService) ListCities(ctx context.Context, page, limit int) (*CityListResponse, error) {
	page = pagination.ClampPage(page)
	limit = pagination.ClampLimit(limit)
	cities, total, err := s.cities.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &CityListResponse{
		Cities:     cities,
		Pagination: pagination.Paginate(total, page, limit),
	}, nil
}

// ListCityVenues retrieves a page of venues in a city
func (s *CityService) ListCityVenues(ctx context.Context, cityID int64, page, limit int) (*VenueListResponse, error) {
	if _, err := s.cities.GetByID(ctx, cityID); err != nil {
		return nil, err
	}

	page = pagination.ClampPage(page)
	limit = pagination.ClampLimit(limit)
	venues, total, err := s.venues.ListByCity(ctx, cityID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &VenueListResponse{
		Venues:     venues,
		Pagination: pagination.Paginate(total, page, limit),
	}, nil
}

// ListRegions retrieves all regions
func (s *CityService) ListRegions(ctx context.Context) (*RegionListResponse, error) {
	regions, err := s.cities.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	return &RegionListResponse{Regions: regions}, nil
}

// ListRegionCities retrieves a page of cities in a region, busiest
// first. An unknown region yields an empty page rather than an error.
func (s *CityService) ListRegionCities(ctx context.Context, region string, page, limit int) (*RegionCityListResponse, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return nil, apperrors.NewFieldValidationError("region", "region is required")
	}

	page = pagination.ClampPage(page)
	limit = pagination.ClampLimit(limit)
	cities, total, err := s.cities.ListCitiesByRegion(ctx, region, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &RegionCityListResponse{
		Region:     region,
		Cities:     cities,
		Pagination: pagination.Paginate(total, page, limit),
	}, nil
}
