package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

type fakeCityRepo struct {
	regions []*entities.Region
	cities  []*entities.RegionCity

	lastRegion string
	lastLimit  int
	lastOffset int
}

func (f *fakeCityRepo) GetByID(context.Context, int64) (*entities.City, error) {
	return &entities.City{ID: 1}, nil
}

func (f *fakeCityRepo) List(context.Context, int, int) ([]*entities.City, int, error) {
	return nil, 0, nil
}

func (f *fakeCityRepo) ListRegions(context.Context) ([]*entities.Region, error) {
	return f.regions, nil
}

func (f *fakeCityRepo) ListCitiesByRegion(_ context.Context, region string, limit, offset int) ([]*entities.RegionCity, int, error) {
	f.lastRegion = region
	f.lastLimit = limit
	f.lastOffset = offset
	return f.cities, len(f.cities), nil
}

func TestListRegionCitiesRequiresRegion(t *testing.T) {
	svc := NewCityService(&fakeCityRepo{}, nil)

	_, err := svc.ListRegionCities(context.Background(), "   ", 1, 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestListRegionCitiesPaginates(t *testing.T) {
	repo := &fakeCityRepo{
		cities: []*entities.RegionCity{
			{City: entities.City{ID: 1, Name: "Berlin"}, VenueCount: 3},
		},
	}
	svc := NewCityService(repo, nil)

	resp, err := svc.ListRegionCities(context.Background(), "Berlin", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", repo.lastRegion)
	assert.Equal(t, 5, repo.lastLimit)
	assert.Equal(t, 5, repo.lastOffset)
	assert.Equal(t, "Berlin", resp.Region)
	assert.Equal(t, 2, resp.Pagination.Page)
}

func TestListRegionsPassesThrough(t *testing.T) {
	repo := &fakeCityRepo{
		regions: []*entities.Region{{Name: "Berlin", Country: "Germany", DisplayName: "Berlin, Germany"}},
	}
	svc := NewCityService(repo, nil)

	resp, err := svc.ListRegions(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Regions, 1)
	assert.Equal(t, "Berlin, Germany", resp.Regions[0].DisplayName)
}
