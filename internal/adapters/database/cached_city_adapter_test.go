package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/observability"
)

type memoryCache struct {
	data map[string][]byte
	fail bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.fail {
		return nil, errors.New("cache down")
	}
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	if c.fail {
		return errors.New("cache down")
	}
	c.data[key] = value
	return nil
}

type countingCityRepo struct {
	city  *entities.City
	calls int
}

func (r *countingCityRepo) GetByID(context.Context, int64) (*entities.City, error) {
	r.calls++
	return r.city, nil
}

func (r *countingCityRepo) List(context.Context, int, int) ([]*entities.City, int, error) {
	r.calls++
	return []*entities.City{r.city}, 1, nil
}

func (r *countingCityRepo) ListRegions(context.Context) ([]*entities.Region, error) {
	r.calls++
	return []*entities.Region{{
		Name: r.city.StateProvince, Country: r.city.Country, CityCount: 1, VenueCount: 2,
	}}, nil
}

func (r *countingCityRepo) ListCitiesByRegion(context.Context, string, int, int) ([]*entities.RegionCity, int, error) {
	r.calls++
	return []*entities.RegionCity{{City: *r.city, VenueCount: 2}}, 1, nil
}

func TestCachedCityAdapterReadThrough(t *testing.T) {
	repo := &countingCityRepo{city: &entities.City{ID: 1, Name: "Berlin", Country: "Germany"}}
	cache := newMemoryCache()
	adapter := NewCachedCityAdapter(repo, cache, nil)

	first, err := adapter.GetByID(context.Background(), 1)
	require.NoError(t, err)
	second, err := adapter.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls, "second read should come from cache")
}

func TestCachedCityAdapterListCachesPerPage(t *testing.T) {
	repo := &countingCityRepo{city: &entities.City{ID: 1, Name: "Berlin"}}
	cache := newMemoryCache()
	adapter := NewCachedCityAdapter(repo, cache, nil)

	_, total, err := adapter.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, _, err = adapter.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	// a different page is a different cache entry
	_, _, err = adapter.List(context.Background(), 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCachedCityAdapterCachesRegions(t *testing.T) {
	repo := &countingCityRepo{city: &entities.City{ID: 1, Name: "Berlin", StateProvince: "Berlin", Country: "Germany"}}
	cache := newMemoryCache()
	adapter := NewCachedCityAdapter(repo, cache, nil)

	regions, err := adapter.ListRegions(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "Berlin", regions[0].Name)

	_, err = adapter.ListRegions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	cities, total, err := adapter.ListCitiesByRegion(context.Background(), "Berlin", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, cities, 1)
	assert.Equal(t, 2, cities[0].VenueCount)

	_, _, err = adapter.ListCitiesByRegion(context.Background(), "Berlin", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCachedCityAdapterCountsHitsAndMisses(t *testing.T) {
	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	repo := &countingCityRepo{city: &entities.City{ID: 1, Name: "Berlin"}}
	adapter := NewCachedCityAdapter(repo, newMemoryCache(), metrics)

	// miss then hit; recording must not disturb the read path
	_, err = adapter.GetByID(context.Background(), 1)
	require.NoError(t, err)
	_, err = adapter.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestCachedCityAdapterSurvivesCacheOutage(t *testing.T) {
	repo := &countingCityRepo{city: &entities.City{ID: 1, Name: "Berlin"}}
	cache := newMemoryCache()
	cache.fail = true
	adapter := NewCachedCityAdapter(repo, cache, nil)

	city, err := adapter.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", city.Name)
	assert.Equal(t, 1, repo.calls)
}
