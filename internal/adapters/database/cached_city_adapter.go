package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/providers"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/observability"
)

// CachedCityAdapter wraps a CityRepository with read-through caching.
// Cities and their region rollups change rarely, so they are the read
// paths worth caching.
type CachedCityAdapter struct {
	adapter repositories.CityRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedCityAdapter creates a new cached city adapter. metrics is
// optional; without it hits and misses are not counted.
func NewCachedCityAdapter(adapter repositories.CityRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.CityRepository {
	return &CachedCityAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

// Cache TTLs (in seconds)
const (
	cityByIDTTL = 3600
	cityListTTL = 600
	regionTTL   = 600
)

func cityCacheKey(id int64) string {
	return fmt.Sprintf("city:%d", id)
}

func cityListCacheKey(limit, offset int) string {
	return fmt.Sprintf("cities:list:%d:%d", limit, offset)
}

func regionCitiesCacheKey(region string, limit, offset int) string {
	return fmt.Sprintf("regions:cities:%s:%d:%d", region, limit, offset)
}

const regionListCacheKey = "regions:list"

type cachedCityList struct {
	Cities []*entities.City `json:"cities"`
	Total  int              `json:"total"`
}

type cachedRegionCityList struct {
	Cities []*entities.RegionCity `json:"cities"`
	Total  int                    `json:"total"`
}

// lookup reads key from the cache into dest, counting the hit or miss.
// A decode failure counts as a miss so the entry gets rewritten.
func (a *CachedCityAdapter) lookup(ctx context.Context, key string, dest any) bool {
	cached, err := a.cache.Get(ctx, key)
	if err == nil {
		if err := json.Unmarshal(cached, dest); err == nil {
			if a.metrics != nil {
				observability.RecordCacheHit(ctx, a.metrics, key)
			}
			return true
		}
		log.Warn().Str("key", key).Msg("failed to unmarshal cached entry")
	}
	if a.metrics != nil {
		observability.RecordCacheMiss(ctx, a.metrics, key)
	}
	return false
}

func (a *CachedCityAdapter) store(ctx context.Context, key string, value any, ttl int) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache entry")
	}
}

// GetByID retrieves a city by ID with caching
func (a *CachedCityAdapter) GetByID(ctx context.Context, id int64) (*entities.City, error) {
	key := cityCacheKey(id)

	var cached entities.City
	if a.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	city, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.store(ctx, key, city, cityByIDTTL)
	return city, nil
}

// List retrieves cities with caching
func (a *CachedCityAdapter) List(ctx context.Context, limit, offset int) ([]*entities.City, int, error) {
	key := cityListCacheKey(limit, offset)

	var cached cachedCityList
	if a.lookup(ctx, key, &cached) {
		return cached.Cities, cached.Total, nil
	}

	cities, total, err := a.adapter.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	a.store(ctx, key, cachedCityList{Cities: cities, Total: total}, cityListTTL)
	return cities, total, nil
}

// ListRegions retrieves the region rollup with caching
func (a *CachedCityAdapter) ListRegions(ctx context.Context) ([]*entities.Region, error) {
	var cached []*entities.Region
	if a.lookup(ctx, regionListCacheKey, &cached) {
		return cached, nil
	}

	regions, err := a.adapter.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	a.store(ctx, regionListCacheKey, regions, regionTTL)
	return regions, nil
}

// ListCitiesByRegion retrieves a region's cities with caching
func (a *CachedCityAdapter) ListCitiesByRegion(ctx context.Context, region string, limit, offset int) ([]*entities.RegionCity, int, error) {
	key := regionCitiesCacheKey(region, limit, offset)

	var cached cachedRegionCityList
	if a.lookup(ctx, key, &cached) {
		return cached.Cities, cached.Total, nil
	}

	cities, total, err := a.adapter.ListCitiesByRegion(ctx, region, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	a.store(ctx, key, cachedRegionCityList{Cities: cities, Total: total}, regionTTL)
	return cities, total, nil
}
