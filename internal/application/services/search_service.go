package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"
	"github.com/zatekoja/venue-explorer/pkg/geo"
	"github.com/zatekoja/venue-explorer/pkg/pagination"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/observability"
)

const (
	// candidateCap bounds each per-type candidate fetch. Large enough
	// that the deepest reachable page is still exact.
	candidateCap = 500

	// nearbyDefaultLimit applies when a nearby request omits limit
	nearbyDefaultLimit = 20

	maxRadiusKm = 100.0
)

// SearchService implements the universal and proximity search
// operations: per-type candidate resolution fanned out concurrently,
// in-memory tiered ranking, a deterministic merge, and exact
// pagination over the merged set.
type SearchService struct {
	venueResolver  *venueResolver
	artistResolver *artistResolver
	eventResolver  *eventResolver
	aggregation    *aggregationService

	venues   repositories.VenueRepository
	events   repositories.EventRepository
	geoIndex repositories.VenueGeoIndex
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewSearchService creates a search service. geoIndex and metrics are
// optional; a nil geoIndex routes nearby venue lookups through the
// database bounding-box path.
func NewSearchService(
	venues repositories.VenueRepository,
	artists repositories.ArtistRepository,
	events repositories.EventRepository,
	geoIndex repositories.VenueGeoIndex,
	metrics *observability.Metrics,
) *SearchService {
	now := time.Now
	return &SearchService{
		venueResolver:  &venueResolver{repo: venues},
		artistResolver: &artistResolver{repo: artists},
		eventResolver:  &eventResolver{repo: events, now: now},
		aggregation:    &aggregationService{venues: venues, artists: artists},
		venues:         venues,
		events:         events,
		geoIndex:       geoIndex,
		metrics:        metrics,
		now:            now,
	}
}

// Search executes one universal search across the requested entity
// types and returns the requested page plus aggregations over the full
// candidate pool.
func (s *SearchService) Search(ctx context.Context, query *entities.SearchQuery) (*entities.SearchResponse, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Search")
	defer span.End()
	started := s.now()

	q := *query
	if err := normalizeSearchQuery(&q); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	observability.SetSpanAttributes(span,
		attribute.String("search.term", q.Term),
		attribute.Int("search.page", q.Page),
		attribute.Int("search.limit", q.Limit),
	)

	var (
		venueResults  []entities.ScoredResult
		artistResults []entities.ScoredResult
		eventResults  []entities.ScoredResult
		aggs          *entities.Aggregations
	)

	g, gctx := errgroup.WithContext(ctx)
	if q.HasType(entities.EntityTypeVenue) {
		g.Go(func() error {
			var err error
			venueResults, err = s.venueResolver.resolve(gctx, &q)
			return err
		})
	}
	if q.HasType(entities.EntityTypeArtist) {
		g.Go(func() error {
			var err error
			artistResults, err = s.artistResolver.resolve(gctx, &q)
			return err
		})
	}
	if q.HasType(entities.EntityTypeEvent) {
		g.Go(func() error {
			var err error
			eventResults, err = s.eventResolver.resolve(gctx, &q)
			return err
		})
	}
	g.Go(func() error {
		var err error
		aggs, err = s.aggregation.compute(gctx, &q, s.venueResolver.filter(&q), s.artistResolver.filter(&q))
		return err
	})
	if err := g.Wait(); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	merged := make([]entities.ScoredResult, 0, len(venueResults)+len(artistResults)+len(eventResults))
	merged = append(merged, venueResults...)
	merged = append(merged, artistResults...)
	merged = append(merged, eventResults...)
	sortResults(merged, &q)

	total := len(merged)
	start, end := pagination.Slice(total, q.Page, q.Limit)

	if s.metrics != nil {
		observability.RecordSearchMetric(ctx, s.metrics, "search", s.now().Sub(started))
	}
	return &entities.SearchResponse{
		Query:        q.Term,
		Total:        total,
		Results:      merged[start:end],
		Aggregations: aggs,
		Pagination:   pagination.Paginate(total, q.Page, q.Limit),
	}, nil
}

// SearchNearby finds venues and events within radiusKm of a center
// point, ordered by exact haversine distance. Artists have no location
// and are never part of the result set.
func (s *SearchService) SearchNearby(ctx context.Context, query *entities.NearbyQuery) (*entities.SearchResponse, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.SearchNearby")
	defer span.End()
	started := s.now()

	q := *query
	if err := normalizeNearbyQuery(&q); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	observability.SetSpanAttributes(span,
		attribute.Float64("search.radius_km", q.RadiusKm),
		attribute.Int("search.limit", q.Limit),
	)

	bounds := geo.BoundingBox(q.Center, q.RadiusKm)

	var venueResults, eventResults []entities.ScoredResult
	g, gctx := errgroup.WithContext(ctx)
	if q.HasType(entities.EntityTypeVenue) {
		g.Go(func() error {
			var err error
			venueResults, err = s.nearbyVenues(gctx, &q, &bounds)
			return err
		})
	}
	if q.HasType(entities.EntityTypeEvent) {
		g.Go(func() error {
			var err error
			eventResults, err = s.nearbyEvents(gctx, &q, &bounds)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	merged := make([]entities.ScoredResult, 0, len(venueResults)+len(eventResults))
	merged = append(merged, venueResults...)
	merged = append(merged, eventResults...)
	sort.SliceStable(merged, func(i, j int) bool {
		return lessNearby(&merged[i], &merged[j])
	})

	total := len(merged)
	if total > q.Limit {
		merged = merged[:q.Limit]
	}

	if s.metrics != nil {
		observability.RecordSearchMetric(ctx, s.metrics, "nearby", s.now().Sub(started))
	}
	return &entities.SearchResponse{
		Query:        q.Term,
		Total:        total,
		Results:      merged,
		Aggregations: entities.NewAggregations(),
		Pagination:   pagination.Paginate(total, 1, q.Limit),
	}, nil
}

// nearbyVenues resolves venue candidates through the geo index when
// one is configured, otherwise through a database bounding-box fetch,
// then applies the exact radius check and the optional term ranking.
func (s *SearchService) nearbyVenues(ctx context.Context, query *entities.NearbyQuery, bounds *geo.Bounds) ([]entities.ScoredResult, error) {
	var (
		venues  []*entities.Venue
		err     error
		indexed bool
	)
	if s.geoIndex != nil {
		venues, err = s.geoIndex.FindNearby(ctx, query.Center, query.RadiusKm, candidateCap)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Msg("geo index lookup failed, falling back to database")
		} else {
			indexed = true
		}
	}
	if !indexed {
		venues, err = s.venues.SearchCandidates(ctx, repositories.VenueSearchFilter{
			Term:   query.Term,
			Bounds: bounds,
			Limit:  candidateCap,
		})
		if err != nil {
			return nil, apperrors.NewDependencyError("nearby venue search failed", err)
		}
	}

	results := make([]entities.ScoredResult, 0, len(venues))
	for _, venue := range venues {
		dist := geo.DistanceKm(query.Center, venue.Coordinates)
		if dist > query.RadiusKm {
			continue
		}
		tier, score, ok := rankName(venue.Name, venue.Genres, query.Term)
		if !ok {
			continue
		}
		result := scoreVenue(venue, tier, score)
		d := dist
		result.DistanceKm = &d
		if response, okResp := result.Data.(entities.VenueResponse); okResp {
			response.DistanceKm = &d
			result.Data = response
		}
		results = append(results, result)
	}
	return results, nil
}

// nearbyEvents resolves events through their venue coordinates
func (s *SearchService) nearbyEvents(ctx context.Context, query *entities.NearbyQuery, bounds *geo.Bounds) ([]entities.ScoredResult, error) {
	events, err := s.events.SearchCandidates(ctx, repositories.EventSearchFilter{
		Term:   query.Term,
		Bounds: bounds,
		Limit:  candidateCap,
	})
	if err != nil {
		return nil, apperrors.NewDependencyError("nearby event search failed", err)
	}

	now := s.now()
	results := make([]entities.ScoredResult, 0, len(events))
	for _, event := range events {
		if event.Venue == nil {
			continue
		}
		dist := geo.DistanceKm(query.Center, event.Venue.Coordinates)
		if dist > query.RadiusKm {
			continue
		}
		tier, score, ok := rankEvent(event, query.Term)
		if !ok {
			continue
		}
		result := scoreEvent(event, tier, score, now)
		d := dist
		result.DistanceKm = &d
		results = append(results, result)
	}
	return results, nil
}

// lessNearby orders proximity results by exact distance ascending,
// then falls back to the global merge order.
func lessNearby(a, b *entities.ScoredResult) bool {
	da, db := 0.0, 0.0
	if a.DistanceKm != nil {
		da = *a.DistanceKm
	}
	if b.DistanceKm != nil {
		db = *b.DistanceKm
	}
	if da != db {
		return da < db
	}
	return lessMerged(a, b)
}

// sortResults applies the requested explicit sort, or the default
// relevance merge order when none was given.
func sortResults(results []entities.ScoredResult, query *entities.SearchQuery) {
	if query.SortBy == "name" {
		desc := query.SortDir == entities.SortDesc
		sort.SliceStable(results, func(i, j int) bool {
			a, b := &results[i], &results[j]
			if a.Name != b.Name {
				if desc {
					return a.Name > b.Name
				}
				return a.Name < b.Name
			}
			return lessMerged(a, b)
		})
		return
	}
	sort.SliceStable(results, func(i, j int) bool {
		return lessMerged(&results[i], &results[j])
	})
}

// normalizeSearchQuery validates and normalizes a search query in
// place. Pagination inputs are clamped rather than rejected; malformed
// filters are rejected with field-level validation errors.
func normalizeSearchQuery(q *entities.SearchQuery) error {
	q.Term = strings.TrimSpace(q.Term)
	if q.Term == "" {
		return apperrors.NewFieldValidationError("q", "search term is required")
	}

	if len(q.Types) == 0 {
		q.Types = entities.AllEntityTypes
	}
	for _, t := range q.Types {
		if _, ok := entityTypeOrder[t]; !ok {
			return apperrors.NewFieldValidationError("types", "unknown entity type: "+string(t))
		}
	}

	if q.CapacityMin != nil && q.CapacityMax != nil && *q.CapacityMin > *q.CapacityMax {
		return apperrors.NewFieldValidationError("capacity_min", "capacity_min cannot exceed capacity_max")
	}
	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(*q.EndDate) {
		return apperrors.NewFieldValidationError("start_date", "start_date cannot be after end_date")
	}

	switch q.SortBy {
	case "", "score", "name":
	default:
		return apperrors.NewFieldValidationError("sort_by", "unsupported sort field: "+q.SortBy)
	}
	switch q.SortDir {
	case "", entities.SortAsc, entities.SortDesc:
	default:
		return apperrors.NewFieldValidationError("sort_dir", "sort_dir must be asc or desc")
	}
	if q.SortDir == "" {
		q.SortDir = entities.SortDesc
	}

	q.Page = pagination.ClampPage(q.Page)
	q.Limit = pagination.ClampLimit(q.Limit)
	return nil
}

// normalizeNearbyQuery validates and normalizes a nearby query in place
func normalizeNearbyQuery(q *entities.NearbyQuery) error {
	if q.RadiusKm <= 0 || q.RadiusKm > maxRadiusKm {
		return apperrors.NewFieldValidationError("radius", "radius must be greater than 0 and at most 100 km")
	}

	q.Term = strings.TrimSpace(q.Term)

	if len(q.Types) == 0 {
		q.Types = entities.AllEntityTypes
	}
	for _, t := range q.Types {
		if _, ok := entityTypeOrder[t]; !ok {
			return apperrors.NewFieldValidationError("types", "unknown entity type: "+string(t))
		}
	}

	if q.Limit <= 0 {
		q.Limit = nearbyDefaultLimit
	} else if q.Limit > pagination.MaxLimit {
		q.Limit = pagination.MaxLimit
	}
	return nil
}
