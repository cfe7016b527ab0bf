package services

import (
	"context"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
)

// aggregationService computes facet counts over the filtered candidate
// pool. Counts are taken before ranking and pagination, so the same
// query returns the same facets on every page.
type aggregationService struct {
	venues  repositories.VenueRepository
	artists repositories.ArtistRepository
}

func (s *aggregationService) compute(ctx context.Context, query *entities.SearchQuery, venueFilter repositories.VenueSearchFilter, artistFilter repositories.ArtistSearchFilter) (*entities.Aggregations, error) {
	aggs := entities.NewAggregations()

	if query.HasType(entities.EntityTypeVenue) {
		venueAggs, err := s.venues.FacetCounts(ctx, venueFilter)
		if err != nil {
			return nil, apperrors.NewDependencyError("venue facet counts failed", err)
		}
		aggs.Merge(venueAggs)
	}

	if query.HasType(entities.EntityTypeArtist) {
		genres, err := s.artists.GenreFacetCounts(ctx, artistFilter)
		if err != nil {
			return nil, apperrors.NewDependencyError("artist facet counts failed", err)
		}
		for genre, count := range genres {
			aggs.Genres[genre] += count
		}
	}

	return aggs, nil
}
