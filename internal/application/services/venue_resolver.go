package services

import (
	"context"
	"sort"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
)

// venueResolver fetches the venue candidate pool and ranks it against
// the query term.
type venueResolver struct {
	repo repositories.VenueRepository
}

func (r *venueResolver) filter(query *entities.SearchQuery) repositories.VenueSearchFilter {
	return repositories.VenueSearchFilter{
		Term:           query.Term,
		Genres:         query.Genres,
		StateProvinces: query.StateProvinces,
		Countries:      query.Countries,
		CapacityMin:    query.CapacityMin,
		CapacityMax:    query.CapacityMax,
		ProsperRankMin: query.ProsperRankMin,
		Limit:          candidateCap,
	}
}

func (r *venueResolver) resolve(ctx context.Context, query *entities.SearchQuery) ([]entities.ScoredResult, error) {
	venues, err := r.repo.SearchCandidates(ctx, r.filter(query))
	if err != nil {
		return nil, apperrors.NewDependencyError("venue search failed", err)
	}

	results := make([]entities.ScoredResult, 0, len(venues))
	for _, venue := range venues {
		tier, score, ok := rankName(venue.Name, venue.Genres, query.Term)
		if !ok {
			continue
		}
		results = append(results, scoreVenue(venue, tier, score))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return lessMerged(&results[i], &results[j])
	})
	return results, nil
}

func scoreVenue(venue *entities.Venue, tier int, score float64) entities.ScoredResult {
	return entities.ScoredResult{
		Type:        entities.EntityTypeVenue,
		ID:          venue.ID,
		Name:        venue.Name,
		Description: venue.Address,
		Score:       score,
		Data:        entities.VenueResponse{Venue: *venue},
		Tier:        tier,
		ProsperRank: venue.ProsperRank,
	}
}
