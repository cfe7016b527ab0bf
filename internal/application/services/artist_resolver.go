package services

import (
	"context"
	"sort"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
)

// artistResolver fetches the artist candidate pool and ranks it with
// the same name policy venues use.
type artistResolver struct {
	repo repositories.ArtistRepository
}

func (r *artistResolver) filter(query *entities.SearchQuery) repositories.ArtistSearchFilter {
	return repositories.ArtistSearchFilter{
		Term:     query.Term,
		Genres:   query.Genres,
		HasBio:   query.HasBio,
		HasPhoto: query.HasPhoto,
		Limit:    candidateCap,
	}
}

func (r *artistResolver) resolve(ctx context.Context, query *entities.SearchQuery) ([]entities.ScoredResult, error) {
	artists, err := r.repo.SearchCandidates(ctx, r.filter(query))
	if err != nil {
		return nil, apperrors.NewDependencyError("artist search failed", err)
	}

	results := make([]entities.ScoredResult, 0, len(artists))
	for _, artist := range artists {
		tier, score, ok := rankName(artist.Name, artist.Genres, query.Term)
		if !ok {
			continue
		}
		results = append(results, entities.ScoredResult{
			Type:        entities.EntityTypeArtist,
			ID:          artist.ID,
			Name:        artist.Name,
			Description: artist.ProfileBio,
			Score:       score,
			Data:        entities.ArtistResponse{Artist: *artist},
			Tier:        tier,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return lessMerged(&results[i], &results[j])
	})
	return results, nil
}
