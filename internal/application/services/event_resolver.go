package services

import (
	"context"
	"sort"
	"time"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
)

// eventResolver fetches the event candidate pool (venue and artists
// populated) and ranks title, artist name, and description matches.
type eventResolver struct {
	repo repositories.EventRepository
	now  func() time.Time
}

func (r *eventResolver) filter(query *entities.SearchQuery) repositories.EventSearchFilter {
	return repositories.EventSearchFilter{
		Term:       query.Term,
		StartDate:  query.StartDate,
		EndDate:    query.EndDate,
		HasTickets: query.HasTickets,
		Limit:      candidateCap,
	}
}

func (r *eventResolver) resolve(ctx context.Context, query *entities.SearchQuery) ([]entities.ScoredResult, error) {
	events, err := r.repo.SearchCandidates(ctx, r.filter(query))
	if err != nil {
		return nil, apperrors.NewDependencyError("event search failed", err)
	}

	now := r.now()
	results := make([]entities.ScoredResult, 0, len(events))
	for _, event := range events {
		tier, score, ok := rankEvent(event, query.Term)
		if !ok {
			continue
		}
		results = append(results, scoreEvent(event, tier, score, now))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return lessMerged(&results[i], &results[j])
	})
	return results, nil
}

func scoreEvent(event *entities.Event, tier int, score float64, now time.Time) entities.ScoredResult {
	return entities.ScoredResult{
		Type:          entities.EntityTypeEvent,
		ID:            event.ID,
		Name:          event.Title,
		Description:   event.Description,
		Score:         score,
		Data:          eventResponse(event, now),
		Tier:          tier,
		EventDatetime: event.EventDatetime,
	}
}

// eventResponse computes the days-until decoration used by every event
// payload. Past events carry a negative count.
func eventResponse(event *entities.Event, now time.Time) entities.EventResponse {
	days := int(event.EventDatetime.Sub(now).Hours() / 24)
	return entities.EventResponse{
		Event:          *event,
		DaysUntilEvent: &days,
	}
}
