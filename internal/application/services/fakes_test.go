package services

import (
	"context"
	"errors"
	"strings"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
	"github.com/zatekoja/venue-explorer/pkg/geo"
)

var errStoreDown = errors.New("store unavailable")

// broadTermMatch mirrors the store-level candidate prefilter: a
// case-insensitive substring match on the text, or an exact genre hit.
func broadTermMatch(term, text string, genres []string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(text), strings.ToLower(term)) {
		return true
	}
	for _, g := range genres {
		if strings.EqualFold(g, term) {
			return true
		}
	}
	return false
}

type fakeVenueRepo struct {
	venues []*entities.Venue
	fail   bool
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id int64) (*entities.Venue, error) {
	for _, v := range f.venues {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, errStoreDown
}

func (f *fakeVenueRepo) ListByCity(context.Context, int64, int, int) ([]*entities.Venue, int, error) {
	return f.venues, len(f.venues), nil
}

func (f *fakeVenueRepo) List(context.Context, int, int) ([]*entities.Venue, error) {
	return f.venues, nil
}

func (f *fakeVenueRepo) SearchCandidates(_ context.Context, filter repositories.VenueSearchFilter) ([]*entities.Venue, error) {
	if f.fail {
		return nil, errStoreDown
	}
	var out []*entities.Venue
	for _, v := range f.venues {
		if !broadTermMatch(filter.Term, v.Name, v.Genres) {
			continue
		}
		if filter.Bounds != nil && !filter.Bounds.Contains(v.Coordinates) {
			continue
		}
		if filter.CapacityMin != nil && (v.Capacity == nil || *v.Capacity < *filter.CapacityMin) {
			continue
		}
		out = append(out, v)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeVenueRepo) FacetCounts(ctx context.Context, filter repositories.VenueSearchFilter) (*entities.Aggregations, error) {
	if f.fail {
		return nil, errStoreDown
	}
	filter.Limit = 0
	pool, err := f.SearchCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}
	aggs := entities.NewAggregations()
	for _, v := range pool {
		for _, g := range v.Genres {
			aggs.Genres[g]++
		}
		if v.City != nil {
			aggs.StateProvinces[v.City.StateProvince]++
			aggs.Countries[v.City.Country]++
		}
	}
	return aggs, nil
}

type fakeArtistRepo struct {
	artists []*entities.Artist
	fail    bool
}

func (f *fakeArtistRepo) GetByID(_ context.Context, id int64) (*entities.Artist, error) {
	for _, a := range f.artists {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errStoreDown
}

func (f *fakeArtistRepo) SearchCandidates(_ context.Context, filter repositories.ArtistSearchFilter) ([]*entities.Artist, error) {
	if f.fail {
		return nil, errStoreDown
	}
	var out []*entities.Artist
	for _, a := range f.artists {
		if !broadTermMatch(filter.Term, a.Name, a.Genres) {
			continue
		}
		out = append(out, a)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeArtistRepo) GenreFacetCounts(ctx context.Context, filter repositories.ArtistSearchFilter) (entities.FacetCounts, error) {
	if f.fail {
		return nil, errStoreDown
	}
	filter.Limit = 0
	pool, err := f.SearchCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}
	counts := entities.FacetCounts{}
	for _, a := range pool {
		for _, g := range a.Genres {
			counts[g]++
		}
	}
	return counts, nil
}

type fakeEventRepo struct {
	events []*entities.Event
	fail   bool
}

func (f *fakeEventRepo) eventMatches(e *entities.Event, term string) bool {
	if term == "" {
		return true
	}
	if broadTermMatch(term, e.Title, nil) || broadTermMatch(term, e.Description, nil) {
		return true
	}
	for _, a := range e.Artists {
		if broadTermMatch(term, a.Name, nil) {
			return true
		}
	}
	return false
}

func (f *fakeEventRepo) GetByIDWithDetails(_ context.Context, id int64) (*entities.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errStoreDown
}

func (f *fakeEventRepo) ListByVenue(context.Context, int64, bool, int, int) ([]*entities.Event, int, error) {
	return f.events, len(f.events), nil
}

func (f *fakeEventRepo) ListUpcomingByArtist(context.Context, int64, int, int) ([]*entities.Event, int, error) {
	return f.events, len(f.events), nil
}

func (f *fakeEventRepo) CountUpcomingByVenue(context.Context, int64) (int, error) {
	return len(f.events), nil
}

func (f *fakeEventRepo) CountUpcomingByArtist(context.Context, int64) (int, error) {
	return len(f.events), nil
}

func (f *fakeEventRepo) SearchCandidates(_ context.Context, filter repositories.EventSearchFilter) ([]*entities.Event, error) {
	if f.fail {
		return nil, errStoreDown
	}
	var out []*entities.Event
	for _, e := range f.events {
		if !f.eventMatches(e, filter.Term) {
			continue
		}
		if filter.Bounds != nil && (e.Venue == nil || !filter.Bounds.Contains(e.Venue.Coordinates)) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

type fakeGeoIndex struct {
	venues []*entities.Venue
	fail   bool
	calls  int
}

func (f *fakeGeoIndex) FindNearby(_ context.Context, center geo.Coordinate, radiusKm float64, limit int) ([]*entities.Venue, error) {
	f.calls++
	if f.fail {
		return nil, errStoreDown
	}
	out := []*entities.Venue{}
	for _, v := range f.venues {
		if geo.DistanceKm(center, v.Coordinates) <= radiusKm {
			out = append(out, v)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeGeoIndex) Index(context.Context, *entities.Venue) error { return nil }
