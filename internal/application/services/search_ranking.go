package services

import (
	"strings"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// Match tiers. Lower is better; the tier is the primary merge key and
// the score breaks ties for clients that only see the number.
const (
	tierExact     = 1
	tierPrefix    = 2
	tierSubstring = 3
	tierGenre     = 4

	tierEventTitle       = 1
	tierEventArtist      = 2
	tierEventDescription = 3

	// tierUnranked admits results that were never text-matched, e.g.
	// nearby search without a query term. Always sorts last.
	tierUnranked = 5
)

const (
	scoreExact     = 100.0
	scorePrefix    = 75.0
	scoreSubstring = 50.0
	scoreGenre     = 25.0

	scoreEventTitle       = 100.0
	scoreEventArtist      = 70.0
	scoreEventDescription = 40.0
)

// rankName applies the shared venue/artist name policy: exact match,
// then prefix, then substring, then genre overlap with the term taken
// as a single genre token. Returns ok=false when nothing matched.
func rankName(name string, genres []string, term string) (tier int, score float64, ok bool) {
	if term == "" {
		return tierUnranked, 0, true
	}

	t := strings.ToLower(term)
	n := strings.ToLower(name)

	switch {
	case n == t:
		return tierExact, scoreExact, true
	case strings.HasPrefix(n, t):
		return tierPrefix, scorePrefix, true
	case strings.Contains(n, t):
		return tierSubstring, scoreSubstring, true
	}

	for _, g := range genres {
		if strings.EqualFold(g, term) {
			return tierGenre, scoreGenre, true
		}
	}
	return 0, 0, false
}

// rankEvent matches the term against title, then associated artist
// names, then the description. Returns ok=false when nothing matched.
func rankEvent(event *entities.Event, term string) (tier int, score float64, ok bool) {
	if term == "" {
		return tierUnranked, 0, true
	}

	t := strings.ToLower(term)

	if strings.Contains(strings.ToLower(event.Title), t) {
		return tierEventTitle, scoreEventTitle, true
	}
	for _, artist := range event.Artists {
		if strings.Contains(strings.ToLower(artist.Name), t) {
			return tierEventArtist, scoreEventArtist, true
		}
	}
	if event.Description != "" && strings.Contains(strings.ToLower(event.Description), t) {
		return tierEventDescription, scoreEventDescription, true
	}
	return 0, 0, false
}

// entityTypeOrder fixes the relative order of different entity types
// inside one tier, so that interleaved results paginate the same way
// on every run.
var entityTypeOrder = map[entities.EntityType]int{
	entities.EntityTypeVenue:  0,
	entities.EntityTypeArtist: 1,
	entities.EntityTypeEvent:  2,
}

// lessMerged is the global result ordering: tier ascending, then the
// per-type popularity proxy (venue prosper rank descending, artist
// name ascending, event datetime ascending), then id ascending as the
// total-order tie-break.
func lessMerged(a, b *entities.ScoredResult) bool {
	if a.Tier != b.Tier {
		return a.Tier < b.Tier
	}
	if a.Type != b.Type {
		return entityTypeOrder[a.Type] < entityTypeOrder[b.Type]
	}
	switch a.Type {
	case entities.EntityTypeVenue:
		if a.ProsperRank != b.ProsperRank {
			return a.ProsperRank > b.ProsperRank
		}
	case entities.EntityTypeArtist:
		if a.Name != b.Name {
			return a.Name < b.Name
		}
	case entities.EntityTypeEvent:
		if !a.EventDatetime.Equal(b.EventDatetime) {
			return a.EventDatetime.Before(b.EventDatetime)
		}
	}
	return a.ID < b.ID
}
