package entities

import (
	"time"

	"github.com/zatekoja/venue-explorer/pkg/geo"
	"github.com/zatekoja/venue-explorer/pkg/pagination"
)

// EntityType tags the three searchable entity kinds
type EntityType string

const (
	EntityTypeVenue  EntityType = "venue"
	EntityTypeArtist EntityType = "artist"
	EntityTypeEvent  EntityType = "event"
)

// AllEntityTypes is the default search scope, in merge-tie-break order
var AllEntityTypes = []EntityType{EntityTypeVenue, EntityTypeArtist, EntityTypeEvent}

// SortDirection is asc or desc
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SearchQuery carries one universal search request. It is built once
// per request and never mutated after normalization.
type SearchQuery struct {
	Term           string
	Types          []EntityType
	Genres         []string
	StateProvinces []string
	Countries      []string
	CapacityMin    *int
	CapacityMax    *int
	ProsperRankMin *int
	StartDate      *time.Time
	EndDate        *time.Time
	HasTickets     *bool
	HasBio         *bool
	HasPhoto       *bool
	SortBy         string
	SortDir        SortDirection
	Page           int
	Limit          int
}

// HasType reports whether the query includes the given entity type
func (q *SearchQuery) HasType(t EntityType) bool {
	for _, qt := range q.Types {
		if qt == t {
			return true
		}
	}
	return false
}

// NearbyQuery carries one proximity search request
type NearbyQuery struct {
	Center   geo.Coordinate
	RadiusKm float64
	Term     string
	Types    []EntityType
	Limit    int
}

// HasType reports whether the query includes the given entity type
func (q *NearbyQuery) HasType(t EntityType) bool {
	for _, qt := range q.Types {
		if qt == t {
			return true
		}
	}
	return false
}

// ScoredResult is one ranked search hit. Results are created fresh per
// search invocation and never cached across requests.
type ScoredResult struct {
	Type        EntityType `json:"type"`
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Score       float64    `json:"score"`
	DistanceKm  *float64   `json:"distance_km,omitempty"`
	Data        any        `json:"data"`

	// Tier is the discrete match bucket (lower = better), the primary
	// merge key. Not serialized; Score is the client-facing signal.
	Tier int `json:"-"`

	// sort auxiliaries, set by the resolvers
	ProsperRank   int       `json:"-"`
	EventDatetime time.Time `json:"-"`
}

// FacetCounts maps a facet value to its match count
type FacetCounts map[string]int

// Aggregations holds per-dimension facet counts computed over the
// filtered candidate pool, independent of pagination.
type Aggregations struct {
	Genres         FacetCounts `json:"genres"`
	StateProvinces FacetCounts `json:"state_provinces"`
	Countries      FacetCounts `json:"countries"`
}

// NewAggregations returns empty, non-nil facet maps
func NewAggregations() *Aggregations {
	return &Aggregations{
		Genres:         FacetCounts{},
		StateProvinces: FacetCounts{},
		Countries:      FacetCounts{},
	}
}

// Merge adds the counts of other into a
func (a *Aggregations) Merge(other *Aggregations) {
	if other == nil {
		return
	}
	for k, v := range other.Genres {
		a.Genres[k] += v
	}
	for k, v := range other.StateProvinces {
		a.StateProvinces[k] += v
	}
	for k, v := range other.Countries {
		a.Countries[k] += v
	}
}

// SearchResponse is the envelope returned by both search operations
type SearchResponse struct {
	Query        string              `json:"query"`
	Total        int                 `json:"total"`
	Results      []ScoredResult      `json:"results"`
	Aggregations *Aggregations       `json:"aggregations"`
	Pagination   pagination.Metadata `json:"pagination"`
}
