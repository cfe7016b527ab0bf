package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

func TestRankName(t *testing.T) {
	tests := []struct {
		name     string
		entity   string
		genres   []string
		term     string
		wantTier int
		wantOK   bool
	}{
		{"exact match", "The Fillmore", nil, "the fillmore", tierExact, true},
		{"exact is case insensitive", "BERGHAIN", nil, "berghain", tierExact, true},
		{"prefix match", "Fillmore East", nil, "fillmore", tierPrefix, true},
		{"substring match", "Great American Music Hall", nil, "music", tierSubstring, true},
		{"genre overlap", "Blue Note", []string{"jazz", "blues"}, "jazz", tierGenre, true},
		{"genre is case insensitive", "Blue Note", []string{"Jazz"}, "jazz", tierGenre, true},
		{"no match excluded", "Red Rocks", []string{"rock"}, "techno", 0, false},
		{"name beats genre", "Jazz Cafe", []string{"jazz"}, "jazz", tierPrefix, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, _, ok := rankName(tt.entity, tt.genres, tt.term)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantTier, tier)
			}
		})
	}
}

func TestRankNameEmptyTermAdmitsUnranked(t *testing.T) {
	tier, score, ok := rankName("Anywhere", nil, "")
	assert.True(t, ok)
	assert.Equal(t, tierUnranked, tier)
	assert.Zero(t, score)
}

func TestRankEvent(t *testing.T) {
	event := &entities.Event{
		Title:       "Jazz Night at the Park",
		Description: "An evening of improvisation",
		Artists: []entities.Artist{
			{Name: "Miles Ahead Quartet"},
		},
	}

	tests := []struct {
		name     string
		term     string
		wantTier int
		wantOK   bool
	}{
		{"title match", "jazz night", tierEventTitle, true},
		{"artist match", "miles", tierEventArtist, true},
		{"description match", "improvisation", tierEventDescription, true},
		{"title wins over description", "jazz", tierEventTitle, true},
		{"no match excluded", "metal", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, _, ok := rankEvent(event, tt.term)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantTier, tier)
			}
		})
	}
}

func TestLessMergedOrdering(t *testing.T) {
	when := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	results := []entities.ScoredResult{
		{Type: entities.EntityTypeEvent, ID: 9, Tier: tierExact, EventDatetime: when.Add(48 * time.Hour)},
		{Type: entities.EntityTypeArtist, ID: 4, Name: "Beta", Tier: tierExact},
		{Type: entities.EntityTypeVenue, ID: 2, Tier: tierPrefix, ProsperRank: 90},
		{Type: entities.EntityTypeVenue, ID: 7, Tier: tierExact, ProsperRank: 10},
		{Type: entities.EntityTypeVenue, ID: 1, Tier: tierExact, ProsperRank: 80},
		{Type: entities.EntityTypeArtist, ID: 3, Name: "Alpha", Tier: tierExact},
		{Type: entities.EntityTypeEvent, ID: 8, Tier: tierExact, EventDatetime: when},
	}
	sortResults(results, &entities.SearchQuery{})

	gotIDs := make([]int64, len(results))
	for i, r := range results {
		gotIDs[i] = r.ID
	}
	// tier 1: venues by prosper rank desc, artists by name, events by
	// datetime; tier 2 follows.
	assert.Equal(t, []int64{1, 7, 3, 4, 8, 9, 2}, gotIDs)
}

func TestLessMergedTieBreaksByID(t *testing.T) {
	a := entities.ScoredResult{Type: entities.EntityTypeVenue, ID: 5, Tier: tierExact, ProsperRank: 50}
	b := entities.ScoredResult{Type: entities.EntityTypeVenue, ID: 6, Tier: tierExact, ProsperRank: 50}
	assert.True(t, lessMerged(&a, &b))
	assert.False(t, lessMerged(&b, &a))
}
