package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		limit      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"middle page", 23, 2, 10, 3, true, true},
		{"first page", 23, 1, 10, 3, true, false},
		{"last page", 23, 3, 10, 3, false, true},
		{"exact multiple", 20, 2, 10, 2, false, true},
		{"empty set", 0, 1, 10, 0, false, false},
		{"single result", 1, 1, 50, 1, false, false},
		{"page beyond last", 5, 9, 10, 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Paginate(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.totalPages, m.TotalPages)
			assert.Equal(t, tt.hasNext, m.HasNext)
			assert.Equal(t, tt.hasPrev, m.HasPrev)
			assert.Equal(t, tt.page, m.Page)
			assert.Equal(t, tt.limit, m.Limit)
		})
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-3))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, 50, ClampLimit(50))
	assert.Equal(t, MaxLimit, ClampLimit(500))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(-1))
	assert.Equal(t, 7, ClampPage(7))
}

func TestSlice(t *testing.T) {
	start, end := Slice(23, 2, 10)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = Slice(23, 3, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 23, end)

	// Past the last page collapses to an empty range, not an error.
	start, end = Slice(23, 9, 10)
	assert.Equal(t, 23, start)
	assert.Equal(t, 23, end)
}
