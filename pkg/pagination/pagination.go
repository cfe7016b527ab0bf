// Package pagination computes page metadata for collection responses.
// The rule everywhere in this API is: match the entire dataset first,
// then paginate the matched set.
package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Metadata describes the position of a page within a result set
type Metadata struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate computes metadata for a total match count. Limit must be
// positive; callers clamp it before reaching here.
func Paginate(total, page, limit int) Metadata {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Metadata{
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ClampLimit forces limit into [1, MaxLimit], applying the default for
// non-positive input.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ClampPage coerces page to at least 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Slice returns the [start, end) index range of the requested page
// within a sequence of length total.
func Slice(total, page, limit int) (int, int) {
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}
