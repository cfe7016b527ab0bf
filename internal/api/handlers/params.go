package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// pathID extracts a numeric path parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewFieldValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter, returning def
// when absent
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewFieldValidationError(name, "must be an integer")
	}
	return v, nil
}

// queryIntPtr parses an optional integer query parameter
func queryIntPtr(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewFieldValidationError(name, "must be an integer")
	}
	return &v, nil
}

// queryFloat parses a required float query parameter
func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperrors.NewFieldValidationError(name, "is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.NewFieldValidationError(name, "must be a number")
	}
	return v, nil
}

// queryBoolPtr parses an optional boolean query parameter
func queryBoolPtr(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewFieldValidationError(name, "must be true or false")
	}
	return &v, nil
}

// queryCSV splits a comma-separated query parameter, dropping empty
// segments
func queryCSV(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// queryCSVAlias reads a CSV parameter by its primary name, falling
// back to an alias when the primary is absent
func queryCSVAlias(r *http.Request, name, alias string) []string {
	if values := queryCSV(r, name); len(values) > 0 {
		return values
	}
	return queryCSV(r, alias)
}

// queryTimePtr parses an optional timestamp query parameter, accepting
// RFC3339 or a bare date
func queryTimePtr(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, apperrors.NewFieldValidationError(name, "must be RFC3339 or YYYY-MM-DD")
}

// queryEntityTypes parses the types parameter (or the singular type
// alias, where "all" means no restriction) into entity type tokens
func queryEntityTypes(r *http.Request) ([]entities.EntityType, error) {
	tokens := queryCSV(r, "types")
	if len(tokens) == 0 {
		single := strings.TrimSpace(r.URL.Query().Get("type"))
		if single == "" || strings.EqualFold(single, "all") {
			return nil, nil
		}
		tokens = []string{single}
	}
	out := make([]entities.EntityType, 0, len(tokens))
	for _, token := range tokens {
		t := entities.EntityType(strings.ToLower(token))
		switch t {
		case entities.EntityTypeVenue, entities.EntityTypeArtist, entities.EntityTypeEvent:
			out = append(out, t)
		default:
			return nil, apperrors.NewFieldValidationError("types", "unknown entity type: "+token)
		}
	}
	return out, nil
}

// queryPageLimit parses the standard pagination parameters
func queryPageLimit(r *http.Request) (page, limit int, err error) {
	page, err = queryInt(r, "page", 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err = queryInt(r, "limit", 0)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}
