package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
)

// schemaInitializer is the surface the composition roots need before
// handing the adapter off as a VenueGeoIndex.
type schemaInitializer interface {
	repositories.VenueGeoIndex
	InitSchema(ctx context.Context) error
}

func TestAdapterCoversIndexLifecycle(t *testing.T) {
	var index schemaInitializer = NewTypesenseAdapter(nil)
	assert.NotNil(t, index)
}
