package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"valid", 52.52, 13.405, false},
		{"valid extremes", -90, 180, false},
		{"latitude too high", 90.01, 0, true},
		{"latitude too low", -91, 0, true},
		{"longitude too high", 0, 180.5, true},
		{"longitude too low", 0, -181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoordinate(tt.lat, tt.lon)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDistanceKm(t *testing.T) {
	berlin := Coordinate{Latitude: 52.5200, Longitude: 13.4050}
	hamburg := Coordinate{Latitude: 53.5511, Longitude: 9.9937}

	t.Run("identical points are zero", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceKm(berlin, berlin))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, DistanceKm(berlin, hamburg), DistanceKm(hamburg, berlin))
	})

	t.Run("known distance", func(t *testing.T) {
		// Berlin to Hamburg is roughly 255 km
		d := DistanceKm(berlin, hamburg)
		assert.InDelta(t, 255, d, 5)
	})
}

func TestWithinRadius(t *testing.T) {
	center := Coordinate{Latitude: 52.52, Longitude: 13.405}
	near := Coordinate{Latitude: 52.53, Longitude: 13.42}
	far := Coordinate{Latitude: 53.55, Longitude: 9.99}

	assert.True(t, WithinRadius(center, near, 5))
	assert.False(t, WithinRadius(center, far, 100))
	assert.True(t, WithinRadius(center, center, 0.001))
}

func TestBoundingBox_ContainsRadius(t *testing.T) {
	center, err := NewCoordinate(40.7128, -74.0060)
	require.NoError(t, err)

	b := BoundingBox(center, 25)

	// Points just inside the radius in each cardinal direction must
	// fall inside the box.
	offsets := []Coordinate{
		{Latitude: center.Latitude + 0.22, Longitude: center.Longitude},
		{Latitude: center.Latitude - 0.22, Longitude: center.Longitude},
		{Latitude: center.Latitude, Longitude: center.Longitude + 0.29},
		{Latitude: center.Latitude, Longitude: center.Longitude - 0.29},
	}
	for _, p := range offsets {
		require.True(t, WithinRadius(center, p, 25))
		assert.True(t, b.Contains(p))
	}
}

func TestBoundingBox_Poles(t *testing.T) {
	center := Coordinate{Latitude: 89.9, Longitude: 0}
	b := BoundingBox(center, 50)

	assert.Equal(t, -180.0, b.MinLon)
	assert.Equal(t, 180.0, b.MaxLon)
	assert.Equal(t, 90.0, b.MaxLat)
}
