package repositories

import (
	"context"

	"github.com/zatekoja/venue-explorer/internal/domain/entities"
)

// MediaRepository defines the interface for artist media operations
type MediaRepository interface {
	// ListByArtist retrieves media items for an artist with the total count
	ListByArtist(ctx context.Context, artistID int64, limit, offset int) ([]*entities.Media, int, error)

	// CountByArtist counts media items for an artist
	CountByArtist(ctx context.Context, artistID int64) (int, error)
}
