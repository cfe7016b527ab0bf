package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"
)

// MediaAdapter implements the MediaRepository interface
type MediaAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMediaAdapter creates a new media adapter
func NewMediaAdapter(client *postgres.Client) repositories.MediaRepository {
	return &MediaAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByArtist retrieves media items for an artist with the total count
func (a *MediaAdapter) ListByArtist(ctx context.Context, artistID int64, limit, offset int) ([]*entities.Media, int, error) {
	total, err := a.CountByArtist(ctx, artistID)
	if err != nil {
		return nil, 0, err
	}

	query, args, err := a.db.Select("id", "artist_id", "type", "url", "created_at").
		From("media").
		Where(goqu.I("artist_id").Eq(artistID)).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build media query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to query media", err)
	}
	defer rows.Close()

	items := []*entities.Media{}
	for rows.Next() {
		media := &entities.Media{}
		if err := rows.Scan(&media.ID, &media.ArtistID, &media.Type, &media.URL, &media.CreatedAt); err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan media", err)
		}
		items = append(items, media)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("error iterating media", err)
	}
	return items, total, nil
}

// CountByArtist counts media items for an artist
func (a *MediaAdapter) CountByArtist(ctx context.Context, artistID int64) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("media").
		Where(goqu.I("artist_id").Eq(artistID)).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to count media", err)
	}
	return total, nil
}
