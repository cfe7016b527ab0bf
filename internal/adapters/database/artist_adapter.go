package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"
)

// ArtistAdapter implements the ArtistRepository interface
type ArtistAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewArtistAdapter creates a new artist adapter
func NewArtistAdapter(client *postgres.Client) repositories.ArtistRepository {
	return &ArtistAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var artistColumns = []any{"id", "name", "genres", "photo_url", "profile_bio", "created_at"}

func scanArtist(rows interface{ Scan(...any) error }) (*entities.Artist, error) {
	artist := &entities.Artist{}
	var photoURL, profileBio sql.NullString

	err := rows.Scan(
		&artist.ID,
		&artist.Name,
		pq.Array(&artist.Genres),
		&photoURL,
		&profileBio,
		&artist.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	artist.PhotoURL = photoURL.String
	artist.ProfileBio = profileBio.String
	return artist, nil
}

// GetByID retrieves an artist by ID
func (a *ArtistAdapter) GetByID(ctx context.Context, id int64) (*entities.Artist, error) {
	query, args, err := a.db.Select(artistColumns...).
		From("artists").
		Where(goqu.I("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build artist query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	artist, err := scanArtist(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("artist with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get artist", err)
	}
	return artist, nil
}

// SearchCandidates fetches the filtered artist candidate pool
func (a *ArtistAdapter) SearchCandidates(ctx context.Context, filter repositories.ArtistSearchFilter) ([]*entities.Artist, error) {
	ds := a.applyFilter(a.db.Select(artistColumns...).From("artists"), filter).
		Order(goqu.I("name").Asc(), goqu.I("id").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build artist search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query artists", err)
	}
	defer rows.Close()

	artists := []*entities.Artist{}
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan artist", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating artists", err)
	}
	return artists, nil
}

// GenreFacetCounts computes genre counts over the filtered artist pool
func (a *ArtistAdapter) GenreFacetCounts(ctx context.Context, filter repositories.ArtistSearchFilter) (entities.FacetCounts, error) {
	base := a.applyFilter(a.db.Select(goqu.I("genres")).From("artists"), filter)
	subSQL, subArgs, err := base.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build genre facet query", err)
	}

	query := fmt.Sprintf(
		"SELECT g.genre, COUNT(*) FROM (%s) AS f, LATERAL unnest(f.genres) AS g(genre) GROUP BY g.genre",
		subSQL,
	)

	rows, err := a.client.DB().QueryContext(ctx, query, subArgs...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query genre facets", err)
	}
	defer rows.Close()

	counts := entities.FacetCounts{}
	for rows.Next() {
		var genre string
		var count int
		if err := rows.Scan(&genre, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan genre facet", err)
		}
		counts[genre] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating genre facets", err)
	}
	return counts, nil
}

func (a *ArtistAdapter) applyFilter(ds *goqu.SelectDataset, filter repositories.ArtistSearchFilter) *goqu.SelectDataset {
	if filter.Term != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Term)
		ds = ds.Where(goqu.Or(
			goqu.I("name").ILike(pattern),
			// && compares array elements exactly; the ranking rules
			// treat genres case-insensitively, so the pool must too
			goqu.L("EXISTS (SELECT 1 FROM unnest(genres) AS g(genre) WHERE lower(g.genre) = lower(?))", filter.Term),
		))
	}
	if len(filter.Genres) > 0 {
		ds = ds.Where(goqu.L("genres && ?", pq.Array(filter.Genres)))
	}
	if filter.HasBio != nil {
		if *filter.HasBio {
			ds = ds.Where(goqu.I("profile_bio").IsNotNull(), goqu.I("profile_bio").Neq(""))
		} else {
			ds = ds.Where(goqu.Or(goqu.I("profile_bio").IsNull(), goqu.I("profile_bio").Eq("")))
		}
	}
	if filter.HasPhoto != nil {
		if *filter.HasPhoto {
			ds = ds.Where(goqu.I("photo_url").IsNotNull(), goqu.I("photo_url").Neq(""))
		} else {
			ds = ds.Where(goqu.Or(goqu.I("photo_url").IsNull(), goqu.I("photo_url").Eq("")))
		}
	}
	return ds
}
