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

// VenueAdapter implements the VenueRepository interface
type VenueAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewVenueAdapter creates a new venue adapter
func NewVenueAdapter(client *postgres.Client) repositories.VenueRepository {
	return &VenueAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var venueColumns = []any{
	goqu.I("v.id"), goqu.I("v.name"), goqu.I("v.city_id"), goqu.I("v.address"),
	goqu.I("v.latitude"), goqu.I("v.longitude"), goqu.I("v.capacity"),
	goqu.I("v.website"), goqu.I("v.prosper_rank"), goqu.I("v.genres"), goqu.I("v.created_at"),
	goqu.I("c.id").As("c_id"), goqu.I("c.name").As("c_name"),
	goqu.I("c.state_province").As("c_state_province"), goqu.I("c.country").As("c_country"),
	goqu.I("c.latitude").As("c_latitude"), goqu.I("c.longitude").As("c_longitude"),
	goqu.I("c.created_at").As("c_created_at"),
}

func venueBase(db *goqu.Database) *goqu.SelectDataset {
	return db.Select(venueColumns...).
		From(goqu.T("venues").As("v")).
		Join(goqu.T("cities").As("c"), goqu.On(goqu.I("v.city_id").Eq(goqu.I("c.id"))))
}

func scanVenue(rows interface{ Scan(...any) error }) (*entities.Venue, error) {
	venue := &entities.Venue{}
	city := &entities.City{}
	var address, website sql.NullString
	var capacity sql.NullInt64

	err := rows.Scan(
		&venue.ID,
		&venue.Name,
		&venue.CityID,
		&address,
		&venue.Coordinates.Latitude,
		&venue.Coordinates.Longitude,
		&capacity,
		&website,
		&venue.ProsperRank,
		pq.Array(&venue.Genres),
		&venue.CreatedAt,
		&city.ID,
		&city.Name,
		&city.StateProvince,
		&city.Country,
		&city.Coordinates.Latitude,
		&city.Coordinates.Longitude,
		&city.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	venue.Address = address.String
	venue.Website = website.String
	if capacity.Valid {
		c := int(capacity.Int64)
		venue.Capacity = &c
	}
	venue.City = city
	return venue, nil
}

// GetByID retrieves a venue with its city joined
func (a *VenueAdapter) GetByID(ctx context.Context, id int64) (*entities.Venue, error) {
	query, args, err := venueBase(a.db).Where(goqu.I("v.id").Eq(id)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build venue query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	venue, err := scanVenue(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("venue with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get venue", err)
	}
	return venue, nil
}

// ListByCity retrieves venues in a city with the total match count
func (a *VenueAdapter) ListByCity(ctx context.Context, cityID int64, limit, offset int) ([]*entities.Venue, int, error) {
	countQuery, countArgs, err := a.db.Select(goqu.COUNT("*")).
		From("venues").
		Where(goqu.I("city_id").Eq(cityID)).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count venues", err)
	}

	query, args, err := venueBase(a.db).
		Where(goqu.I("v.city_id").Eq(cityID)).
		Order(goqu.I("v.prosper_rank").Desc(), goqu.I("v.id").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build venue query", err)
	}

	venues, err := a.queryVenues(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

// List retrieves venues in id order, used for index backfills
func (a *VenueAdapter) List(ctx context.Context, limit, offset int) ([]*entities.Venue, error) {
	query, args, err := venueBase(a.db).
		Order(goqu.I("v.id").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build venue query", err)
	}
	return a.queryVenues(ctx, query, args)
}

// SearchCandidates fetches the filtered venue candidate pool. All
// structural predicates are pushed into SQL; exact tier ranking runs
// in the search core afterwards.
func (a *VenueAdapter) SearchCandidates(ctx context.Context, filter repositories.VenueSearchFilter) ([]*entities.Venue, error) {
	ds := a.applyFilter(venueBase(a.db), filter).
		Order(goqu.I("v.prosper_rank").Desc(), goqu.I("v.id").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build venue search query", err)
	}
	return a.queryVenues(ctx, query, args)
}

// FacetCounts computes genre/state/country counts over the filtered
// venue pool. Facets are computed before ranking, so they describe the
// candidate pool rather than the final page.
func (a *VenueAdapter) FacetCounts(ctx context.Context, filter repositories.VenueSearchFilter) (*entities.Aggregations, error) {
	aggs := entities.NewAggregations()

	base := a.applyFilter(
		a.db.Select().From(goqu.T("venues").As("v")).
			Join(goqu.T("cities").As("c"), goqu.On(goqu.I("v.city_id").Eq(goqu.I("c.id")))),
		filter,
	)

	stateQuery, stateArgs, err := base.
		Select(goqu.I("c.state_province"), goqu.COUNT("*")).
		GroupBy(goqu.I("c.state_province")).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build state facet query", err)
	}
	if err := a.scanFacet(ctx, stateQuery, stateArgs, aggs.StateProvinces); err != nil {
		return nil, err
	}

	countryQuery, countryArgs, err := base.
		Select(goqu.I("c.country"), goqu.COUNT("*")).
		GroupBy(goqu.I("c.country")).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build country facet query", err)
	}
	if err := a.scanFacet(ctx, countryQuery, countryArgs, aggs.Countries); err != nil {
		return nil, err
	}

	// Genre arrays need unnesting before grouping; goqu has no natural
	// expression for that, so the facet query drops to raw SQL around
	// the filtered subquery.
	subSQL, subArgs, err := base.Select(goqu.I("v.genres")).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build genre facet query", err)
	}
	genreQuery := fmt.Sprintf(
		"SELECT g.genre, COUNT(*) FROM (%s) AS f, LATERAL unnest(f.genres) AS g(genre) GROUP BY g.genre",
		subSQL,
	)
	if err := a.scanFacet(ctx, genreQuery, subArgs, aggs.Genres); err != nil {
		return nil, err
	}

	return aggs, nil
}

func (a *VenueAdapter) applyFilter(ds *goqu.SelectDataset, filter repositories.VenueSearchFilter) *goqu.SelectDataset {
	if filter.Term != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Term)
		ds = ds.Where(goqu.Or(
			goqu.I("v.name").ILike(pattern),
			// && compares array elements exactly; the ranking rules
			// treat genres case-insensitively, so the pool must too
			goqu.L("EXISTS (SELECT 1 FROM unnest(v.genres) AS g(genre) WHERE lower(g.genre) = lower(?))", filter.Term),
		))
	}
	if len(filter.Genres) > 0 {
		ds = ds.Where(goqu.L("v.genres && ?", pq.Array(filter.Genres)))
	}
	if len(filter.StateProvinces) > 0 {
		ds = ds.Where(goqu.I("c.state_province").In(filter.StateProvinces))
	}
	if len(filter.Countries) > 0 {
		ds = ds.Where(goqu.I("c.country").In(filter.Countries))
	}
	if filter.CapacityMin != nil {
		ds = ds.Where(goqu.I("v.capacity").Gte(*filter.CapacityMin))
	}
	if filter.CapacityMax != nil {
		ds = ds.Where(goqu.I("v.capacity").Lte(*filter.CapacityMax))
	}
	if filter.ProsperRankMin != nil {
		ds = ds.Where(goqu.I("v.prosper_rank").Gte(*filter.ProsperRankMin))
	}
	if filter.Bounds != nil {
		ds = ds.Where(
			goqu.I("v.latitude").Between(goqu.Range(filter.Bounds.MinLat, filter.Bounds.MaxLat)),
			goqu.I("v.longitude").Between(goqu.Range(filter.Bounds.MinLon, filter.Bounds.MaxLon)),
		)
	}
	return ds
}

func (a *VenueAdapter) queryVenues(ctx context.Context, query string, args []any) ([]*entities.Venue, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query venues", err)
	}
	defer rows.Close()

	venues := []*entities.Venue{}
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan venue", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating venues", err)
	}
	return venues, nil
}

func (a *VenueAdapter) scanFacet(ctx context.Context, query string, args []any, counts entities.FacetCounts) error {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to query facet counts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		var count int
		if err := rows.Scan(&value, &count); err != nil {
			return apperrors.NewInternalError("failed to scan facet count", err)
		}
		counts[value] = count
	}
	return rows.Err()
}
