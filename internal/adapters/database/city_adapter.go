package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"
)

// CityAdapter implements the CityRepository interface
type CityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCityAdapter creates a new city adapter
func NewCityAdapter(client *postgres.Client) repositories.CityRepository {
	return &CityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var cityColumns = []any{"id", "name", "state_province", "country", "latitude", "longitude", "created_at"}

func scanCity(rows interface{ Scan(...any) error }) (*entities.City, error) {
	city := &entities.City{}
	err := rows.Scan(
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
	return city, nil
}

// GetByID retrieves a city by ID
func (a *CityAdapter) GetByID(ctx context.Context, id int64) (*entities.City, error) {
	query, args, err := a.db.Select(cityColumns...).
		From("cities").
		Where(goqu.I("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build city query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	city, err := scanCity(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("city with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get city", err)
	}
	return city, nil
}

// List retrieves cities with the total count
func (a *CityAdapter) List(ctx context.Context, limit, offset int) ([]*entities.City, int, error) {
	countQuery, countArgs, err := a.db.Select(goqu.COUNT("*")).From("cities").ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count cities", err)
	}

	query, args, err := a.db.Select(cityColumns...).
		From("cities").
		Order(goqu.I("name").Asc(), goqu.I("id").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build city query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to query cities", err)
	}
	defer rows.Close()

	cities := []*entities.City{}
	for rows.Next() {
		city, err := scanCity(rows)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan city", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("error iterating cities", err)
	}
	return cities, total, nil
}

// ListRegions rolls cities up into (state_province, country) regions
// with city and venue counts
func (a *CityAdapter) ListRegions(ctx context.Context) ([]*entities.Region, error) {
	query, args, err := a.db.Select(
		goqu.I("c.state_province"),
		goqu.I("c.country"),
		goqu.L("COUNT(DISTINCT c.id)"),
		goqu.L("COUNT(DISTINCT v.id)"),
	).
		From(goqu.T("cities").As("c")).
		LeftJoin(goqu.T("venues").As("v"), goqu.On(goqu.I("v.city_id").Eq(goqu.I("c.id")))).
		GroupBy(goqu.I("c.state_province"), goqu.I("c.country")).
		Order(goqu.I("c.state_province").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build region query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query regions", err)
	}
	defer rows.Close()

	regions := []*entities.Region{}
	for rows.Next() {
		region := &entities.Region{}
		if err := rows.Scan(&region.Name, &region.Country, &region.CityCount, &region.VenueCount); err != nil {
			return nil, apperrors.NewInternalError("failed to scan region", err)
		}
		region.DisplayName = fmt.Sprintf("%s, %s", region.Name, region.Country)
		regions = append(regions, region)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating regions", err)
	}
	return regions, nil
}

// ListCitiesByRegion retrieves cities whose state_province matches the
// region, busiest first. An unknown region is an empty page, not an
// error.
func (a *CityAdapter) ListCitiesByRegion(ctx context.Context, region string, limit, offset int) ([]*entities.RegionCity, int, error) {
	countQuery, countArgs, err := a.db.Select(goqu.COUNT("*")).
		From("cities").
		Where(goqu.I("state_province").Eq(region)).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count region cities", err)
	}

	query, args, err := a.db.Select(
		goqu.I("c.id"), goqu.I("c.name"), goqu.I("c.state_province"), goqu.I("c.country"),
		goqu.I("c.latitude"), goqu.I("c.longitude"), goqu.I("c.created_at"),
		goqu.L("COUNT(v.id)"),
	).
		From(goqu.T("cities").As("c")).
		LeftJoin(goqu.T("venues").As("v"), goqu.On(goqu.I("v.city_id").Eq(goqu.I("c.id")))).
		Where(goqu.I("c.state_province").Eq(region)).
		GroupBy(
			goqu.I("c.id"), goqu.I("c.name"), goqu.I("c.state_province"), goqu.I("c.country"),
			goqu.I("c.latitude"), goqu.I("c.longitude"), goqu.I("c.created_at"),
		).
		Order(goqu.L("COUNT(v.id)").Desc(), goqu.I("c.name").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build region city query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to query region cities", err)
	}
	defer rows.Close()

	cities := []*entities.RegionCity{}
	for rows.Next() {
		city := &entities.RegionCity{}
		err := rows.Scan(
			&city.ID,
			&city.Name,
			&city.StateProvince,
			&city.Country,
			&city.Coordinates.Latitude,
			&city.Coordinates.Longitude,
			&city.CreatedAt,
			&city.VenueCount,
		)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan region city", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("error iterating region cities", err)
	}
	return cities, total, nil
}
