package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/zatekoja/venue-explorer/internal/domain/entities"
	"github.com/zatekoja/venue-explorer/internal/domain/repositories"
	"github.com/zatekoja/venue-explorer/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"
)

// EventAdapter implements the EventRepository interface
type EventAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewEventAdapter creates a new event adapter
func NewEventAdapter(client *postgres.Client) repositories.EventRepository {
	return &EventAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var eventColumns = []any{
	goqu.I("e.id"), goqu.I("e.venue_id"), goqu.I("e.title"), goqu.I("e.description"),
	goqu.I("e.event_datetime"), goqu.I("e.ticket_url"), goqu.I("e.external_id"), goqu.I("e.created_at"),
}

func eventBase(db *goqu.Database) *goqu.SelectDataset {
	cols := append([]any{}, eventColumns...)
	cols = append(cols, venueColumns...)
	return db.Select(cols...).
		From(goqu.T("events").As("e")).
		Join(goqu.T("venues").As("v"), goqu.On(goqu.I("e.venue_id").Eq(goqu.I("v.id")))).
		Join(goqu.T("cities").As("c"), goqu.On(goqu.I("v.city_id").Eq(goqu.I("c.id"))))
}

func scanEvent(rows interface{ Scan(...any) error }) (*entities.Event, error) {
	event := &entities.Event{}
	venue := &entities.Venue{}
	city := &entities.City{}
	var description, ticketURL, externalID sql.NullString
	var address, website sql.NullString
	var capacity sql.NullInt64

	err := rows.Scan(
		&event.ID,
		&event.VenueID,
		&event.Title,
		&description,
		&event.EventDatetime,
		&ticketURL,
		&externalID,
		&event.CreatedAt,
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

	event.Description = description.String
	event.TicketURL = ticketURL.String
	event.ExternalID = externalID.String
	venue.Address = address.String
	venue.Website = website.String
	if capacity.Valid {
		c := int(capacity.Int64)
		venue.Capacity = &c
	}
	venue.City = city
	event.Venue = venue
	return event, nil
}

// GetByIDWithDetails retrieves an event with venue and artists
func (a *EventAdapter) GetByIDWithDetails(ctx context.Context, id int64) (*entities.Event, error) {
	query, args, err := eventBase(a.db).Where(goqu.I("e.id").Eq(id)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build event query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("event with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get event", err)
	}

	if err := a.loadArtists(ctx, []*entities.Event{event}); err != nil {
		return nil, err
	}
	return event, nil
}

// ListByVenue retrieves events at a venue with the total count
func (a *EventAdapter) ListByVenue(ctx context.Context, venueID int64, upcomingOnly bool, limit, offset int) ([]*entities.Event, int, error) {
	cond := []goqu.Expression{goqu.I("e.venue_id").Eq(venueID)}
	if upcomingOnly {
		cond = append(cond, goqu.I("e.event_datetime").Gte(time.Now()))
	}
	return a.listWithCount(ctx, cond, limit, offset)
}

// ListUpcomingByArtist retrieves upcoming events featuring an artist
func (a *EventAdapter) ListUpcomingByArtist(ctx context.Context, artistID int64, limit, offset int) ([]*entities.Event, int, error) {
	cond := []goqu.Expression{
		goqu.I("e.event_datetime").Gte(time.Now()),
		artistMembership(artistID),
	}
	return a.listWithCount(ctx, cond, limit, offset)
}

// CountUpcomingByVenue counts upcoming events at a venue
func (a *EventAdapter) CountUpcomingByVenue(ctx context.Context, venueID int64) (int, error) {
	return a.count(ctx, goqu.I("venue_id").Eq(venueID), goqu.I("event_datetime").Gte(time.Now()))
}

// CountUpcomingByArtist counts upcoming events featuring an artist
func (a *EventAdapter) CountUpcomingByArtist(ctx context.Context, artistID int64) (int, error) {
	return a.count(ctx,
		goqu.I("event_datetime").Gte(time.Now()),
		goqu.L(
			"EXISTS (SELECT 1 FROM event_artists ea WHERE ea.event_id = events.id AND ea.artist_id = ?)",
			artistID,
		),
	)
}

// SearchCandidates fetches the filtered event candidate pool with
// venue and artists populated
func (a *EventAdapter) SearchCandidates(ctx context.Context, filter repositories.EventSearchFilter) ([]*entities.Event, error) {
	ds := eventBase(a.db)

	if filter.Term != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Term)
		ds = ds.Where(goqu.Or(
			goqu.I("e.title").ILike(pattern),
			goqu.I("e.description").ILike(pattern),
			goqu.L(
				"EXISTS (SELECT 1 FROM event_artists ea JOIN artists ar ON ea.artist_id = ar.id WHERE ea.event_id = e.id AND ar.name ILIKE ?)",
				pattern,
			),
		))
	}
	if filter.StartDate != nil {
		ds = ds.Where(goqu.I("e.event_datetime").Gte(*filter.StartDate))
	}
	if filter.EndDate != nil {
		ds = ds.Where(goqu.I("e.event_datetime").Lte(*filter.EndDate))
	}
	if filter.HasTickets != nil {
		if *filter.HasTickets {
			ds = ds.Where(goqu.I("e.ticket_url").IsNotNull(), goqu.I("e.ticket_url").Neq(""))
		} else {
			ds = ds.Where(goqu.Or(goqu.I("e.ticket_url").IsNull(), goqu.I("e.ticket_url").Eq("")))
		}
	}
	if filter.Bounds != nil {
		ds = ds.Where(
			goqu.I("v.latitude").Between(goqu.Range(filter.Bounds.MinLat, filter.Bounds.MaxLat)),
			goqu.I("v.longitude").Between(goqu.Range(filter.Bounds.MinLon, filter.Bounds.MaxLon)),
		)
	}

	ds = ds.Order(goqu.I("e.event_datetime").Asc(), goqu.I("e.id").Asc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build event search query", err)
	}

	events, err := a.queryEvents(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if err := a.loadArtists(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func artistMembership(artistID int64) goqu.Expression {
	return goqu.L(
		"EXISTS (SELECT 1 FROM event_artists ea WHERE ea.event_id = e.id AND ea.artist_id = ?)",
		artistID,
	)
}

func (a *EventAdapter) listWithCount(ctx context.Context, conds []goqu.Expression, limit, offset int) ([]*entities.Event, int, error) {
	countDS := a.db.Select(goqu.COUNT("*")).
		From(goqu.T("events").As("e")).
		Where(conds...)
	countQuery, countArgs, err := countDS.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count events", err)
	}

	ds := eventBase(a.db).Where(conds...).
		Order(goqu.I("e.event_datetime").Asc(), goqu.I("e.id").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset))

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build event query", err)
	}

	events, err := a.queryEvents(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	if err := a.loadArtists(ctx, events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (a *EventAdapter) count(ctx context.Context, conds ...goqu.Expression) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).From("events").Where(conds...).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to count events", err)
	}
	return total, nil
}

func (a *EventAdapter) queryEvents(ctx context.Context, query string, args []any) ([]*entities.Event, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query events", err)
	}
	defer rows.Close()

	events := []*entities.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating events", err)
	}
	return events, nil
}

// loadArtists populates Artists for a batch of events in one query
func (a *EventAdapter) loadArtists(ctx context.Context, events []*entities.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]int64, len(events))
	byID := make(map[int64]*entities.Event, len(events))
	for i, e := range events {
		ids[i] = e.ID
		byID[e.ID] = e
	}

	query, args, err := a.db.Select(
		goqu.I("ea.event_id"),
		goqu.I("ar.id"), goqu.I("ar.name"), goqu.I("ar.genres"),
		goqu.I("ar.photo_url"), goqu.I("ar.profile_bio"), goqu.I("ar.created_at"),
	).
		From(goqu.T("event_artists").As("ea")).
		Join(goqu.T("artists").As("ar"), goqu.On(goqu.I("ea.artist_id").Eq(goqu.I("ar.id")))).
		Where(goqu.I("ea.event_id").In(ids)).
		Order(goqu.I("ea.event_id").Asc(), goqu.I("ar.id").Asc()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build event artists query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to query event artists", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		artist := entities.Artist{}
		var photoURL, profileBio sql.NullString

		err := rows.Scan(
			&eventID,
			&artist.ID,
			&artist.Name,
			pq.Array(&artist.Genres),
			&photoURL,
			&profileBio,
			&artist.CreatedAt,
		)
		if err != nil {
			return apperrors.NewInternalError("failed to scan event artist", err)
		}

		artist.PhotoURL = photoURL.String
		artist.ProfileBio = profileBio.String
		if event, ok := byID[eventID]; ok {
			event.Artists = append(event.Artists, artist)
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewInternalError("error iterating event artists", err)
	}
	return nil
}
