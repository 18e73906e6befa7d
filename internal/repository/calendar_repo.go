package repository

import (
	"context"
	"time"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/models"
)

// date is a DATE column; it is cast to text so payloads carry plain
// YYYY-MM-DD strings.
const calendarCols = `id, name, date::text AS date, time_start, time_end, location, description, is_active, created_at, updated_at`

var calendarUpdateCols = []string{"name", "date", "time_start", "time_end", "location", "description", "is_active", "updated_at"}

// CalendarRepository provides data access for the calendar_events table.
type CalendarRepository struct {
	db *database.Pair
}

// NewCalendarRepository creates a new CalendarRepository.
func NewCalendarRepository(db *database.Pair) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// List returns all active events, soonest first.
func (r *CalendarRepository) List(ctx context.Context) ([]*models.CalendarEvent, error) {
	query := `SELECT ` + calendarCols + ` FROM calendar_events
	          WHERE is_active = true
	          ORDER BY date ASC`
	var events []*models.CalendarEvent
	if err := r.db.Read.SelectContext(ctx, &events, query); err != nil {
		return nil, err
	}
	return events, nil
}

// Get fetches one event by id regardless of is_active.
func (r *CalendarRepository) Get(ctx context.Context, id string) (*models.CalendarEvent, error) {
	var e models.CalendarEvent
	if err := r.db.Read.GetContext(ctx, &e, `SELECT `+calendarCols+` FROM calendar_events WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts an event and fills in the generated id and timestamps.
func (r *CalendarRepository) Create(ctx context.Context, e *models.CalendarEvent) error {
	query := `INSERT INTO calendar_events (name, date, time_start, time_end, location, description, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`
	return r.db.Write.QueryRowxContext(ctx, query,
		e.Name, e.Date, e.TimeStart, e.TimeEnd, e.Location, e.Description, e.IsActive,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Update applies the given whitelisted fields and returns the updated row.
func (r *CalendarRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.CalendarEvent, error) {
	query, args := buildUpdate("calendar_events", calendarUpdateCols, fields, id, calendarCols)
	var e models.CalendarEvent
	if err := r.db.Write.GetContext(ctx, &e, query, args...); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an event and returns the deleted row.
func (r *CalendarRepository) Delete(ctx context.Context, id string) (*models.CalendarEvent, error) {
	var e models.CalendarEvent
	if err := r.db.Write.GetContext(ctx, &e, `DELETE FROM calendar_events WHERE id = $1 RETURNING `+calendarCols, id); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeactivatePast flips is_active off for events dated before cutoff
// (YYYY-MM-DD) and returns how many rows changed. Used by the calendar
// sweep worker. updated_at is supplied by the caller like every other write.
func (r *CalendarRepository) DeactivatePast(ctx context.Context, cutoff string, updatedAt time.Time) (int64, error) {
	res, err := r.db.Write.ExecContext(ctx,
		`UPDATE calendar_events SET is_active = false, updated_at = $2 WHERE is_active = true AND date < $1`,
		cutoff, updatedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
