package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// calendarStore is the data access surface CalendarService needs.
type calendarStore interface {
	List(ctx context.Context) ([]*models.CalendarEvent, error)
	Get(ctx context.Context, id string) (*models.CalendarEvent, error)
	Create(ctx context.Context, e *models.CalendarEvent) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.CalendarEvent, error)
	Delete(ctx context.Context, id string) (*models.CalendarEvent, error)
}

// CalendarService implements the calendar resource.
type CalendarService struct {
	store calendarStore
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(store calendarStore) *CalendarService {
	return &CalendarService{store: store}
}

// CreateCalendarEventRequest represents the request to create an event.
type CreateCalendarEventRequest struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	TimeStart   *string `json:"time_start"`
	TimeEnd     *string `json:"time_end"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateCalendarEventRequest represents a partial event update.
type UpdateCalendarEventRequest struct {
	Name        *string `json:"name"`
	Date        *string `json:"date"`
	TimeStart   *string `json:"time_start"`
	TimeEnd     *string `json:"time_end"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// List returns all active events, soonest first.
func (s *CalendarService) List(ctx context.Context) (*Result, error) {
	events, err := s.store.List(ctx)
	if err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	if events == nil {
		events = []*models.CalendarEvent{}
	}
	return &Result{Data: events, Message: "Events retrieved"}, nil
}

// Get returns one event by id.
func (s *CalendarService) Get(ctx context.Context, id string) (*Result, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Event")
	}
	return &Result{Data: e, Message: "Event retrieved"}, nil
}

// Create inserts an event, applying defaults for omitted fields.
func (s *CalendarService) Create(ctx context.Context, req *Request) (*Result, error) {
	var in CreateCalendarEventRequest
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, utils.BadRequest("Name is required")
	}
	if err := validateDate(in.Date); err != nil {
		return nil, err
	}

	e := &models.CalendarEvent{
		Name:        in.Name,
		Date:        in.Date,
		TimeStart:   strVal(in.TimeStart, ""),
		TimeEnd:     strVal(in.TimeEnd, ""),
		Location:    strVal(in.Location, ""),
		Description: strVal(in.Description, ""),
		IsActive:    boolVal(in.IsActive, true),
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	return &Result{Data: e, Message: "Event created successfully"}, nil
}

// Update applies a partial update and refreshes updated_at.
func (s *CalendarService) Update(ctx context.Context, id string, body []byte) (*Result, error) {
	var in UpdateCalendarEventRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if in.Date != nil {
		if err := validateDate(*in.Date); err != nil {
			return nil, err
		}
	}

	fields := map[string]any{}
	setField(fields, "name", in.Name)
	setField(fields, "date", in.Date)
	setField(fields, "time_start", in.TimeStart)
	setField(fields, "time_end", in.TimeEnd)
	setField(fields, "location", in.Location)
	setField(fields, "description", in.Description)
	setField(fields, "is_active", in.IsActive)
	if len(fields) == 0 {
		return nil, utils.BadRequest("No updatable fields provided")
	}
	fields["updated_at"] = time.Now().UTC()

	e, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err, "Event")
	}
	return &Result{Data: e, Message: "Event updated successfully"}, nil
}

// Delete hard-deletes an event and returns the removed row.
func (s *CalendarService) Delete(ctx context.Context, id string) (*Result, error) {
	e, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Event")
	}
	return &Result{Data: map[string]any{"deleted": e}, Message: "Event deleted successfully"}, nil
}

// validateDate checks the YYYY-MM-DD shape event dates must have.
func validateDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return utils.BadRequest("Date is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return utils.BadRequest("Date must be in YYYY-MM-DD format")
	}
	return nil
}
