package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/moremori/moremori-api/internal/models"
)

type fakeCalendarStore struct {
	rows    []*models.CalendarEvent
	created *models.CalendarEvent
	updated map[string]any
}

func (f *fakeCalendarStore) List(ctx context.Context) ([]*models.CalendarEvent, error) {
	return f.rows, nil
}

func (f *fakeCalendarStore) Get(ctx context.Context, id string) (*models.CalendarEvent, error) {
	for _, e := range f.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCalendarStore) Create(ctx context.Context, e *models.CalendarEvent) error {
	e.ID = "event-1"
	f.created = e
	return nil
}

func (f *fakeCalendarStore) Update(ctx context.Context, id string, fields map[string]any) (*models.CalendarEvent, error) {
	f.updated = fields
	for _, e := range f.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCalendarStore) Delete(ctx context.Context, id string) (*models.CalendarEvent, error) {
	for _, e := range f.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestCalendarCreateValidatesDate(t *testing.T) {
	svc := NewCalendarService(&fakeCalendarStore{})

	cases := []struct {
		date string
		ok   bool
	}{
		{"2026-09-15", true},
		{"2026-9-15", false},
		{"15.09.2026", false},
		{"", false},
		{"2026-13-40", false},
	}
	for _, tc := range cases {
		body := []byte(`{"name":"Market day","date":"` + tc.date + `"}`)
		_, err := svc.Create(context.Background(), &Request{Body: body})
		if tc.ok && err != nil {
			t.Fatalf("date %q: unexpected error %v", tc.date, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("date %q: expected error", tc.date)
		}
	}
}

func TestCalendarUpdateValidatesDate(t *testing.T) {
	store := &fakeCalendarStore{rows: []*models.CalendarEvent{{ID: "1"}}}
	svc := NewCalendarService(store)

	if _, err := svc.Update(context.Background(), "1", []byte(`{"date":"next tuesday"}`)); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := svc.Update(context.Background(), "1", []byte(`{"date":"2026-10-01"}`)); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if store.updated["date"] != "2026-10-01" {
		t.Fatalf("unexpected date field: %v", store.updated["date"])
	}
}

func TestCalendarDeleteReturnsRemovedRow(t *testing.T) {
	store := &fakeCalendarStore{rows: []*models.CalendarEvent{{ID: "1", Name: "Market day"}}}
	svc := NewCalendarService(store)

	res, err := svc.Delete(context.Background(), "1")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	payload, ok := res.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data type %T", res.Data)
	}
	deleted, ok := payload["deleted"].(*models.CalendarEvent)
	if !ok || deleted.Name != "Market day" {
		t.Fatalf("unexpected deleted payload: %v", payload["deleted"])
	}
}
