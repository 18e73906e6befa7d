package models

import "time"

// CalendarEvent represents a dated event surfaced as a popup on the public
// site. Date is kept as YYYY-MM-DD text in API payloads; times are free-form
// (e.g. "14:00").
type CalendarEvent struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Date        string    `db:"date" json:"date"`
	TimeStart   string    `db:"time_start" json:"time_start"`
	TimeEnd     string    `db:"time_end" json:"time_end"`
	Location    string    `db:"location" json:"location"`
	Description string    `db:"description" json:"description"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
