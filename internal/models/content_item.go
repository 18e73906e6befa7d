package models

import "time"

// ContentItem is a free-form copy block addressed by (section, key).
type ContentItem struct {
	ID        string    `db:"id" json:"id"`
	Section   string    `db:"section" json:"section"`
	Key       string    `db:"key" json:"key"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ContentEntry is the per-key shape used inside the grouped content payload.
type ContentEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
