package models

import "time"

// NewsletterSubscription stores one signup. Email is unique; a duplicate
// signup is answered as "already registered" instead of an error.
type NewsletterSubscription struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Source    string    `db:"source" json:"source"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
