package models

import "time"

// ContactSubmission stores one public contact-form message. IP address and
// user agent are captured server-side and may be absent.
type ContactSubmission struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	IPAddress *string   `db:"ip_address" json:"ip_address"`
	UserAgent *string   `db:"user_agent" json:"user_agent"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
