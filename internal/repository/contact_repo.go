package repository

import (
	"context"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/models"
)

const contactCols = `id, name, email, phone, subject, message, ip_address, user_agent, created_at`

// ContactRepository provides data access for the contact_submissions table.
// Submissions are write-once from the public form; there is no update path.
type ContactRepository struct {
	db *database.Pair
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *database.Pair) *ContactRepository {
	return &ContactRepository{db: db}
}

// List returns all submissions, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]*models.ContactSubmission, error) {
	query := `SELECT ` + contactCols + ` FROM contact_submissions
	          ORDER BY created_at DESC`
	var subs []*models.ContactSubmission
	if err := r.db.Read.SelectContext(ctx, &subs, query); err != nil {
		return nil, err
	}
	return subs, nil
}

// Get fetches one submission by id.
func (r *ContactRepository) Get(ctx context.Context, id string) (*models.ContactSubmission, error) {
	var s models.ContactSubmission
	if err := r.db.Read.GetContext(ctx, &s, `SELECT `+contactCols+` FROM contact_submissions WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a submission and fills in the generated id and timestamp.
func (r *ContactRepository) Create(ctx context.Context, s *models.ContactSubmission) error {
	query := `INSERT INTO contact_submissions (name, email, phone, subject, message, ip_address, user_agent)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`
	return r.db.Write.QueryRowxContext(ctx, query,
		s.Name, s.Email, s.Phone, s.Subject, s.Message, s.IPAddress, s.UserAgent,
	).Scan(&s.ID, &s.CreatedAt)
}
