package repository

import (
	"context"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/models"
)

const newsletterCols = `id, email, name, source, is_active, created_at`

// NewsletterRepository provides data access for the newsletter_subscriptions
// table. Signups are write-once; duplicates surface as unique violations the
// service layer turns into an "already registered" response.
type NewsletterRepository struct {
	db *database.Pair
}

// NewNewsletterRepository creates a new NewsletterRepository.
func NewNewsletterRepository(db *database.Pair) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// List returns all active subscriptions, newest first.
func (r *NewsletterRepository) List(ctx context.Context) ([]*models.NewsletterSubscription, error) {
	query := `SELECT ` + newsletterCols + ` FROM newsletter_subscriptions
	          WHERE is_active = true
	          ORDER BY created_at DESC`
	var subs []*models.NewsletterSubscription
	if err := r.db.Read.SelectContext(ctx, &subs, query); err != nil {
		return nil, err
	}
	return subs, nil
}

// Get fetches one subscription by id regardless of is_active.
func (r *NewsletterRepository) Get(ctx context.Context, id string) (*models.NewsletterSubscription, error) {
	var s models.NewsletterSubscription
	if err := r.db.Read.GetContext(ctx, &s, `SELECT `+newsletterCols+` FROM newsletter_subscriptions WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a subscription and fills in the generated id and timestamp.
func (r *NewsletterRepository) Create(ctx context.Context, s *models.NewsletterSubscription) error {
	query := `INSERT INTO newsletter_subscriptions (email, name, source, is_active)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	return r.db.Write.QueryRowxContext(ctx, query,
		s.Email, s.Name, s.Source, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt)
}
