package repository

import (
	"context"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/models"
)

const faqCols = `id, question, answer, category, sort_order, is_active, created_at, updated_at`

var faqUpdateCols = []string{"question", "answer", "category", "sort_order", "is_active", "updated_at"}

// FAQRepository provides data access for the faq table.
type FAQRepository struct {
	db *database.Pair
}

// NewFAQRepository creates a new FAQRepository.
func NewFAQRepository(db *database.Pair) *FAQRepository {
	return &FAQRepository{db: db}
}

// List returns all active FAQ items in display order.
func (r *FAQRepository) List(ctx context.Context) ([]*models.FAQItem, error) {
	query := `SELECT ` + faqCols + ` FROM faq
	          WHERE is_active = true
	          ORDER BY sort_order ASC`
	var items []*models.FAQItem
	if err := r.db.Read.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one FAQ item by id regardless of is_active.
func (r *FAQRepository) Get(ctx context.Context, id string) (*models.FAQItem, error) {
	var f models.FAQItem
	if err := r.db.Read.GetContext(ctx, &f, `SELECT `+faqCols+` FROM faq WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a FAQ item and fills in the generated id and timestamps.
func (r *FAQRepository) Create(ctx context.Context, f *models.FAQItem) error {
	query := `INSERT INTO faq (question, answer, category, sort_order, is_active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	return r.db.Write.QueryRowxContext(ctx, query,
		f.Question, f.Answer, f.Category, f.SortOrder, f.IsActive,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

// Update applies the given whitelisted fields and returns the updated row.
func (r *FAQRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.FAQItem, error) {
	query, args := buildUpdate("faq", faqUpdateCols, fields, id, faqCols)
	var f models.FAQItem
	if err := r.db.Write.GetContext(ctx, &f, query, args...); err != nil {
		return nil, err
	}
	return &f, nil
}

// Delete removes a FAQ item and returns the deleted row.
func (r *FAQRepository) Delete(ctx context.Context, id string) (*models.FAQItem, error) {
	var f models.FAQItem
	if err := r.db.Write.GetContext(ctx, &f, `DELETE FROM faq WHERE id = $1 RETURNING `+faqCols, id); err != nil {
		return nil, err
	}
	return &f, nil
}
