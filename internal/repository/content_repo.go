package repository

import (
	"context"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/models"
)

// key is reserved in some SQL dialects; it stays quoted throughout.
const contentCols = `id, section, "key", title, content, is_active, created_at, updated_at`

var contentUpdateCols = []string{"section", "key", "title", "content", "is_active", "updated_at"}

// ContentRepository provides data access for the content table.
type ContentRepository struct {
	db *database.Pair
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(db *database.Pair) *ContentRepository {
	return &ContentRepository{db: db}
}

// List returns all active content blocks ordered by section then key, the
// order the grouping step depends on.
func (r *ContentRepository) List(ctx context.Context) ([]*models.ContentItem, error) {
	query := `SELECT ` + contentCols + ` FROM content
	          WHERE is_active = true
	          ORDER BY section ASC, "key" ASC`
	var items []*models.ContentItem
	if err := r.db.Read.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one content block by id regardless of is_active.
func (r *ContentRepository) Get(ctx context.Context, id string) (*models.ContentItem, error) {
	var ci models.ContentItem
	if err := r.db.Read.GetContext(ctx, &ci, `SELECT `+contentCols+` FROM content WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &ci, nil
}

// Create inserts a content block and fills in the generated id and
// timestamps. section + key carry a unique constraint.
func (r *ContentRepository) Create(ctx context.Context, ci *models.ContentItem) error {
	query := `INSERT INTO content (section, "key", title, content, is_active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	return r.db.Write.QueryRowxContext(ctx, query,
		ci.Section, ci.Key, ci.Title, ci.Content, ci.IsActive,
	).Scan(&ci.ID, &ci.CreatedAt, &ci.UpdatedAt)
}

// Update applies the given whitelisted fields and returns the updated row.
func (r *ContentRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.ContentItem, error) {
	query, args := buildUpdate("content", contentUpdateCols, fields, id, contentCols)
	var ci models.ContentItem
	if err := r.db.Write.GetContext(ctx, &ci, query, args...); err != nil {
		return nil, err
	}
	return &ci, nil
}

// Delete removes a content block and returns the deleted row.
func (r *ContentRepository) Delete(ctx context.Context, id string) (*models.ContentItem, error) {
	var ci models.ContentItem
	if err := r.db.Write.GetContext(ctx, &ci, `DELETE FROM content WHERE id = $1 RETURNING `+contentCols, id); err != nil {
		return nil, err
	}
	return &ci, nil
}
