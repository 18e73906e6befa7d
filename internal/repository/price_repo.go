package repository

import (
	"context"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/models"
)

const priceCols = `id, category, item_key, name, description, price, is_active, created_at, updated_at`

var priceUpdateCols = []string{"name", "description", "price", "is_active", "updated_at"}

// PriceRepository provides data access for the prices table.
type PriceRepository struct {
	db *database.Pair
}

// NewPriceRepository creates a new PriceRepository.
func NewPriceRepository(db *database.Pair) *PriceRepository {
	return &PriceRepository{db: db}
}

// List returns all active prices ordered by category then item key, the
// order the grouping step depends on.
func (r *PriceRepository) List(ctx context.Context) ([]*models.Price, error) {
	query := `SELECT ` + priceCols + ` FROM prices
	          WHERE is_active = true
	          ORDER BY category ASC, item_key ASC`
	var prices []*models.Price
	if err := r.db.Read.SelectContext(ctx, &prices, query); err != nil {
		return nil, err
	}
	return prices, nil
}

// Get fetches one price by id regardless of is_active.
func (r *PriceRepository) Get(ctx context.Context, id string) (*models.Price, error) {
	var p models.Price
	if err := r.db.Read.GetContext(ctx, &p, `SELECT `+priceCols+` FROM prices WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a price and fills in the generated id and timestamps.
// category + item_key carry a unique constraint.
func (r *PriceRepository) Create(ctx context.Context, p *models.Price) error {
	query := `INSERT INTO prices (category, item_key, name, description, price, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`
	return r.db.Write.QueryRowxContext(ctx, query,
		p.Category, p.ItemKey, p.Name, p.Description, p.Price, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update applies the given whitelisted fields and returns the updated row.
func (r *PriceRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Price, error) {
	query, args := buildUpdate("prices", priceUpdateCols, fields, id, priceCols)
	var p models.Price
	if err := r.db.Write.GetContext(ctx, &p, query, args...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a price and returns the deleted row.
func (r *PriceRepository) Delete(ctx context.Context, id string) (*models.Price, error) {
	var p models.Price
	if err := r.db.Write.GetContext(ctx, &p, `DELETE FROM prices WHERE id = $1 RETURNING `+priceCols, id); err != nil {
		return nil, err
	}
	return &p, nil
}
