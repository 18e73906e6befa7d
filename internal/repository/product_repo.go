package repository

import (
	"context"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/models"
)

const productCols = `id, name, description, image_url, category, is_active, sort_order, created_at, updated_at`

// productUpdateCols is the whitelist of columns a partial update may touch.
var productUpdateCols = []string{"name", "description", "image_url", "category", "is_active", "sort_order", "updated_at"}

// ProductRepository provides data access for the products table.
type ProductRepository struct {
	db *database.Pair
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *database.Pair) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns all active products in display order.
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productCols + ` FROM products
	          WHERE is_active = true
	          ORDER BY sort_order ASC, created_at DESC`
	var products []*models.Product
	if err := r.db.Read.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches one product by id regardless of is_active.
func (r *ProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.db.Read.GetContext(ctx, &p, `SELECT `+productCols+` FROM products WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a product and fills in the generated id and timestamps.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	query := `INSERT INTO products (name, description, image_url, category, is_active, sort_order)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`
	return r.db.Write.QueryRowxContext(ctx, query,
		p.Name, p.Description, p.ImageURL, p.Category, p.IsActive, p.SortOrder,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update applies the given whitelisted fields and returns the updated row.
func (r *ProductRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Product, error) {
	query, args := buildUpdate("products", productUpdateCols, fields, id, productCols)
	var p models.Product
	if err := r.db.Write.GetContext(ctx, &p, query, args...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a product and returns the deleted row.
func (r *ProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.db.Write.GetContext(ctx, &p, `DELETE FROM products WHERE id = $1 RETURNING `+productCols, id); err != nil {
		return nil, err
	}
	return &p, nil
}
