package repository

import (
	"context"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/models"
)

const allergyCols = `id, product_type, allergen, is_active`

var allergyUpdateCols = []string{"product_type", "allergen", "is_active"}

// AllergyRepository provides data access for the allergies table.
type AllergyRepository struct {
	db *database.Pair
}

// NewAllergyRepository creates a new AllergyRepository.
func NewAllergyRepository(db *database.Pair) *AllergyRepository {
	return &AllergyRepository{db: db}
}

// List returns all active allergy rows ordered by product type then
// allergen, the order the grouping step depends on.
func (r *AllergyRepository) List(ctx context.Context) ([]*models.Allergy, error) {
	query := `SELECT ` + allergyCols + ` FROM allergies
	          WHERE is_active = true
	          ORDER BY product_type ASC, allergen ASC`
	var rows []*models.Allergy
	if err := r.db.Read.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}

// Get fetches one allergy row by id regardless of is_active.
func (r *AllergyRepository) Get(ctx context.Context, id string) (*models.Allergy, error) {
	var a models.Allergy
	if err := r.db.Read.GetContext(ctx, &a, `SELECT `+allergyCols+` FROM allergies WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an allergy row and fills in the generated id.
func (r *AllergyRepository) Create(ctx context.Context, a *models.Allergy) error {
	query := `INSERT INTO allergies (product_type, allergen, is_active)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	return r.db.Write.QueryRowxContext(ctx, query,
		a.ProductType, a.Allergen, a.IsActive,
	).Scan(&a.ID)
}

// Update applies the given whitelisted fields and returns the updated row.
// The allergies table carries no timestamps.
func (r *AllergyRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Allergy, error) {
	query, args := buildUpdate("allergies", allergyUpdateCols, fields, id, allergyCols)
	var a models.Allergy
	if err := r.db.Write.GetContext(ctx, &a, query, args...); err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes an allergy row and returns the deleted row.
func (r *AllergyRepository) Delete(ctx context.Context, id string) (*models.Allergy, error) {
	var a models.Allergy
	if err := r.db.Write.GetContext(ctx, &a, `DELETE FROM allergies WHERE id = $1 RETURNING `+allergyCols, id); err != nil {
		return nil, err
	}
	return &a, nil
}
