package repository

import (
	"context"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/models"
)

const settingCols = `id, category, "key", value, description`

var settingUpdateCols = []string{"value", "description"}

// SettingRepository provides data access for the settings table.
type SettingRepository struct {
	db *database.Pair
}

// NewSettingRepository creates a new SettingRepository.
func NewSettingRepository(db *database.Pair) *SettingRepository {
	return &SettingRepository{db: db}
}

// List returns all settings ordered by category then key, the order the
// grouping step depends on.
func (r *SettingRepository) List(ctx context.Context) ([]*models.Setting, error) {
	query := `SELECT ` + settingCols + ` FROM settings
	          ORDER BY category ASC, "key" ASC`
	var settings []*models.Setting
	if err := r.db.Read.SelectContext(ctx, &settings, query); err != nil {
		return nil, err
	}
	return settings, nil
}

// Get fetches one setting by id.
func (r *SettingRepository) Get(ctx context.Context, id string) (*models.Setting, error) {
	var s models.Setting
	if err := r.db.Read.GetContext(ctx, &s, `SELECT `+settingCols+` FROM settings WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a setting and fills in the generated id. category + key
// carry a unique constraint.
func (r *SettingRepository) Create(ctx context.Context, s *models.Setting) error {
	query := `INSERT INTO settings (category, "key", value, description)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	return r.db.Write.QueryRowxContext(ctx, query,
		s.Category, s.Key, s.Value, s.Description,
	).Scan(&s.ID)
}

// Update applies the given whitelisted fields and returns the updated row.
// Only value and description are mutable; category and key identify the
// setting and never change.
func (r *SettingRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Setting, error) {
	query, args := buildUpdate("settings", settingUpdateCols, fields, id, settingCols)
	var s models.Setting
	if err := r.db.Write.GetContext(ctx, &s, query, args...); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a setting and returns the deleted row.
func (r *SettingRepository) Delete(ctx context.Context, id string) (*models.Setting, error) {
	var s models.Setting
	if err := r.db.Write.GetContext(ctx, &s, `DELETE FROM settings WHERE id = $1 RETURNING `+settingCols, id); err != nil {
		return nil, err
	}
	return &s, nil
}
