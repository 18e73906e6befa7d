package repository

import (
	"context"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/models"
)

const bannerCols = `id, title, message, banner_type, cta_text, link_url, position, is_active, dismissible, auto_hide_seconds, created_at, updated_at`

var bannerUpdateCols = []string{"title", "message", "banner_type", "cta_text", "link_url", "position", "is_active", "dismissible", "auto_hide_seconds", "updated_at"}

// BannerRepository provides data access for the banners table.
type BannerRepository struct {
	db *database.Pair
}

// NewBannerRepository creates a new BannerRepository.
func NewBannerRepository(db *database.Pair) *BannerRepository {
	return &BannerRepository{db: db}
}

// List returns all active banners, newest first.
func (r *BannerRepository) List(ctx context.Context) ([]*models.Banner, error) {
	query := `SELECT ` + bannerCols + ` FROM banners
	          WHERE is_active = true
	          ORDER BY created_at DESC`
	var banners []*models.Banner
	if err := r.db.Read.SelectContext(ctx, &banners, query); err != nil {
		return nil, err
	}
	return banners, nil
}

// Get fetches one banner by id regardless of is_active.
func (r *BannerRepository) Get(ctx context.Context, id string) (*models.Banner, error) {
	var b models.Banner
	if err := r.db.Read.GetContext(ctx, &b, `SELECT `+bannerCols+` FROM banners WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a banner and fills in the generated id and timestamps.
func (r *BannerRepository) Create(ctx context.Context, b *models.Banner) error {
	query := `INSERT INTO banners (title, message, banner_type, cta_text, link_url, position, is_active, dismissible, auto_hide_seconds)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`
	return r.db.Write.QueryRowxContext(ctx, query,
		b.Title, b.Message, b.BannerType, b.CTAText, b.LinkURL, b.Position, b.IsActive, b.Dismissible, b.AutoHideSeconds,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// Update applies the given whitelisted fields and returns the updated row.
func (r *BannerRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Banner, error) {
	query, args := buildUpdate("banners", bannerUpdateCols, fields, id, bannerCols)
	var b models.Banner
	if err := r.db.Write.GetContext(ctx, &b, query, args...); err != nil {
		return nil, err
	}
	return &b, nil
}

// Delete removes a banner and returns the deleted row.
func (r *BannerRepository) Delete(ctx context.Context, id string) (*models.Banner, error) {
	var b models.Banner
	if err := r.db.Write.GetContext(ctx, &b, `DELETE FROM banners WHERE id = $1 RETURNING `+bannerCols, id); err != nil {
		return nil, err
	}
	return &b, nil
}
