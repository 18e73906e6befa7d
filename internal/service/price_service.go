package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// priceStore is the data access surface PriceService needs.
type priceStore interface {
	List(ctx context.Context) ([]*models.Price, error)
	Get(ctx context.Context, id string) (*models.Price, error)
	Create(ctx context.Context, p *models.Price) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Price, error)
	Delete(ctx context.Context, id string) (*models.Price, error)
}

// PriceService implements the prices resource.
type PriceService struct {
	store priceStore
}

// NewPriceService constructs a PriceService.
func NewPriceService(store priceStore) *PriceService {
	return &PriceService{store: store}
}

// CreatePriceRequest represents the request to create a price entry. Price
// is kept raw so numeric strings can be accepted with a precise error.
type CreatePriceRequest struct {
	Category    string          `json:"category"`
	ItemKey     string          `json:"item_key"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       json.RawMessage `json:"price"`
	IsActive    *bool           `json:"is_active"`
}

// UpdatePriceRequest represents a partial price update.
type UpdatePriceRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Price       json.RawMessage `json:"price"`
	IsActive    *bool           `json:"is_active"`
}

// List returns active prices regrouped by category and item key. The nested
// map is a read-time convenience for the frontend, not a storage format.
func (s *PriceService) List(ctx context.Context) (*Result, error) {
	prices, err := s.store.List(ctx)
	if err != nil {
		return nil, utils.Upstream("Database error", err)
	}

	grouped := map[string]map[string]models.PriceEntry{}
	for _, p := range prices {
		if grouped[p.Category] == nil {
			grouped[p.Category] = map[string]models.PriceEntry{}
		}
		grouped[p.Category][p.ItemKey] = models.PriceEntry{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       float64(p.Price),
		}
	}
	return &Result{Data: grouped, Message: "Prices retrieved"}, nil
}

// Get returns one price row by id.
func (s *PriceService) Get(ctx context.Context, id string) (*Result, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Price")
	}
	return &Result{Data: p, Message: "Price retrieved"}, nil
}

// Create inserts a price entry, applying defaults for omitted fields.
func (s *PriceService) Create(ctx context.Context, req *Request) (*Result, error) {
	var in CreatePriceRequest
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, utils.BadRequest("Category is required")
	}
	if strings.TrimSpace(in.ItemKey) == "" {
		return nil, utils.BadRequest("Item key is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, utils.BadRequest("Name is required")
	}
	if len(in.Price) == 0 {
		return nil, utils.BadRequest("Price is required")
	}
	var price models.Decimal
	if err := price.UnmarshalJSON(in.Price); err != nil {
		return nil, utils.BadRequest("Price must be numeric")
	}

	p := &models.Price{
		Category:    in.Category,
		ItemKey:     in.ItemKey,
		Name:        in.Name,
		Description: strVal(in.Description, ""),
		Price:       price,
		IsActive:    boolVal(in.IsActive, true),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	return &Result{Data: p, Message: "Price created successfully"}, nil
}

// Update applies a partial update and refreshes updated_at.
func (s *PriceService) Update(ctx context.Context, id string, body []byte) (*Result, error) {
	var in UpdatePriceRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}

	fields := map[string]any{}
	setField(fields, "name", in.Name)
	setField(fields, "description", in.Description)
	setField(fields, "is_active", in.IsActive)
	if len(in.Price) > 0 {
		var price models.Decimal
		if err := price.UnmarshalJSON(in.Price); err != nil {
			return nil, utils.BadRequest("Price must be numeric")
		}
		fields["price"] = price
	}
	if len(fields) == 0 {
		return nil, utils.BadRequest("No updatable fields provided")
	}
	fields["updated_at"] = time.Now().UTC()

	p, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err, "Price")
	}
	return &Result{Data: p, Message: "Price updated successfully"}, nil
}

// Delete hard-deletes a price entry and returns the removed row.
func (s *PriceService) Delete(ctx context.Context, id string) (*Result, error) {
	p, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Price")
	}
	return &Result{Data: map[string]any{"deleted": p}, Message: "Price deleted successfully"}, nil
}
