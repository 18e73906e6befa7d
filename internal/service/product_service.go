package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// productStore is the data access surface ProductService needs.
type productStore interface {
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}

// ProductService implements the products resource.
type ProductService struct {
	store productStore
}

// NewProductService constructs a ProductService.
func NewProductService(store productStore) *ProductService {
	return &ProductService{store: store}
}

// CreateProductRequest represents the request to create a product.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Category    *string `json:"category"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateProductRequest represents a partial product update. Only fields
// present in the body are written.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Category    *string `json:"category"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// List returns all active products.
func (s *ProductService) List(ctx context.Context) (*Result, error) {
	products, err := s.store.List(ctx)
	if err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	if products == nil {
		products = []*models.Product{}
	}
	return &Result{Data: products, Message: "Products retrieved"}, nil
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*Result, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Product")
	}
	return &Result{Data: p, Message: "Product retrieved"}, nil
}

// Create inserts a product, applying defaults for omitted fields.
func (s *ProductService) Create(ctx context.Context, req *Request) (*Result, error) {
	var in CreateProductRequest
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, utils.BadRequest("Name is required")
	}

	p := &models.Product{
		Name:        in.Name,
		Description: strVal(in.Description, ""),
		ImageURL:    strVal(in.ImageURL, ""),
		Category:    strVal(in.Category, "general"),
		SortOrder:   intVal(in.SortOrder, 0),
		IsActive:    boolVal(in.IsActive, true),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	return &Result{Data: p, Message: "Product created successfully"}, nil
}

// Update applies a partial update and refreshes updated_at.
func (s *ProductService) Update(ctx context.Context, id string, body []byte) (*Result, error) {
	var in UpdateProductRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}

	fields := map[string]any{}
	setField(fields, "name", in.Name)
	setField(fields, "description", in.Description)
	setField(fields, "image_url", in.ImageURL)
	setField(fields, "category", in.Category)
	setField(fields, "sort_order", in.SortOrder)
	setField(fields, "is_active", in.IsActive)
	if len(fields) == 0 {
		return nil, utils.BadRequest("No updatable fields provided")
	}
	fields["updated_at"] = time.Now().UTC()

	p, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err, "Product")
	}
	return &Result{Data: p, Message: "Product updated successfully"}, nil
}

// Delete hard-deletes a product and returns the removed row.
func (s *ProductService) Delete(ctx context.Context, id string) (*Result, error) {
	p, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Product")
	}
	return &Result{Data: map[string]any{"deleted": p}, Message: "Product deleted successfully"}, nil
}
