package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// allergyStore is the data access surface AllergyService needs.
type allergyStore interface {
	List(ctx context.Context) ([]*models.Allergy, error)
	Get(ctx context.Context, id string) (*models.Allergy, error)
	Create(ctx context.Context, a *models.Allergy) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Allergy, error)
	Delete(ctx context.Context, id string) (*models.Allergy, error)
}

// AllergyService implements the allergies resource.
type AllergyService struct {
	store allergyStore
}

// NewAllergyService constructs an AllergyService.
func NewAllergyService(store allergyStore) *AllergyService {
	return &AllergyService{store: store}
}

// CreateAllergyRequest represents the request to create an allergy row.
type CreateAllergyRequest struct {
	ProductType string `json:"product_type"`
	Allergen    string `json:"allergen"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateAllergyRequest represents a partial allergy update.
type UpdateAllergyRequest struct {
	ProductType *string `json:"product_type"`
	Allergen    *string `json:"allergen"`
	IsActive    *bool   `json:"is_active"`
}

// List returns active allergens regrouped by product type.
func (s *AllergyService) List(ctx context.Context) (*Result, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, utils.Upstream("Database error", err)
	}

	grouped := map[string][]string{}
	for _, a := range rows {
		grouped[a.ProductType] = append(grouped[a.ProductType], a.Allergen)
	}
	return &Result{Data: grouped, Message: "Allergies retrieved"}, nil
}

// Get returns one allergy row by id.
func (s *AllergyService) Get(ctx context.Context, id string) (*Result, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Allergy")
	}
	return &Result{Data: a, Message: "Allergy retrieved"}, nil
}

// Create inserts an allergy row.
func (s *AllergyService) Create(ctx context.Context, req *Request) (*Result, error) {
	var in CreateAllergyRequest
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(in.ProductType) == "" {
		return nil, utils.BadRequest("Product type is required")
	}
	if strings.TrimSpace(in.Allergen) == "" {
		return nil, utils.BadRequest("Allergen is required")
	}

	a := &models.Allergy{
		ProductType: in.ProductType,
		Allergen:    in.Allergen,
		IsActive:    boolVal(in.IsActive, true),
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	return &Result{Data: a, Message: "Allergy created successfully"}, nil
}

// Update applies a partial update. The allergies table carries no
// timestamps, so only the requested fields are written.
func (s *AllergyService) Update(ctx context.Context, id string, body []byte) (*Result, error) {
	var in UpdateAllergyRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}

	fields := map[string]any{}
	setField(fields, "product_type", in.ProductType)
	setField(fields, "allergen", in.Allergen)
	setField(fields, "is_active", in.IsActive)
	if len(fields) == 0 {
		return nil, utils.BadRequest("No updatable fields provided")
	}

	a, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err, "Allergy")
	}
	return &Result{Data: a, Message: "Allergy updated successfully"}, nil
}

// Delete hard-deletes an allergy row and returns the removed row.
func (s *AllergyService) Delete(ctx context.Context, id string) (*Result, error) {
	a, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Allergy")
	}
	return &Result{Data: map[string]any{"deleted": a}, Message: "Allergy deleted successfully"}, nil
}
