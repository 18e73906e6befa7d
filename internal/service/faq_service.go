package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// faqStore is the data access surface FAQService needs.
type faqStore interface {
	List(ctx context.Context) ([]*models.FAQItem, error)
	Get(ctx context.Context, id string) (*models.FAQItem, error)
	Create(ctx context.Context, f *models.FAQItem) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.FAQItem, error)
	Delete(ctx context.Context, id string) (*models.FAQItem, error)
}

// FAQService implements the faq resource.
type FAQService struct {
	store faqStore
}

// NewFAQService constructs a FAQService.
func NewFAQService(store faqStore) *FAQService {
	return &FAQService{store: store}
}

// CreateFAQRequest represents the request to create a FAQ item.
type CreateFAQRequest struct {
	Question  string  `json:"question"`
	Answer    string  `json:"answer"`
	Category  *string `json:"category"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// UpdateFAQRequest represents a partial FAQ update.
type UpdateFAQRequest struct {
	Question  *string `json:"question"`
	Answer    *string `json:"answer"`
	Category  *string `json:"category"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// List returns all active FAQ items in display order.
func (s *FAQService) List(ctx context.Context) (*Result, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	if items == nil {
		items = []*models.FAQItem{}
	}
	return &Result{Data: items, Message: "FAQ retrieved"}, nil
}

// Get returns one FAQ item by id.
func (s *FAQService) Get(ctx context.Context, id string) (*Result, error) {
	f, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "FAQ item")
	}
	return &Result{Data: f, Message: "FAQ item retrieved"}, nil
}

// Create inserts a FAQ item, applying defaults for omitted fields.
func (s *FAQService) Create(ctx context.Context, req *Request) (*Result, error) {
	var in CreateFAQRequest
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(in.Question) == "" {
		return nil, utils.BadRequest("Question is required")
	}
	if strings.TrimSpace(in.Answer) == "" {
		return nil, utils.BadRequest("Answer is required")
	}

	f := &models.FAQItem{
		Question:  in.Question,
		Answer:    in.Answer,
		Category:  strVal(in.Category, "general"),
		SortOrder: intVal(in.SortOrder, 0),
		IsActive:  boolVal(in.IsActive, true),
	}
	if err := s.store.Create(ctx, f); err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	return &Result{Data: f, Message: "FAQ item created successfully"}, nil
}

// Update applies a partial update and refreshes updated_at.
func (s *FAQService) Update(ctx context.Context, id string, body []byte) (*Result, error) {
	var in UpdateFAQRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}

	fields := map[string]any{}
	setField(fields, "question", in.Question)
	setField(fields, "answer", in.Answer)
	setField(fields, "category", in.Category)
	setField(fields, "sort_order", in.SortOrder)
	setField(fields, "is_active", in.IsActive)
	if len(fields) == 0 {
		return nil, utils.BadRequest("No updatable fields provided")
	}
	fields["updated_at"] = time.Now().UTC()

	f, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err, "FAQ item")
	}
	return &Result{Data: f, Message: "FAQ item updated successfully"}, nil
}

// Delete hard-deletes a FAQ item and returns the removed row.
func (s *FAQService) Delete(ctx context.Context, id string) (*Result, error) {
	f, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "FAQ item")
	}
	return &Result{Data: map[string]any{"deleted": f}, Message: "FAQ item deleted successfully"}, nil
}
