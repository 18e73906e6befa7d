package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// contentStore is the data access surface ContentService needs.
type contentStore interface {
	List(ctx context.Context) ([]*models.ContentItem, error)
	Get(ctx context.Context, id string) (*models.ContentItem, error)
	Create(ctx context.Context, ci *models.ContentItem) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.ContentItem, error)
	Delete(ctx context.Context, id string) (*models.ContentItem, error)
}

// ContentService implements the content resource.
type ContentService struct {
	store contentStore
}

// NewContentService constructs a ContentService.
func NewContentService(store contentStore) *ContentService {
	return &ContentService{store: store}
}

// CreateContentRequest represents the request to create a content block.
type CreateContentRequest struct {
	Section  string  `json:"section"`
	Key      string  `json:"key"`
	Title    *string `json:"title"`
	Content  string  `json:"content"`
	IsActive *bool   `json:"is_active"`
}

// UpdateContentRequest represents a partial content update.
type UpdateContentRequest struct {
	Section  *string `json:"section"`
	Key      *string `json:"key"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsActive *bool   `json:"is_active"`
}

// List returns active content blocks regrouped by section and key.
func (s *ContentService) List(ctx context.Context) (*Result, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, utils.Upstream("Database error", err)
	}

	grouped := map[string]map[string]models.ContentEntry{}
	for _, ci := range items {
		if grouped[ci.Section] == nil {
			grouped[ci.Section] = map[string]models.ContentEntry{}
		}
		grouped[ci.Section][ci.Key] = models.ContentEntry{
			ID:      ci.ID,
			Title:   ci.Title,
			Content: ci.Content,
		}
	}
	return &Result{Data: grouped, Message: "Content retrieved"}, nil
}

// Get returns one content block by id.
func (s *ContentService) Get(ctx context.Context, id string) (*Result, error) {
	ci, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Content block")
	}
	return &Result{Data: ci, Message: "Content block retrieved"}, nil
}

// Create inserts a content block.
func (s *ContentService) Create(ctx context.Context, req *Request) (*Result, error) {
	var in CreateContentRequest
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(in.Section) == "" {
		return nil, utils.BadRequest("Section is required")
	}
	if strings.TrimSpace(in.Key) == "" {
		return nil, utils.BadRequest("Key is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, utils.BadRequest("Content is required")
	}

	ci := &models.ContentItem{
		Section:  in.Section,
		Key:      in.Key,
		Title:    strVal(in.Title, ""),
		Content:  in.Content,
		IsActive: boolVal(in.IsActive, true),
	}
	if err := s.store.Create(ctx, ci); err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	return &Result{Data: ci, Message: "Content block created successfully"}, nil
}

// Update applies a partial update and refreshes updated_at.
func (s *ContentService) Update(ctx context.Context, id string, body []byte) (*Result, error) {
	var in UpdateContentRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}

	fields := map[string]any{}
	setField(fields, "section", in.Section)
	setField(fields, "key", in.Key)
	setField(fields, "title", in.Title)
	setField(fields, "content", in.Content)
	setField(fields, "is_active", in.IsActive)
	if len(fields) == 0 {
		return nil, utils.BadRequest("No updatable fields provided")
	}
	fields["updated_at"] = time.Now().UTC()

	ci, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err, "Content block")
	}
	return &Result{Data: ci, Message: "Content block updated successfully"}, nil
}

// Delete hard-deletes a content block and returns the removed row.
func (s *ContentService) Delete(ctx context.Context, id string) (*Result, error) {
	ci, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Content block")
	}
	return &Result{Data: map[string]any{"deleted": ci}, Message: "Content block deleted successfully"}, nil
}
