package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// settingStore is the data access surface SettingService needs.
type settingStore interface {
	List(ctx context.Context) ([]*models.Setting, error)
	Get(ctx context.Context, id string) (*models.Setting, error)
	Create(ctx context.Context, st *models.Setting) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Setting, error)
	Delete(ctx context.Context, id string) (*models.Setting, error)
}

// SettingService implements the settings resource.
type SettingService struct {
	store settingStore
}

// NewSettingService constructs a SettingService.
func NewSettingService(store settingStore) *SettingService {
	return &SettingService{store: store}
}

// CreateSettingRequest represents the request to create a setting.
type CreateSettingRequest struct {
	Category    string  `json:"category"`
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
}

// UpdateSettingRequest represents a partial setting update. category and key
// identify the setting and are not updatable.
type UpdateSettingRequest struct {
	Value       *string `json:"value"`
	Description *string `json:"description"`
}

// List returns settings regrouped by category into key/value maps.
func (s *SettingService) List(ctx context.Context) (*Result, error) {
	settings, err := s.store.List(ctx)
	if err != nil {
		return nil, utils.Upstream("Database error", err)
	}

	grouped := map[string]map[string]string{}
	for _, st := range settings {
		if grouped[st.Category] == nil {
			grouped[st.Category] = map[string]string{}
		}
		grouped[st.Category][st.Key] = st.Value
	}
	return &Result{Data: grouped, Message: "Settings retrieved"}, nil
}

// Get returns one setting by id.
func (s *SettingService) Get(ctx context.Context, id string) (*Result, error) {
	st, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Setting")
	}
	return &Result{Data: st, Message: "Setting retrieved"}, nil
}

// Create inserts a setting.
func (s *SettingService) Create(ctx context.Context, req *Request) (*Result, error) {
	var in CreateSettingRequest
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, utils.BadRequest("Category is required")
	}
	if strings.TrimSpace(in.Key) == "" {
		return nil, utils.BadRequest("Key is required")
	}
	if in.Value == "" {
		return nil, utils.BadRequest("Value is required")
	}

	st := &models.Setting{
		Category:    in.Category,
		Key:         in.Key,
		Value:       in.Value,
		Description: strVal(in.Description, ""),
	}
	if err := s.store.Create(ctx, st); err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	return &Result{Data: st, Message: "Setting created successfully"}, nil
}

// Update applies a partial update to value and/or description.
func (s *SettingService) Update(ctx context.Context, id string, body []byte) (*Result, error) {
	var in UpdateSettingRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}

	fields := map[string]any{}
	setField(fields, "value", in.Value)
	setField(fields, "description", in.Description)
	if len(fields) == 0 {
		return nil, utils.BadRequest("No updatable fields provided")
	}

	st, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err, "Setting")
	}
	return &Result{Data: st, Message: "Setting updated successfully"}, nil
}

// Delete hard-deletes a setting and returns the removed row.
func (s *SettingService) Delete(ctx context.Context, id string) (*Result, error) {
	st, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Setting")
	}
	return &Result{Data: map[string]any{"deleted": st}, Message: "Setting deleted successfully"}, nil
}
