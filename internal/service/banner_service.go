package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// bannerStore is the data access surface BannerService needs.
type bannerStore interface {
	List(ctx context.Context) ([]*models.Banner, error)
	Get(ctx context.Context, id string) (*models.Banner, error)
	Create(ctx context.Context, b *models.Banner) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Banner, error)
	Delete(ctx context.Context, id string) (*models.Banner, error)
}

// BannerService implements the banners resource.
type BannerService struct {
	store bannerStore
}

// NewBannerService constructs a BannerService.
func NewBannerService(store bannerStore) *BannerService {
	return &BannerService{store: store}
}

// CreateBannerRequest represents the request to create a banner.
type CreateBannerRequest struct {
	Title           string  `json:"title"`
	Message         string  `json:"message"`
	BannerType      *string `json:"banner_type"`
	CTAText         *string `json:"cta_text"`
	LinkURL         *string `json:"link_url"`
	Position        *string `json:"position"`
	IsActive        *bool   `json:"is_active"`
	Dismissible     *bool   `json:"dismissible"`
	AutoHideSeconds *int    `json:"auto_hide_seconds"`
}

// UpdateBannerRequest represents a partial banner update. AutoHideSeconds
// stays raw so an explicit null can clear the value.
type UpdateBannerRequest struct {
	Title           *string         `json:"title"`
	Message         *string         `json:"message"`
	BannerType      *string         `json:"banner_type"`
	CTAText         *string         `json:"cta_text"`
	LinkURL         *string         `json:"link_url"`
	Position        *string         `json:"position"`
	IsActive        *bool           `json:"is_active"`
	Dismissible     *bool           `json:"dismissible"`
	AutoHideSeconds json.RawMessage `json:"auto_hide_seconds"`
}

var validBannerTypes = map[string]bool{
	string(models.BannerTypeLaunch):       true,
	string(models.BannerTypePromotion):    true,
	string(models.BannerTypeSeasonal):     true,
	string(models.BannerTypeAnnouncement): true,
}

var validBannerPositions = map[string]bool{
	string(models.BannerPositionTop):      true,
	string(models.BannerPositionFloating): true,
	string(models.BannerPositionPopup):    true,
}

// List returns all active banners, newest first.
func (s *BannerService) List(ctx context.Context) (*Result, error) {
	banners, err := s.store.List(ctx)
	if err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	if banners == nil {
		banners = []*models.Banner{}
	}
	return &Result{Data: banners, Message: "Banners retrieved"}, nil
}

// Get returns one banner by id.
func (s *BannerService) Get(ctx context.Context, id string) (*Result, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Banner")
	}
	return &Result{Data: b, Message: "Banner retrieved"}, nil
}

// Create inserts a banner, applying defaults for omitted fields.
func (s *BannerService) Create(ctx context.Context, req *Request) (*Result, error) {
	var in CreateBannerRequest
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, utils.BadRequest("Title is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, utils.BadRequest("Message is required")
	}

	bannerType := strVal(in.BannerType, string(models.BannerTypeAnnouncement))
	if !validBannerTypes[bannerType] {
		return nil, utils.BadRequest("Invalid banner_type %q", bannerType)
	}
	position := strVal(in.Position, string(models.BannerPositionPopup))
	if !validBannerPositions[position] {
		return nil, utils.BadRequest("Invalid position %q", position)
	}

	b := &models.Banner{
		Title:           in.Title,
		Message:         in.Message,
		BannerType:      bannerType,
		CTAText:         strVal(in.CTAText, ""),
		LinkURL:         strVal(in.LinkURL, "#"),
		Position:        position,
		IsActive:        boolVal(in.IsActive, true),
		Dismissible:     boolVal(in.Dismissible, true),
		AutoHideSeconds: in.AutoHideSeconds,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	return &Result{Data: b, Message: "Banner created successfully"}, nil
}

// Update applies a partial update and refreshes updated_at.
func (s *BannerService) Update(ctx context.Context, id string, body []byte) (*Result, error) {
	var in UpdateBannerRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if in.BannerType != nil && !validBannerTypes[*in.BannerType] {
		return nil, utils.BadRequest("Invalid banner_type %q", *in.BannerType)
	}
	if in.Position != nil && !validBannerPositions[*in.Position] {
		return nil, utils.BadRequest("Invalid position %q", *in.Position)
	}

	fields := map[string]any{}
	setField(fields, "title", in.Title)
	setField(fields, "message", in.Message)
	setField(fields, "banner_type", in.BannerType)
	setField(fields, "cta_text", in.CTAText)
	setField(fields, "link_url", in.LinkURL)
	setField(fields, "position", in.Position)
	setField(fields, "is_active", in.IsActive)
	setField(fields, "dismissible", in.Dismissible)
	if len(in.AutoHideSeconds) > 0 {
		if bytes.Equal(bytes.TrimSpace(in.AutoHideSeconds), []byte("null")) {
			fields["auto_hide_seconds"] = nil
		} else {
			var secs int
			if err := json.Unmarshal(in.AutoHideSeconds, &secs); err != nil {
				return nil, utils.BadRequest("auto_hide_seconds must be a number or null")
			}
			fields["auto_hide_seconds"] = secs
		}
	}
	if len(fields) == 0 {
		return nil, utils.BadRequest("No updatable fields provided")
	}
	fields["updated_at"] = time.Now().UTC()

	b, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err, "Banner")
	}
	return &Result{Data: b, Message: "Banner updated successfully"}, nil
}

// Delete hard-deletes a banner and returns the removed row.
func (s *BannerService) Delete(ctx context.Context, id string) (*Result, error) {
	b, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Banner")
	}
	return &Result{Data: map[string]any{"deleted": b}, Message: "Banner deleted successfully"}, nil
}
