package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/moremori/moremori-api/internal/models"
)

type fakeAllergyStore struct {
	rows []*models.Allergy
}

func (f *fakeAllergyStore) List(ctx context.Context) ([]*models.Allergy, error) { return f.rows, nil }
func (f *fakeAllergyStore) Get(ctx context.Context, id string) (*models.Allergy, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeAllergyStore) Create(ctx context.Context, a *models.Allergy) error { return nil }
func (f *fakeAllergyStore) Update(ctx context.Context, id string, fields map[string]any) (*models.Allergy, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeAllergyStore) Delete(ctx context.Context, id string) (*models.Allergy, error) {
	return nil, sql.ErrNoRows
}

func TestAllergyListGroupsByProductType(t *testing.T) {
	store := &fakeAllergyStore{rows: []*models.Allergy{
		{ID: "1", ProductType: "tarts", Allergen: "gluten"},
		{ID: "2", ProductType: "tarts", Allergen: "eggs"},
		{ID: "3", ProductType: "macarons", Allergen: "almonds"},
	}}
	svc := NewAllergyService(store)

	res, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	grouped, ok := res.Data.(map[string][]string)
	if !ok {
		t.Fatalf("unexpected data type %T", res.Data)
	}
	if len(grouped["tarts"]) != 2 || grouped["tarts"][0] != "gluten" {
		t.Fatalf("unexpected tarts group: %v", grouped["tarts"])
	}
	if len(grouped["macarons"]) != 1 {
		t.Fatalf("unexpected macarons group: %v", grouped["macarons"])
	}
}

type fakeContentStore struct {
	rows []*models.ContentItem
}

func (f *fakeContentStore) List(ctx context.Context) ([]*models.ContentItem, error) {
	return f.rows, nil
}
func (f *fakeContentStore) Get(ctx context.Context, id string) (*models.ContentItem, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeContentStore) Create(ctx context.Context, ci *models.ContentItem) error { return nil }
func (f *fakeContentStore) Update(ctx context.Context, id string, fields map[string]any) (*models.ContentItem, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeContentStore) Delete(ctx context.Context, id string) (*models.ContentItem, error) {
	return nil, sql.ErrNoRows
}

func TestContentListGroupsBySectionAndKey(t *testing.T) {
	store := &fakeContentStore{rows: []*models.ContentItem{
		{ID: "1", Section: "hero", Key: "headline", Title: "Welcome", Content: "Fresh every day"},
		{ID: "2", Section: "hero", Key: "subline", Content: "Since 2019"},
		{ID: "3", Section: "about", Key: "story", Content: "It started small"},
	}}
	svc := NewContentService(store)

	res, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	grouped, ok := res.Data.(map[string]map[string]models.ContentEntry)
	if !ok {
		t.Fatalf("unexpected data type %T", res.Data)
	}
	if len(grouped["hero"]) != 2 {
		t.Fatalf("expected 2 hero entries, got %d", len(grouped["hero"]))
	}
	entry := grouped["hero"]["headline"]
	if entry.ID != "1" || entry.Title != "Welcome" {
		t.Fatalf("unexpected hero headline entry: %+v", entry)
	}
}

type fakeSettingStore struct {
	rows []*models.Setting
}

func (f *fakeSettingStore) List(ctx context.Context) ([]*models.Setting, error) { return f.rows, nil }
func (f *fakeSettingStore) Get(ctx context.Context, id string) (*models.Setting, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeSettingStore) Create(ctx context.Context, st *models.Setting) error { return nil }
func (f *fakeSettingStore) Update(ctx context.Context, id string, fields map[string]any) (*models.Setting, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeSettingStore) Delete(ctx context.Context, id string) (*models.Setting, error) {
	return nil, sql.ErrNoRows
}

func TestSettingListGroupsByCategory(t *testing.T) {
	store := &fakeSettingStore{rows: []*models.Setting{
		{ID: "1", Category: "hours", Key: "monday", Value: "closed"},
		{ID: "2", Category: "hours", Key: "saturday", Value: "9-14"},
		{ID: "3", Category: "social", Key: "instagram", Value: "@moremori"},
	}}
	svc := NewSettingService(store)

	res, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	grouped, ok := res.Data.(map[string]map[string]string)
	if !ok {
		t.Fatalf("unexpected data type %T", res.Data)
	}
	if grouped["hours"]["saturday"] != "9-14" {
		t.Fatalf("unexpected hours group: %v", grouped["hours"])
	}
	if grouped["social"]["instagram"] != "@moremori" {
		t.Fatalf("unexpected social group: %v", grouped["social"])
	}
}
