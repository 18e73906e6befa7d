package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/moremori/moremori-api/internal/models"
)

type fakeProductStore struct {
	rows    []*models.Product
	created *models.Product
	updated map[string]any
}

func (f *fakeProductStore) List(ctx context.Context) ([]*models.Product, error) {
	return f.rows, nil
}

func (f *fakeProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeProductStore) Create(ctx context.Context, p *models.Product) error {
	p.ID = "prod-1"
	f.created = p
	return nil
}

func (f *fakeProductStore) Update(ctx context.Context, id string, fields map[string]any) (*models.Product, error) {
	f.updated = fields
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeProductStore) Delete(ctx context.Context, id string) (*models.Product, error) {
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestProductCreateAppliesDefaults(t *testing.T) {
	store := &fakeProductStore{}
	svc := NewProductService(store)

	body := []byte(`{"name":"Lemon tart"}`)
	if _, err := svc.Create(context.Background(), &Request{Body: body}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	p := store.created
	if p.Category != "general" {
		t.Fatalf("expected category general, got %q", p.Category)
	}
	if !p.IsActive {
		t.Fatal("expected is_active default true")
	}
	if p.Description != "" || p.ImageURL != "" {
		t.Fatalf("expected empty string defaults, got %q / %q", p.Description, p.ImageURL)
	}
}

func TestProductCreateRequiresName(t *testing.T) {
	svc := NewProductService(&fakeProductStore{})

	if _, err := svc.Create(context.Background(), &Request{Body: []byte(`{"category":"cakes"}`)}); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestProductListNeverReturnsNull(t *testing.T) {
	svc := NewProductService(&fakeProductStore{})

	res, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	rows, ok := res.Data.([]*models.Product)
	if !ok {
		t.Fatalf("unexpected data type %T", res.Data)
	}
	if rows == nil {
		t.Fatal("empty list must serialize as [], not null")
	}
}

func TestProductPartialUpdateTouchesOnlyGivenFields(t *testing.T) {
	store := &fakeProductStore{rows: []*models.Product{{ID: "1", Name: "Lemon tart"}}}
	svc := NewProductService(store)

	if _, err := svc.Update(context.Background(), "1", []byte(`{"sort_order":3}`)); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if v, ok := store.updated["sort_order"].(int); !ok || v != 3 {
		t.Fatalf("unexpected sort_order: %v", store.updated["sort_order"])
	}
	if _, ok := store.updated["name"]; ok {
		t.Fatal("name must not change on a partial update")
	}
	if _, ok := store.updated["updated_at"]; !ok {
		t.Fatal("expected updated_at to be refreshed")
	}
}
