package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"regexp"
	"testing"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// pngData is a minimal payload http.DetectContentType sniffs as image/png.
var pngData = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

type fakeObjectStore struct {
	bucket      string
	name        string
	contentType string
	size        int
}

func (f *fakeObjectStore) Upload(ctx context.Context, bucket, name string, data []byte, contentType string) (string, error) {
	f.bucket = bucket
	f.name = name
	f.contentType = contentType
	f.size = len(data)
	return "https://cdn.example.com/" + bucket + "/" + name, nil
}

func (f *fakeObjectStore) DefaultBucket() string { return "moremori-images" }

type fakeRegistrar struct {
	created *models.Product
}

func (f *fakeRegistrar) Create(ctx context.Context, p *models.Product) error {
	p.ID = "prod-1"
	f.created = p
	return nil
}

func uploadBody(t *testing.T, filename string, data []byte, extra string) []byte {
	t.Helper()
	b64 := base64.StdEncoding.EncodeToString(data)
	return []byte(`{"filename":"` + filename + `","content":"` + b64 + `"` + extra + `}`)
}

func TestUploadStoresSniffedImage(t *testing.T) {
	store := &fakeObjectStore{}
	svc := NewUploadService(store, nil)

	res, err := svc.UploadJSON(context.Background(), uploadBody(t, "logo.png", pngData, ""))
	if err != nil {
		t.Fatalf("UploadJSON returned error: %v", err)
	}
	if store.contentType != "image/png" {
		t.Fatalf("expected sniffed image/png, got %q", store.contentType)
	}
	if store.bucket != "moremori-images" {
		t.Fatalf("expected default bucket, got %q", store.bucket)
	}

	result, ok := res.Data.(*UploadResult)
	if !ok {
		t.Fatalf("unexpected data type %T", res.Data)
	}
	if result.Size != len(pngData) {
		t.Fatalf("expected size %d, got %d", len(pngData), result.Size)
	}
	if matched, _ := regexp.MatchString(`^[0-9a-f]{8}_logo\.png$`, store.name); !matched {
		t.Fatalf("unexpected stored name %q", store.name)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc := NewUploadService(&fakeObjectStore{}, nil)

	body := uploadBody(t, "notes.txt", []byte("plain text, not an image"), "")
	_, err := svc.UploadJSON(context.Background(), body)
	apiErr, ok := utils.AsAPIError(err)
	if !ok || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image, got %v", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := NewUploadService(&fakeObjectStore{}, nil)

	big := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, maxUploadBytes)...)
	_, err := svc.UploadFile(context.Background(), "big.png", big, "image/png")
	apiErr, ok := utils.AsAPIError(err)
	if !ok || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized file, got %v", err)
	}
}

func TestUploadRejectsBadBase64(t *testing.T) {
	svc := NewUploadService(&fakeObjectStore{}, nil)

	body := []byte(`{"filename":"logo.png","content":"%%%not base64%%%"}`)
	if _, err := svc.UploadJSON(context.Background(), body); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestUploadRegistersProduct(t *testing.T) {
	store := &fakeObjectStore{}
	registrar := &fakeRegistrar{}
	svc := NewUploadService(store, registrar)

	body := uploadBody(t, "chocolate-tart.png", pngData, `,"register_product":true`)
	res, err := svc.UploadJSON(context.Background(), body)
	if err != nil {
		t.Fatalf("UploadJSON returned error: %v", err)
	}
	if registrar.created == nil {
		t.Fatal("expected product row to be created")
	}
	if registrar.created.Name != "chocolate tart" {
		t.Fatalf("unexpected product name %q", registrar.created.Name)
	}
	if registrar.created.ImageURL == "" {
		t.Fatal("expected product image_url to be set")
	}
	if registrar.created.Category != "general" {
		t.Fatalf("expected category general, got %q", registrar.created.Category)
	}

	result := res.Data.(*UploadResult)
	if result.Product == nil {
		t.Fatal("expected product in upload result")
	}
}

func TestUploadCustomBucket(t *testing.T) {
	store := &fakeObjectStore{}
	svc := NewUploadService(store, nil)

	body := uploadBody(t, "logo.png", pngData, `,"bucket":"seasonal"`)
	if _, err := svc.UploadJSON(context.Background(), body); err != nil {
		t.Fatalf("UploadJSON returned error: %v", err)
	}
	if store.bucket != "seasonal" {
		t.Fatalf("expected bucket seasonal, got %q", store.bucket)
	}
}
