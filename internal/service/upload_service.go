package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// maxUploadBytes caps decoded image size at 5 MB.
const maxUploadBytes = 5 << 20

// allowedImageTypes is the MIME allow-list for uploads.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// objectStore is the storage surface UploadService needs.
type objectStore interface {
	Upload(ctx context.Context, bucket, name string, data []byte, contentType string) (string, error)
	DefaultBucket() string
}

// productRegistrar inserts the product row created for a registered upload.
type productRegistrar interface {
	Create(ctx context.Context, p *models.Product) error
}

// UploadService validates image uploads and stores them in the bucket.
type UploadService struct {
	storage  objectStore
	products productRegistrar
}

// NewUploadService constructs an UploadService. products may be nil when
// upload registration is not wired.
func NewUploadService(storage objectStore, products productRegistrar) *UploadService {
	return &UploadService{storage: storage, products: products}
}

// UploadRequest is the JSON form of an upload call. Content holds the
// base64-encoded file body.
type UploadRequest struct {
	Filename        string `json:"filename"`
	Content         string `json:"content"`
	ContentType     string `json:"content_type"`
	Bucket          string `json:"bucket"`
	RegisterProduct bool   `json:"register_product"`
}

// UploadResult is the data payload returned for a successful upload.
type UploadResult struct {
	Path      string          `json:"path"`
	PublicURL string          `json:"public_url"`
	Size      int             `json:"size"`
	Product   *models.Product `json:"product,omitempty"`
}

// UploadJSON handles the base64 JSON upload body.
func (s *UploadService) UploadJSON(ctx context.Context, body []byte) (*Result, error) {
	var in UploadRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(in.Filename) == "" {
		return nil, utils.BadRequest("Filename is required")
	}
	if in.Content == "" {
		return nil, utils.BadRequest("File content is required")
	}

	data, err := base64.StdEncoding.DecodeString(in.Content)
	if err != nil {
		return nil, utils.BadRequest("File content must be valid base64")
	}
	return s.store(ctx, in.Filename, data, in.ContentType, in.Bucket, in.RegisterProduct)
}

// UploadFile handles a file already read from a multipart form.
func (s *UploadService) UploadFile(ctx context.Context, filename string, data []byte, declaredType string) (*Result, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, utils.BadRequest("Filename is required")
	}
	return s.store(ctx, filename, data, declaredType, "", false)
}

// store runs the shared validation and upload pipeline. Size is checked
// before MIME so oversized payloads fail fast.
func (s *UploadService) store(ctx context.Context, filename string, data []byte, declaredType, bucket string, register bool) (*Result, error) {
	if len(data) == 0 {
		return nil, utils.BadRequest("File content is required")
	}
	if len(data) > maxUploadBytes {
		return nil, utils.BadRequest("File exceeds the 5 MB limit")
	}

	contentType := declaredType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !allowedImageTypes[contentType] {
		return nil, utils.BadRequest("Unsupported image type %q", contentType)
	}

	if bucket == "" {
		bucket = s.storage.DefaultBucket()
	}
	name := uniqueName(filename)

	publicURL, err := s.storage.Upload(ctx, bucket, name, data, contentType)
	if err != nil {
		return nil, utils.Upstream("Image upload failed", err)
	}

	res := &UploadResult{
		Path:      bucket + "/" + name,
		PublicURL: publicURL,
		Size:      len(data),
	}

	if register && s.products != nil {
		p := &models.Product{
			Name:     productNameFromFile(filename),
			ImageURL: publicURL,
			Category: "general",
			IsActive: true,
		}
		if err := s.products.Create(ctx, p); err != nil {
			return nil, utils.Upstream("Database error", err)
		}
		res.Product = p
	}

	return &Result{Data: res, Message: "Image uploaded successfully"}, nil
}

// uniqueName prefixes the sanitized base filename with eight uuid characters
// so repeated uploads of the same file never collide.
func uniqueName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return uuid.NewString()[:8] + "_" + base
}

// productNameFromFile turns "chocolate-tart.jpg" into "chocolate tart".
func productNameFromFile(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return strings.TrimSpace(base)
}
