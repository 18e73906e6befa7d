package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/moremori/moremori-api/internal/config"
)

// StorageService uploads objects to a Supabase storage bucket over its REST
// API, authenticating with the service role key.
type StorageService struct {
	baseURL       string
	serviceKey    string
	defaultBucket string
	client        *http.Client
}

// NewStorageService creates a new storage service.
func NewStorageService(cfg *config.StorageConfig) (*StorageService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage config is nil")
	}

	return &StorageService{
		baseURL:       strings.TrimRight(cfg.URL, "/"),
		serviceKey:    cfg.ServiceRoleKey,
		defaultBucket: cfg.Bucket,
		client:        &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// DefaultBucket returns the bucket used when a request names none.
func (s *StorageService) DefaultBucket() string {
	return s.defaultBucket
}

// Upload stores data under name in the given bucket and returns the public
// object URL. Existing objects are not overwritten; callers are expected to
// pass collision-free names.
func (s *StorageService) Upload(ctx context.Context, bucket, name string, data []byte, contentType string) (string, error) {
	if s.serviceKey == "" {
		log.Warn().Str("object", name).Msg("Storage credentials not configured - skipping upload")
		return s.ObjectURL(bucket, name), nil
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, encodePath(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=3600")
	req.Header.Set("x-upsert", "false")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("object", name).Msg("Failed to upload to storage")
		return "", fmt.Errorf("failed to upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		log.Error().
			Str("object", name).
			Int("status", resp.StatusCode).
			Str("response", string(body)).
			Msg("Storage upload failed")
		return "", fmt.Errorf("storage upload failed: %s", string(body))
	}

	log.Info().Str("bucket", bucket).Str("object", name).Msg("Successfully uploaded to storage")
	return s.ObjectURL(bucket, name), nil
}

// ObjectURL returns the public URL for an object.
func (s *StorageService) ObjectURL(bucket, name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, encodePath(name))
}

// encodePath escapes each path segment while keeping separators intact.
func encodePath(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
