package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moremori/moremori-api/internal/middleware"
	"github.com/moremori/moremori-api/internal/service"
	"github.com/moremori/moremori-api/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubResource lets each test script the five operations.
type stubResource struct {
	list   func(ctx context.Context) (*service.Result, error)
	get    func(ctx context.Context, id string) (*service.Result, error)
	create func(ctx context.Context, req *service.Request) (*service.Result, error)
	update func(ctx context.Context, id string, body []byte) (*service.Result, error)
	del    func(ctx context.Context, id string) (*service.Result, error)
}

func (s *stubResource) List(ctx context.Context) (*service.Result, error) {
	return s.list(ctx)
}

func (s *stubResource) Get(ctx context.Context, id string) (*service.Result, error) {
	return s.get(ctx, id)
}

func (s *stubResource) Create(ctx context.Context, req *service.Request) (*service.Result, error) {
	return s.create(ctx, req)
}

func (s *stubResource) Update(ctx context.Context, id string, body []byte) (*service.Result, error) {
	return s.update(ctx, id, body)
}

func (s *stubResource) Delete(ctx context.Context, id string) (*service.Result, error) {
	return s.del(ctx, id)
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

func newTestRouter(res service.Resource) *gin.Engine {
	registry := service.NewRegistry()
	if res != nil {
		registry.Register("products", res)
	}
	h := NewAPIHandler(registry, nil, nil)

	router := gin.New()
	router.Use(middleware.CORSMiddleware())
	router.Any("/api", h.Handle)
	return router
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v\nbody: %s", err, w.Body.String())
	}
	if env.Timestamp == "" {
		t.Fatal("envelope missing timestamp")
	}
	if _, err := time.Parse(time.RFC3339, env.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339: %q", env.Timestamp)
	}
	return env
}

func TestUnknownTypeRejected(t *testing.T) {
	router := newTestRouter(nil)

	w := doRequest(router, http.MethodGet, "/api?action=get&type=orders", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success {
		t.Fatal("expected success false")
	}
}

func TestUnknownActionRejected(t *testing.T) {
	res := &stubResource{}
	router := newTestRouter(res)

	w := doRequest(router, http.MethodPost, "/api?action=purge&type=products", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateRequiresID(t *testing.T) {
	res := &stubResource{}
	router := newTestRouter(res)

	w := doRequest(router, http.MethodPut, "/api?action=update&type=products", `{"name":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if !strings.Contains(env.Message, "id is required") {
		t.Fatalf("unexpected message: %q", env.Message)
	}
}

func TestInvalidIDRejected(t *testing.T) {
	res := &stubResource{}
	router := newTestRouter(res)

	w := doRequest(router, http.MethodGet, "/api?action=get&type=products&id=123", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListReturnsEnvelope(t *testing.T) {
	res := &stubResource{
		list: func(ctx context.Context) (*service.Result, error) {
			return &service.Result{Data: []string{"a", "b"}, Message: "Products retrieved"}, nil
		},
	}
	router := newTestRouter(res)

	w := doRequest(router, http.MethodGet, "/api?action=get&type=products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if !env.Success || env.Message != "Products retrieved" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	var data []string
	if err := json.Unmarshal(env.Data, &data); err != nil || len(data) != 2 {
		t.Fatalf("unexpected data: %s", env.Data)
	}
}

func TestGetMissingRowIs404(t *testing.T) {
	res := &stubResource{
		get: func(ctx context.Context, id string) (*service.Result, error) {
			return nil, utils.NotFound("Product not found")
		},
	}
	router := newTestRouter(res)

	w := doRequest(router, http.MethodGet, "/api?action=get&type=products&id=7c9f7d7e-3f60-4c9d-bb0a-93a8f4f1de01", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success || env.Message != "Product not found" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestCreateReturns201AndPassesMetadata(t *testing.T) {
	var got *service.Request
	res := &stubResource{
		create: func(ctx context.Context, req *service.Request) (*service.Result, error) {
			got = req
			return &service.Result{Data: map[string]string{"id": "p1"}, Message: "Product created successfully"}, nil
		},
	}
	router := newTestRouter(res)

	w := doRequest(router, http.MethodPost, "/api?action=create&type=products", `{"name":"Tart"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if got == nil || !strings.Contains(string(got.Body), "Tart") {
		t.Fatalf("create did not receive the request body: %+v", got)
	}
}

func TestUnexpectedErrorIsGeneric500(t *testing.T) {
	res := &stubResource{
		list: func(ctx context.Context) (*service.Result, error) {
			return nil, context.DeadlineExceeded
		},
	}
	router := newTestRouter(res)

	w := doRequest(router, http.MethodGet, "/api?action=get&type=products", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Message != "Internal server error" {
		t.Fatalf("internal detail leaked: %q", env.Message)
	}
}

func TestUploadUnconfiguredIs503(t *testing.T) {
	router := newTestRouter(nil)

	w := doRequest(router, http.MethodPost, "/api?action=upload", `{"filename":"a.png","content":"aGk="}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestPreflightAnsweredWithWildcard(t *testing.T) {
	router := newTestRouter(nil)

	w := doRequest(router, http.MethodOptions, "/api?action=get&type=products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Fatalf("expected wildcard origin, got %q", origin)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty preflight body, got %q", w.Body.String())
	}
}
