package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/moremori/moremori-api/internal/cache"
	"github.com/moremori/moremori-api/internal/service"
	"github.com/moremori/moremori-api/internal/utils"
)

// cachedList is the shape stored in the list cache: the resource message
// plus its marshaled data payload.
type cachedList struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIHandler dispatches the single /api endpoint. The operation is selected
// by query parameters (action, type, id) rather than by path or verb, since
// both frontends call the API that way.
type APIHandler struct {
	registry *service.Registry
	uploads  *service.UploadService
	lists    *cache.ListCache
}

// NewAPIHandler constructs an APIHandler. uploads and lists may be nil when
// the corresponding subsystem is not configured.
func NewAPIHandler(registry *service.Registry, uploads *service.UploadService, lists *cache.ListCache) *APIHandler {
	return &APIHandler{
		registry: registry,
		uploads:  uploads,
		lists:    lists,
	}
}

// Handle serves ANY /api.
func (h *APIHandler) Handle(c *gin.Context) {
	action := strings.ToLower(c.Query("action"))
	typeTag := strings.ToLower(c.Query("type"))
	id := c.Query("id")

	if action == "upload" {
		h.handleUpload(c)
		return
	}

	res, ok := h.registry.Lookup(typeTag)
	if !ok {
		utils.Error(c, http.StatusBadRequest, "Unknown type "+strconv.Quote(typeTag))
		return
	}

	switch action {
	case "get":
		h.handleGet(c, res, typeTag, id)
	case "create":
		h.handleCreate(c, res, typeTag)
	case "update":
		h.handleUpdate(c, res, typeTag, id)
	case "delete":
		h.handleDelete(c, res, typeTag, id)
	default:
		utils.Error(c, http.StatusBadRequest, "Unknown action "+strconv.Quote(action))
	}
}

// handleGet serves both list reads (no id) and single-row reads.
func (h *APIHandler) handleGet(c *gin.Context, res service.Resource, typeTag, id string) {
	ctx := c.Request.Context()

	if id != "" {
		if !validID(id) {
			utils.Error(c, http.StatusBadRequest, "Invalid id")
			return
		}
		result, err := res.Get(ctx, id)
		if err != nil {
			h.respondError(c, err)
			return
		}
		utils.Success(c, http.StatusOK, result.Message, result.Data)
		return
	}

	if h.lists != nil {
		if payload, ok := h.lists.Get(ctx, typeTag); ok {
			var entry cachedList
			if err := json.Unmarshal(payload, &entry); err == nil {
				utils.Success(c, http.StatusOK, entry.Message, entry.Data)
				return
			}
			h.lists.Invalidate(ctx, typeTag)
		}
	}

	result, err := res.List(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.lists != nil {
		data, err := json.Marshal(result.Data)
		if err == nil {
			payload, err := json.Marshal(cachedList{Message: result.Message, Data: data})
			if err == nil {
				h.lists.Set(ctx, typeTag, payload)
			}
		}
	}

	utils.Success(c, http.StatusOK, result.Message, result.Data)
}

func (h *APIHandler) handleCreate(c *gin.Context, res service.Resource, typeTag string) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	req := &service.Request{
		Body:      body,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	result, err := res.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidate(c.Request.Context(), typeTag)
	utils.Success(c, http.StatusCreated, result.Message, result.Data)
}

func (h *APIHandler) handleUpdate(c *gin.Context, res service.Resource, typeTag, id string) {
	if id == "" {
		utils.Error(c, http.StatusBadRequest, "id is required for update")
		return
	}
	if !validID(id) {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	result, err := res.Update(c.Request.Context(), id, body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidate(c.Request.Context(), typeTag)
	utils.Success(c, http.StatusOK, result.Message, result.Data)
}

func (h *APIHandler) handleDelete(c *gin.Context, res service.Resource, typeTag, id string) {
	if id == "" {
		utils.Error(c, http.StatusBadRequest, "id is required for delete")
		return
	}
	if !validID(id) {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	result, err := res.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidate(c.Request.Context(), typeTag)
	utils.Success(c, http.StatusOK, result.Message, result.Data)
}

// handleUpload serves action=upload: a multipart form with an "image" field,
// or a JSON body carrying the file as base64.
func (h *APIHandler) handleUpload(c *gin.Context) {
	if h.uploads == nil {
		utils.Error(c, http.StatusServiceUnavailable, "Image upload is not configured")
		return
	}

	ctx := c.Request.Context()
	contentType := c.ContentType()

	var result *service.Result
	var err error
	if strings.HasPrefix(contentType, "multipart/form-data") {
		result, err = h.uploadMultipart(c)
	} else {
		var body []byte
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Failed to read request body")
			return
		}
		result, err = h.uploads.UploadJSON(ctx, body)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidate(ctx, "products")
	utils.Success(c, http.StatusCreated, result.Message, result.Data)
}

func (h *APIHandler) uploadMultipart(c *gin.Context) (*service.Result, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return nil, utils.BadRequest("Form field \"image\" is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, utils.BadRequest("Failed to read uploaded file")
	}
	return h.uploads.UploadFile(c.Request.Context(), header.Filename, data, header.Header.Get("Content-Type"))
}

// invalidate drops the cached list for typeTag after a write.
func (h *APIHandler) invalidate(ctx context.Context, typeTag string) {
	if h.lists != nil {
		h.lists.Invalidate(ctx, typeTag)
	}
}

// respondError maps service errors onto the envelope. Anything that is not
// an APIError is logged and reported as a generic 500.
func (h *APIHandler) respondError(c *gin.Context, err error) {
	if apiErr, ok := utils.AsAPIError(err); ok {
		if apiErr.Err != nil {
			log.Error().Err(apiErr.Err).Int("status", apiErr.Status).Msg(apiErr.Message)
		}
		utils.Error(c, apiErr.Status, apiErr.Message)
		return
	}
	log.Error().Err(err).Msg("Unhandled error")
	utils.Error(c, http.StatusInternalServerError, "Internal server error")
}

// validID reports whether id parses as a UUID.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
