package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/moremori/moremori-api/internal/utils"
)

// Request carries the raw JSON body of a create call plus the request
// metadata some resources capture (contact submissions record caller IP and
// user agent).
type Request struct {
	Body      []byte
	IPAddress string
	UserAgent string
}

// Result is what every resource operation returns: the envelope payload and
// a resource-specific human-readable message.
type Result struct {
	Data    any
	Message string
}

// Resource is the closed set of operations a resource type supports. The
// former string-keyed switch dispatch is replaced by implementations of this
// interface registered under their type tag; an operation a resource does
// not support returns a request error.
type Resource interface {
	List(ctx context.Context) (*Result, error)
	Get(ctx context.Context, id string) (*Result, error)
	Create(ctx context.Context, req *Request) (*Result, error)
	Update(ctx context.Context, id string, body []byte) (*Result, error)
	Delete(ctx context.Context, id string) (*Result, error)
}

// Registry maps resource type tags to their implementations.
type Registry struct {
	resources map[string]Resource
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{resources: make(map[string]Resource)}
}

// Register adds a resource under its type tag.
func (r *Registry) Register(tag string, res Resource) {
	r.resources[tag] = res
}

// Lookup returns the resource registered for tag.
func (r *Registry) Lookup(tag string) (Resource, bool) {
	res, ok := r.resources[tag]
	return res, ok
}

// Tags returns the registered type tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.resources))
	for tag := range r.resources {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// mapStoreErr converts a repository error into a caller-facing one: missing
// rows become 404s, everything else surfaces as an upstream failure.
func mapStoreErr(err error, label string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return utils.NotFound("%s not found", label)
	}
	return utils.Upstream("Database error", err)
}

// errUnsupported is returned for (action, type) combinations outside a
// resource's declared operations.
func errUnsupported(action, tag string) error {
	return utils.BadRequest("Action %q is not supported for type %q", action, tag)
}

// setField records *v under col when the field was present in the request.
func setField[T any](fields map[string]any, col string, v *T) {
	if v != nil {
		fields[col] = *v
	}
}

// strVal, intVal and boolVal resolve optional request fields to defaults.
func strVal(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}

func intVal(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func boolVal(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}
