package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header carries a caller supplied request ID.
const Header = "X-Request-ID"

// key is the context key for the request ID.
type key struct{}

// NewContext returns a copy of parent with a new random request ID stored.
// It also returns the generated ID.
func NewContext(parent context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(parent, key{}, id), id
}

// WithID stores id in parent.
func WithID(parent context.Context, id string) context.Context {
	return context.WithValue(parent, key{}, id)
}

// FromRequest reuses a valid X-Request-ID header or generates a new ID.
func FromRequest(r *http.Request) (context.Context, string) {
	if h := r.Header.Get(Header); h != "" {
		if _, err := uuid.Parse(h); err == nil {
			return WithID(r.Context(), h), h
		}
	}
	return NewContext(r.Context())
}

// FromContext extracts the request ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(key{})
	id, ok := v.(string)
	return id, ok
}
