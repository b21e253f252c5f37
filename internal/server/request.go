package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/hanpama/gqlview/internal/language"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/tree"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// requestError reports a malformed request. It maps to 400 unless Status
// says otherwise.
type requestError struct {
	Message string
	Status  int
}

func (e *requestError) Error() string { return e.Message }

func errorf(format string, args ...any) *requestError {
	return &requestError{Message: fmt.Sprintf(format, args...), Status: http.StatusBadRequest}
}

const errBodyTooLargeMessage = "body too large"

func (s *Server) decode(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return &requestError{Message: "unsupported Content-Type", Status: http.StatusUnsupportedMediaType}
		}
	}
	reader := io.Reader(r.Body)
	if s.opt.MaxBodyBytes > 0 {
		reader = io.LimitReader(r.Body, s.opt.MaxBodyBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return errorf("failed to read body")
	}
	defer r.Body.Close()
	if s.opt.MaxBodyBytes > 0 && int64(len(body)) > s.opt.MaxBodyBytes {
		return &requestError{Message: errBodyTooLargeMessage, Status: http.StatusRequestEntityTooLarge}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errorf("invalid JSON")
	}
	return nil
}

// schemaFor materializes the request's introspection result, or the
// configured schema when the request has none.
func (s *Server) schemaFor(raw jsoniter.RawMessage) (*tree.Tree, error) {
	if len(raw) > 0 && string(raw) != "null" {
		return tree.MaterializeJSON(raw)
	}
	if len(s.opt.Schema) > 0 {
		return tree.MaterializeDocument(s.opt.Schema)
	}
	return nil, errorf("missing 'introspection'")
}

// parseOperation parses query and keeps only the named operation when name
// is set.
func parseOperation(query, name string) (*language.QueryDocument, error) {
	if query == "" {
		return nil, errorf("missing 'query'")
	}
	doc, err := language.ParseQuery(query)
	if err != nil {
		return nil, err
	}
	selected, ok := language.SelectOperation(doc, name)
	if !ok {
		return nil, errorf("unknown operation %q", name)
	}
	return selected, nil
}

type apiLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type apiError struct {
	Message    string         `json:"message"`
	Locations  []apiLocation  `json:"locations,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type errorResponse struct {
	Errors []apiError `json:"errors"`
}

// statusFor maps an error class to its HTTP status.
func statusFor(err error) int {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	switch meta.Code(err) {
	case meta.CodeGraphQLParseFailed:
		return http.StatusBadRequest
	case meta.CodeSchema, meta.CodePathResolution, meta.CodeFieldProjection, meta.CodeDirectiveConfig:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func toAPIErrors(err error) errorResponse {
	var list language.ErrorList
	if errors.As(err, &list) {
		out := errorResponse{Errors: make([]apiError, 0, len(list))}
		for _, e := range list {
			out.Errors = append(out.Errors, toAPIError(e))
		}
		return out
	}
	return errorResponse{Errors: []apiError{toAPIError(err)}}
}

func toAPIError(err error) apiError {
	ae := apiError{Message: err.Error()}
	var reqErr *requestError
	if !errors.As(err, &reqErr) {
		ae.Extensions = map[string]any{"code": meta.Code(err)}
	}
	var gqlErr *language.Error
	if errors.As(err, &gqlErr) {
		ae.Message = gqlErr.Message
		for _, l := range gqlErr.Locations {
			ae.Locations = append(ae.Locations, apiLocation{Line: l.Line, Column: l.Column})
		}
		return ae
	}
	if pos := meta.Position(err); pos != nil {
		ae.Locations = []apiLocation{{Line: pos.Line, Column: pos.Column}}
	}
	return ae
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, toAPIErrors(err))
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.writeError(w, statusFor(err), err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if s.opt.Pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}
