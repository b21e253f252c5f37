package server

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/hanpama/gqlview/internal/extract"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/view"
)

type tableRequest struct {
	Query         string              `json:"query"`
	OperationName string              `json:"operationName,omitempty"`
	Introspection jsoniter.RawMessage `json:"introspection,omitempty"`
	PerPage       int                 `json:"perPage,omitempty"`
	// Rows are projected as given.
	Rows []any `json:"rows,omitempty"`
	// Data is a query result; rows and total are read from it.
	Data map[string]any `json:"data,omitempty"`
}

type tableResponse struct {
	Columns   []meta.ColumnInfo `json:"columns"`
	TotalPath string            `json:"totalPath"`
	DataKey   string            `json:"dataKey"`
	Rows      [][]meta.Cell     `json:"rows,omitempty"`
	Total     *int              `json:"total,omitempty"`
	LastPage  int               `json:"lastPage,omitempty"`
}

func (s *Server) table(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	doc, err := parseOperation(req.Query, req.OperationName)
	if err != nil {
		s.fail(w, err)
		return
	}
	t, err := s.schemaFor(req.Introspection)
	if err != nil {
		s.fail(w, err)
		return
	}
	perPage := req.PerPage
	if perPage == 0 {
		perPage = s.opt.PerPage
	}
	tbl, err := view.NewTable(r.Context(), doc, t, view.WithPerPage(perPage))
	if err != nil {
		s.fail(w, err)
		return
	}

	res := tableResponse{
		Columns:   tbl.Meta().Columns,
		TotalPath: tbl.Meta().TotalPath,
		DataKey:   tbl.DataKey(),
	}
	switch {
	case req.Data != nil:
		state, err := tbl.Apply(r.Context(), view.Snapshot{Data: req.Data})
		if err != nil {
			s.fail(w, err)
			return
		}
		res.Rows = state.Rows
		res.Total = &state.Total
		res.LastPage = state.LastPage
	case req.Rows != nil:
		cells, err := view.ProjectRows(r.Context(), req.Rows, res.Columns)
		if err != nil {
			s.fail(w, err)
			return
		}
		res.Rows = cells
	}
	s.writeJSON(w, http.StatusOK, res)
}

type formRequest struct {
	Query         string              `json:"query"`
	OperationName string              `json:"operationName,omitempty"`
	Introspection jsoniter.RawMessage `json:"introspection,omitempty"`
	Data          map[string]any      `json:"data,omitempty"`
}

type formResponse struct {
	Label   string          `json:"label"`
	DataKey string          `json:"dataKey"`
	Fields  []meta.FormMeta `json:"fields"`
	State   map[string]any  `json:"state,omitempty"`
}

func (s *Server) form(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	doc, err := parseOperation(req.Query, req.OperationName)
	if err != nil {
		s.fail(w, err)
		return
	}
	t, err := s.schemaFor(req.Introspection)
	if err != nil {
		s.fail(w, err)
		return
	}
	f, err := view.NewForm(r.Context(), doc, t, nil)
	if err != nil {
		s.fail(w, err)
		return
	}
	res := formResponse{Label: f.Label(), DataKey: f.DataKey(), Fields: f.Fields()}
	if req.Data != nil {
		if err := f.Apply(r.Context(), view.Snapshot{Data: req.Data}); err != nil {
			s.fail(w, err)
			return
		}
		res.State = f.State()
	}
	s.writeJSON(w, http.StatusOK, res)
}

type projectRequest struct {
	Columns []meta.ColumnInfo `json:"columns"`
	Rows    []any             `json:"rows"`
}

type projectResponse struct {
	Rows [][]meta.Cell `json:"rows"`
}

func (s *Server) project(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	cells, err := view.ProjectRows(r.Context(), req.Rows, req.Columns)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projectResponse{Rows: cells})
}

type stripRequest struct {
	Query string `json:"query"`
}

type stripResponse struct {
	Query string `json:"query"`
}

func (s *Server) strip(w http.ResponseWriter, r *http.Request) {
	var req stripRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	doc, err := parseOperation(req.Query, "")
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stripResponse{Query: extract.StripDirectives(doc)})
}
