package view

import (
	"context"
	"fmt"
	"time"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/eventbus"
	"github.com/hanpama/gqlview/internal/events"
	"github.com/hanpama/gqlview/internal/extract"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/project"
	"github.com/hanpama/gqlview/internal/tree"
)

// TableState is what a table renders for one snapshot.
type TableState struct {
	Columns  []meta.ColumnInfo `json:"columns"`
	Rows     [][]meta.Cell     `json:"rows"`
	Total    int               `json:"total"`
	LastPage int               `json:"lastPage,omitempty"`
	Loading  bool              `json:"loading"`
	Errors   []string          `json:"errors,omitempty"`
}

// Table holds the metadata of one annotated query.
type Table struct {
	meta    *meta.TableMeta
	dataKey string
	perPage int
}

type TableOption func(*Table)

// WithPerPage enables LastPage computation.
func WithPerPage(n int) TableOption {
	return func(t *Table) { t.perPage = n }
}

// NewTable extracts columns, total path and data key from doc.
func NewTable(ctx context.Context, doc *ast.QueryDocument, t *tree.Tree, opts ...TableOption) (*Table, error) {
	op := operationName(doc)
	eventbus.Publish(ctx, events.ExtractStart{Mode: "table", OperationName: op})
	start := time.Now()

	tm, err := extract.Table(doc, t)
	if err != nil {
		extracted(ctx, "table", op, start, 0, err)
		return nil, err
	}
	key, err := extract.DataKey(doc)
	if err != nil {
		extracted(ctx, "table", op, start, 0, err)
		return nil, err
	}
	extracted(ctx, "table", op, start, len(tm.Columns), nil)

	tbl := &Table{meta: tm, dataKey: key}
	for _, o := range opts {
		o(tbl)
	}
	return tbl, nil
}

func (t *Table) Meta() *meta.TableMeta { return t.meta }

func (t *Table) DataKey() string { return t.dataKey }

// Apply projects data[DataKey] of s. A snapshot without data yields an
// empty state. A settled snapshot missing the data key is an error.
func (t *Table) Apply(ctx context.Context, s Snapshot) (*TableState, error) {
	eventbus.Publish(ctx, events.Snapshot{View: "table", Loading: s.Loading, Errors: len(s.Errors)})

	state := &TableState{
		Columns: t.meta.Columns,
		Rows:    [][]meta.Cell{},
		Loading: s.Loading,
		Errors:  s.Errors,
	}
	if s.Data == nil {
		return state, nil
	}
	raw, ok := s.Data[t.dataKey]
	if !ok {
		if s.Loading {
			return state, nil
		}
		return nil, meta.Directivef(nil, "%q not found in result data", t.dataKey)
	}

	var rows []any
	switch v := raw.(type) {
	case nil:
	case []any:
		rows = v
	case map[string]any:
		rows = []any{v}
	default:
		return nil, fmt.Errorf("result field %q is %T, not a list of objects", t.dataKey, raw)
	}

	cells, err := ProjectRows(ctx, rows, t.meta.Columns)
	if err != nil {
		return nil, err
	}
	state.Rows = cells

	if t.meta.TotalPath != "" {
		total, err := project.Total(s.Data, t.meta.TotalPath)
		if err != nil {
			return nil, err
		}
		state.Total = total
	}
	if t.perPage > 0 {
		state.LastPage = project.LastPage(state.Total, t.perPage)
	}
	return state, nil
}

// Watch applies every snapshot received from in and hands the state, or
// the error Apply returned for it, to fn. It returns when in is closed, ctx
// is done, or fn fails.
func (t *Table) Watch(ctx context.Context, in <-chan Snapshot, fn func(*TableState, error) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-in:
			if !ok {
				return nil
			}
			if err := fn(t.Apply(ctx, s)); err != nil {
				return err
			}
		}
	}
}
