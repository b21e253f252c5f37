// Package view re-runs extraction results against a stream of query result
// snapshots, the way a table or form component consumes them.
package view

import (
	"context"
	"time"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/eventbus"
	"github.com/hanpama/gqlview/internal/events"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/project"
)

// Snapshot is one delivery of a watched query.
type Snapshot struct {
	Data    map[string]any `json:"data"`
	Loading bool           `json:"loading"`
	Errors  []string       `json:"errors,omitempty"`
}

func operationName(doc *ast.QueryDocument) string {
	if len(doc.Operations) > 0 {
		return doc.Operations[0].Name
	}
	return ""
}

func extracted(ctx context.Context, mode, op string, start time.Time, fields int, err error) {
	eventbus.Publish(ctx, events.ExtractFinish{
		Mode:          mode,
		OperationName: op,
		Fields:        fields,
		Err:           err,
		Duration:      time.Since(start),
	})
}

// ProjectRows runs project.Rows and publishes its events.
func ProjectRows(ctx context.Context, rows []any, columns []meta.ColumnInfo) ([][]meta.Cell, error) {
	eventbus.Publish(ctx, events.ProjectStart{Rows: len(rows), Columns: len(columns)})
	start := time.Now()
	cells, err := project.Rows(rows, columns)
	eventbus.Publish(ctx, events.ProjectFinish{
		Rows:     len(rows),
		Columns:  len(columns),
		Err:      err,
		Duration: time.Since(start),
	})
	return cells, err
}
