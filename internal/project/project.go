// Package project applies column metadata to fetched result rows.
package project

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/hanpama/gqlview/internal/meta"
)

// Rows projects every row through columns. Column paths lose their first two
// segments (operation keyword and top-level field) before lookup. A path
// missing from a row fails the whole call with *meta.FieldProjectionError.
func Rows(rows []any, columns []meta.ColumnInfo) ([][]meta.Cell, error) {
	out := make([][]meta.Cell, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	for _, row := range rows {
		cells := make([]meta.Cell, 0, len(columns))
		for _, col := range columns {
			v, ok := Lookup(row, RowPath(col.Path))
			if !ok {
				return nil, &meta.FieldProjectionError{Path: col.Path}
			}
			if col.Kind == meta.BooleanColumn {
				v = strconv.FormatBool(truthy(v))
			}
			cells = append(cells, meta.Cell{Path: col.Path, Value: v})
		}
		out = append(out, cells)
	}
	return out, nil
}

// RowPath drops the operation keyword and the top-level field from path.
func RowPath(path string) string {
	parts := strings.Split(path, ".")
	if len(parts) <= 2 {
		return ""
	}
	return strings.Join(parts[2:], ".")
}

// Lookup follows a dotted path through nested maps and lists. List elements
// are addressed by their decimal index. An empty path returns value itself.
// A present null is found; a missing key is not.
func Lookup(value any, path string) (any, bool) {
	if path == "" {
		return value, true
	}
	cur := value
	for _, key := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[key]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Total reads the number at totalPath in an operation's data object. The
// operation keyword is dropped before lookup. An empty totalPath yields 0.
func Total(data map[string]any, totalPath string) (int, error) {
	if totalPath == "" {
		return 0, nil
	}
	rel := totalPath
	if i := strings.IndexByte(rel, '.'); i >= 0 {
		rel = rel[i+1:]
	}
	v, ok := Lookup(data, rel)
	if !ok {
		return 0, &meta.FieldProjectionError{Path: totalPath}
	}
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return floatTotal(n, totalPath)
	case float32:
		return floatTotal(float64(n), totalPath)
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("total at %s: %w", totalPath, err)
		}
		return floatTotal(f, totalPath)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("total at %s is not a number: %q", totalPath, n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("total at %s is %T, not a number", totalPath, v)
}

func floatTotal(f float64, totalPath string) (int, error) {
	if math.IsNaN(f) || f < -float64(math.MaxInt) || f >= float64(math.MaxInt) {
		return 0, fmt.Errorf("total at %s is out of range: %v", totalPath, f)
	}
	return int(f), nil
}

// LastPage is the number of pages needed for total items, at least 1.
func LastPage(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(perPage)))
}

// truthy mirrors how a loosely typed client decides whether a value reads
// as true.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case float64:
		return b != 0 && !math.IsNaN(b)
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32:
		return rv.Float() != 0
	}
	return true
}
