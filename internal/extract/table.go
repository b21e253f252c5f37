package extract

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/language"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/resolve"
	"github.com/hanpama/gqlview/internal/tree"
)

// Table collects the @column fields of every query operation in document
// order, and the path of the @total field if any. When several fields carry
// @total the last one wins.
func Table(doc *ast.QueryDocument, t *tree.Tree) (*meta.TableMeta, error) {
	rec := &tableRecorder{tree: t, out: &meta.TableMeta{Columns: []meta.ColumnInfo{}}}
	err := walkOperations(doc, rec, func(op *ast.OperationDefinition) bool {
		return op.Operation == ast.Query || op.Operation == ""
	})
	if err != nil {
		return nil, err
	}
	return rec.out, nil
}

type tableRecorder struct {
	tree *tree.Tree
	out  *meta.TableMeta
}

func (r *tableRecorder) record(action Action, d *ast.Directive, path *resolve.Path) error {
	switch action {
	case RecordColumn:
		col, err := Column(r.tree, path, language.StringArguments(d))
		if err != nil {
			return err
		}
		r.out.Columns = append(r.out.Columns, col)
	case RecordTotal:
		if _, err := resolve.ResolveType(r.tree, path); err != nil {
			return err
		}
		r.out.TotalPath = path.String()
	}
	return nil
}

// Column resolves path and builds its column. args are the string
// arguments of the @column directive.
func Column(t *tree.Tree, path *resolve.Path, args map[string]string) (meta.ColumnInfo, error) {
	res, err := resolve.ResolveType(t, path)
	if err != nil {
		return meta.ColumnInfo{}, err
	}
	col := meta.ColumnInfo{
		Key:         res.Key,
		Label:       res.Key,
		Description: args["description"],
		Path:        path.String(),
	}
	if label, ok := args["label"]; ok {
		col.Label = label
	}

	switch res.TypeName {
	case "String", "ID":
		col.Kind = meta.StringColumn
	case "Boolean":
		col.Kind = meta.BooleanColumn
	case "Int", "Float":
		col.Kind = meta.IntColumn
	default:
		switch {
		case t.Enum(res.TypeName) != nil:
			col.Kind = meta.EnumColumn
			col.EnumValues = t.EnumValues(res.TypeName)
		case isDateScalar(res.TypeName) && t.Scalar(res.TypeName) != nil:
			col.Kind = meta.DateColumn
		case t.Scalar(res.TypeName) != nil:
			col.Kind = meta.StringColumn
		default:
			return meta.ColumnInfo{}, notLeaf(path, res.TypeName)
		}
	}
	return col, nil
}

func isDateScalar(name string) bool {
	return name == "Date" || name == "DateTime"
}

func notLeaf(path *resolve.Path, typeName string) error {
	var pos *ast.Position
	if seg, ok := path.Last(); ok {
		pos = seg.Position
	}
	return &meta.PathResolutionError{
		Path:     path.String(),
		Message:  "cannot resolve typename: " + typeName + " is not a scalar or enum type",
		Position: pos,
	}
}
