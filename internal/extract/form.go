package extract

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/language"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/resolve"
	"github.com/hanpama/gqlview/internal/tree"
)

// Form collects the @input fields of every operation in document order.
func Form(doc *ast.QueryDocument, t *tree.Tree) ([]meta.FormMeta, error) {
	rec := &formRecorder{tree: t, out: []meta.FormMeta{}}
	err := walkOperations(doc, rec, func(*ast.OperationDefinition) bool { return true })
	if err != nil {
		return nil, err
	}
	return rec.out, nil
}

type formRecorder struct {
	tree *tree.Tree
	out  []meta.FormMeta
}

func (r *formRecorder) record(action Action, d *ast.Directive, path *resolve.Path) error {
	if action != RecordInput {
		return nil
	}
	field, err := Input(r.tree, path, language.StringArguments(d))
	if err != nil {
		return err
	}
	r.out = append(r.out, field)
	return nil
}

// Input resolves path and builds its form field.
func Input(t *tree.Tree, path *resolve.Path, args map[string]string) (meta.FormMeta, error) {
	res, err := resolve.ResolveType(t, path)
	if err != nil {
		return meta.FormMeta{}, err
	}
	field := meta.FormMeta{
		Key:         res.Key,
		Label:       res.Key,
		Description: args["description"],
		Path:        path.String(),
		TypeName:    res.TypeName,
		NonNull:     res.NonNull,
		Editable:    true,
	}
	if label, ok := args["label"]; ok {
		field.Label = label
	}

	switch res.TypeName {
	case "ID", "String":
		field.Kind = meta.TextInput
		field.Editable = res.TypeName != "ID"
	case "Boolean":
		field.Kind = meta.BooleanInput
	case "Int", "Float":
		field.Kind = meta.TextInput
	default:
		switch {
		case t.Enum(res.TypeName) != nil:
			field.Kind = meta.EnumInput
			field.Options = t.EnumValues(res.TypeName)
		case isDateScalar(res.TypeName) && t.Scalar(res.TypeName) != nil:
			field.Kind = meta.DateInput
		case t.Scalar(res.TypeName) != nil:
			field.Kind = meta.TextInput
		default:
			return meta.FormMeta{}, notLeaf(path, res.TypeName)
		}
	}
	return field, nil
}
