package resolve

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/tree"
)

// Resolution is the leaf type a path ends on.
type Resolution struct {
	TypeName string
	// NonNull reports the outer wrapper of the last hop only.
	NonNull bool
	// Key is the schema field name of the last hop.
	Key   string
	Field *ast.FieldDefinition
}

// ResolveType walks path from the operation's root type, one field per
// segment. Fields are matched by name; aliases only shape the printed path.
// Every intermediate hop must land on an object or interface type and the
// last one on a leaf type.
func ResolveType(t *tree.Tree, path *Path) (Resolution, error) {
	rootName := t.RootTypeName(path.Operation)
	focus := t.Object(rootName)
	if focus == nil {
		return Resolution{}, &meta.PathResolutionError{
			Message: fmt.Sprintf("%s type not found", rootTypeLabel(path.Operation)),
		}
	}
	segs := path.Segments()
	if len(segs) == 0 {
		return Resolution{}, fail(path, nil, "cannot resolve typename: empty selection path")
	}

	var res Resolution
	for i, seg := range segs {
		last := i == len(segs)-1
		if seg.Name == "__typename" && last {
			return Resolution{TypeName: "String", NonNull: true, Key: seg.Name}, nil
		}
		def := focus.Fields.ForName(seg.Name)
		if def == nil {
			return Resolution{}, fail(path, seg.Position, "cannot resolve typename: field %q is not defined on %s", seg.Name, focus.Name)
		}
		res = Resolution{
			TypeName: def.Type.Name(),
			NonNull:  def.Type.NonNull,
			Key:      def.Name,
			Field:    def,
		}
		next := t.Object(res.TypeName)
		if last {
			if next != nil {
				return Resolution{}, fail(path, seg.Position, "cannot resolve typename: %s is an object type, select a leaf field of it", res.TypeName)
			}
			break
		}
		if next == nil {
			return Resolution{}, fail(path, segs[i+1].Position, "cannot resolve typename: %s is a leaf type, %q cannot be selected on it", res.TypeName, segs[i+1].Name)
		}
		focus = next
	}

	if !t.IsBuiltinScalar(res.TypeName) && t.Definition(res.TypeName) == nil {
		return Resolution{}, fail(path, nil, "cannot resolve typename: unknown type %s", res.TypeName)
	}
	return res, nil
}

func fail(path *Path, pos *ast.Position, format string, args ...any) error {
	if pos == nil {
		if seg, ok := path.Last(); ok {
			pos = seg.Position
		}
	}
	return &meta.PathResolutionError{
		Path:     path.String(),
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	}
}

func rootTypeLabel(op ast.Operation) string {
	if op == "" {
		op = ast.Query
	}
	s := string(op)
	return strings.ToUpper(s[:1]) + s[1:]
}
