// Package tree materializes an introspection result into a parsed schema
// document that path resolution walks.
package tree

import (
	"bytes"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/introspection"
	"github.com/hanpama/gqlview/internal/language"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/schema"
)

// Tree is an immutable schema document. Each extraction builds its own.
type Tree struct {
	Document *language.SchemaDocument
	roots    map[ast.Operation]string
}

// Materialize builds the schema described by in, prints it as SDL and
// parses the result. Every failure is a *meta.SchemaError.
func Materialize(in *introspection.Schema) (*Tree, error) {
	sch, err := introspection.BuildSchema(in)
	if err != nil {
		return nil, &meta.SchemaError{Err: err}
	}
	return fromModel(sch)
}

// MaterializeJSON decodes an introspection result and materializes it.
func MaterializeJSON(data []byte) (*Tree, error) {
	in, err := introspection.Decode(data)
	if err != nil {
		return nil, &meta.SchemaError{Err: err}
	}
	return Materialize(in)
}

// MaterializeDocument materializes data as an introspection result when it
// is a JSON object and as SDL otherwise.
func MaterializeDocument(data []byte) (*Tree, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return MaterializeJSON(data)
	}
	return MaterializeSDL(string(data))
}

// MaterializeSDL materializes a schema given as SDL text.
func MaterializeSDL(sdl string) (*Tree, error) {
	sch, err := schema.BuildFromSDL(sdl)
	if err != nil {
		return nil, &meta.SchemaError{Err: err}
	}
	return fromModel(sch)
}

func fromModel(sch *schema.Schema) (*Tree, error) {
	doc, err := language.ParseSchema("introspection.graphql", schema.Render(sch))
	if err != nil {
		return nil, &meta.SchemaError{Err: err}
	}
	t := &Tree{Document: doc, roots: map[ast.Operation]string{}}
	for _, sd := range doc.Schema {
		for _, op := range sd.OperationTypes {
			t.roots[op.Operation] = op.Type
		}
	}
	for op, name := range map[ast.Operation]string{
		ast.Query:        "Query",
		ast.Mutation:     "Mutation",
		ast.Subscription: "Subscription",
	} {
		if _, ok := t.roots[op]; !ok && doc.Definitions.ForName(name) != nil {
			t.roots[op] = name
		}
	}
	return t, nil
}

// RootTypeName returns the root type of op, or "" when the schema has none.
func (t *Tree) RootTypeName(op ast.Operation) string {
	if op == "" {
		op = ast.Query
	}
	return t.roots[op]
}

// Definition returns the named type definition, or nil.
func (t *Tree) Definition(name string) *ast.Definition {
	return t.Document.Definitions.ForName(name)
}

// Object returns the object or interface definition named name.
func (t *Tree) Object(name string) *ast.Definition {
	def := t.Definition(name)
	if def == nil || (def.Kind != ast.Object && def.Kind != ast.Interface) {
		return nil
	}
	return def
}

func (t *Tree) Enum(name string) *ast.Definition {
	def := t.Definition(name)
	if def == nil || def.Kind != ast.Enum {
		return nil
	}
	return def
}

// Scalar returns the custom scalar named name. Built-in scalars are not
// printed and have no definition; see IsBuiltinScalar.
func (t *Tree) Scalar(name string) *ast.Definition {
	def := t.Definition(name)
	if def == nil || def.Kind != ast.Scalar {
		return nil
	}
	return def
}

func (t *Tree) IsBuiltinScalar(name string) bool {
	return schema.IsBuiltinScalar(name)
}

// EnumValues returns the value names of an enum in declaration order.
func (t *Tree) EnumValues(name string) []string {
	def := t.Enum(name)
	if def == nil {
		return nil
	}
	out := make([]string, 0, len(def.EnumValues))
	for _, v := range def.EnumValues {
		out = append(out, v.Name)
	}
	return out
}
