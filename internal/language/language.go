package language

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// PrintQuery formats doc back into GraphQL source text.
func PrintQuery(doc *QueryDocument) string {
	var b strings.Builder
	formatter.NewFormatter(&b).FormatQueryDocument(doc)
	return b.String()
}

// StringArguments returns the string-valued arguments of a directive keyed by
// argument name. Non-string arguments are ignored.
func StringArguments(d *Directive) map[string]string {
	out := map[string]string{}
	if d == nil {
		return out
	}
	for _, arg := range d.Arguments {
		if arg.Value == nil {
			continue
		}
		if arg.Value.Kind == StringValue || arg.Value.Kind == BlockValue {
			out[arg.Name] = arg.Value.Raw
		}
	}
	return out
}

// ResponseKey returns the alias of f, or its name when unaliased.
func ResponseKey(f *Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// SelectOperation returns a shallow copy of doc holding only the operation
// named name, and false when doc has no such operation. An empty name
// selects every operation.
func SelectOperation(doc *QueryDocument, name string) (*QueryDocument, bool) {
	if name == "" {
		return doc, true
	}
	op := doc.Operations.ForName(name)
	if op == nil {
		return nil, false
	}
	selected := *doc
	selected.Operations = OperationList{op}
	return &selected, true
}
