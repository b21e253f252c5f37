package extract

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/language"
	"github.com/hanpama/gqlview/internal/meta"
)

// DataKey returns the response key of the top-level field that holds the
// table rows. The first directive met in document order decides; without
// any directive the first top-level field of the first query is used.
func DataKey(doc *ast.QueryDocument) (string, error) {
	fallback := ""
	for _, op := range doc.Operations {
		if op.Operation != ast.Query && op.Operation != "" {
			continue
		}
		for _, top := range topLevelFields(doc, op.SelectionSet, nil) {
			if fallback == "" {
				fallback = language.ResponseKey(top)
			}
			if hasDirective(doc, top, nil) {
				return language.ResponseKey(top), nil
			}
		}
	}
	if fallback == "" {
		return "", meta.Directivef(nil, "query has no top-level field to read rows from")
	}
	return fallback, nil
}

// FormDataKey returns the response key of the first field carrying @form.
func FormDataKey(doc *ast.QueryDocument) (string, error) {
	for _, op := range doc.Operations {
		if f := findField(doc, op.SelectionSet, nil, func(f *ast.Field) bool {
			return f.Directives.ForName(FormDirective) != nil
		}); f != nil {
			return language.ResponseKey(f), nil
		}
	}
	return "", meta.Directivef(nil, "query has no field annotated with @%s", FormDirective)
}

// FormLabel returns the label argument of the first @form directive, or "".
func FormLabel(doc *ast.QueryDocument) string {
	for _, op := range doc.Operations {
		if f := findField(doc, op.SelectionSet, nil, func(f *ast.Field) bool {
			return f.Directives.ForName(FormDirective) != nil
		}); f != nil {
			return language.StringArguments(f.Directives.ForName(FormDirective))["label"]
		}
	}
	return ""
}

// topLevelFields flattens fragments at the root of an operation.
func topLevelFields(doc *ast.QueryDocument, set ast.SelectionSet, seen []string) []*ast.Field {
	var out []*ast.Field
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			out = append(out, sel)
		case *ast.InlineFragment:
			out = append(out, topLevelFields(doc, sel.SelectionSet, seen)...)
		case *ast.FragmentSpread:
			if def := fragment(doc, sel.Name, seen); def != nil {
				out = append(out, topLevelFields(doc, def.SelectionSet, append(seen, sel.Name))...)
			}
		}
	}
	return out
}

// hasDirective reports whether f or anything below it carries a directive.
func hasDirective(doc *ast.QueryDocument, f *ast.Field, seen []string) bool {
	if len(f.Directives) > 0 {
		return true
	}
	return findField(doc, f.SelectionSet, seen, func(f *ast.Field) bool { return len(f.Directives) > 0 }) != nil
}

// findField returns the first field in depth-first order matching pred.
func findField(doc *ast.QueryDocument, set ast.SelectionSet, seen []string, pred func(*ast.Field) bool) *ast.Field {
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			if pred(sel) {
				return sel
			}
			if f := findField(doc, sel.SelectionSet, seen, pred); f != nil {
				return f
			}
		case *ast.InlineFragment:
			if f := findField(doc, sel.SelectionSet, seen, pred); f != nil {
				return f
			}
		case *ast.FragmentSpread:
			if def := fragment(doc, sel.Name, seen); def != nil {
				if f := findField(doc, def.SelectionSet, append(seen, sel.Name), pred); f != nil {
					return f
				}
			}
		}
	}
	return nil
}

func fragment(doc *ast.QueryDocument, name string, seen []string) *ast.FragmentDefinition {
	for _, s := range seen {
		if s == name {
			return nil
		}
	}
	return doc.Fragments.ForName(name)
}
