package extract

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/language"
)

// viewDirectives are removed before a document is sent to a GraphQL server.
var viewDirectives = map[string]bool{
	TableDirective:      true,
	PaginationDirective: true,
	FormDirective:       true,
	ColumnDirective:     true,
	InputDirective:      true,
	TotalDirective:      true,
	"value":             true,
	"lang":              true,
	"label":             true,
	"relation":          true,
	"datasources":       true,
}

// isViewDirective reports whether name is consumed client side.
func isViewDirective(name string) bool { return viewDirectives[name] }

// StripDirectives prints doc without view directives. doc is not modified.
func StripDirectives(doc *ast.QueryDocument) string {
	out := &ast.QueryDocument{Position: doc.Position}
	for _, op := range doc.Operations {
		c := *op
		c.Directives = stripList(op.Directives)
		c.SelectionSet = stripSet(op.SelectionSet)
		out.Operations = append(out.Operations, &c)
	}
	for _, frag := range doc.Fragments {
		c := *frag
		c.Directives = stripList(frag.Directives)
		c.SelectionSet = stripSet(frag.SelectionSet)
		out.Fragments = append(out.Fragments, &c)
	}
	return language.PrintQuery(out)
}

func stripSet(set ast.SelectionSet) ast.SelectionSet {
	if set == nil {
		return nil
	}
	out := make(ast.SelectionSet, 0, len(set))
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			c := *sel
			c.Directives = stripList(sel.Directives)
			c.SelectionSet = stripSet(sel.SelectionSet)
			out = append(out, &c)
		case *ast.FragmentSpread:
			c := *sel
			c.Directives = stripList(sel.Directives)
			out = append(out, &c)
		case *ast.InlineFragment:
			c := *sel
			c.Directives = stripList(sel.Directives)
			c.SelectionSet = stripSet(sel.SelectionSet)
			out = append(out, &c)
		}
	}
	return out
}

func stripList(dirs ast.DirectiveList) ast.DirectiveList {
	var out ast.DirectiveList
	for _, d := range dirs {
		if !isViewDirective(d.Name) {
			out = append(out, d)
		}
	}
	return out
}
