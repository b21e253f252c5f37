package extract

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/resolve"
)

// recorder receives every recording directive met during a walk, with the
// path of the field it is attached to.
type recorder interface {
	record(action Action, d *ast.Directive, path *resolve.Path) error
}

// walker performs one depth-first traversal. Fragments are replayed by a
// nested walker that owns a copy of the path, so the outer stack is never
// touched by the inner walk.
type walker struct {
	doc       *ast.QueryDocument
	path      *resolve.Path
	fragments []string
	rec       recorder
}

func walkOperations(doc *ast.QueryDocument, rec recorder, include func(*ast.OperationDefinition) bool) error {
	for _, op := range doc.Operations {
		if !include(op) {
			continue
		}
		w := &walker{doc: doc, path: resolve.NewPath(op.Operation), rec: rec}
		if err := w.selectionSet(op.SelectionSet); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) selectionSet(set ast.SelectionSet) error {
	for _, sel := range set {
		var err error
		switch sel := sel.(type) {
		case *ast.Field:
			err = w.field(sel)
		case *ast.FragmentSpread:
			err = w.spread(sel)
		case *ast.InlineFragment:
			if pruned(sel.Directives) {
				continue
			}
			err = w.nested(nil).selectionSet(sel.SelectionSet)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) field(f *ast.Field) error {
	w.path.Push(f)
	defer w.path.Pop()

	for _, d := range f.Directives {
		switch a := ActionFor(d.Name); a {
		case RecordColumn, RecordInput, RecordTotal:
			if err := w.rec.record(a, d, w.path); err != nil {
				return err
			}
		}
	}
	if len(f.SelectionSet) == 0 || pruned(f.Directives) {
		return nil
	}
	return w.selectionSet(f.SelectionSet)
}

func (w *walker) spread(s *ast.FragmentSpread) error {
	def := w.doc.Fragments.ForName(s.Name)
	if def == nil {
		return meta.Directivef(s.Position, "unknown fragment %q spread at %s", s.Name, w.path)
	}
	for _, name := range w.fragments {
		if name == s.Name {
			return meta.Directivef(s.Position, "fragment %q spreads itself", s.Name)
		}
	}
	if pruned(s.Directives) {
		return nil
	}
	return w.nested(&s.Name).selectionSet(def.SelectionSet)
}

func (w *walker) nested(fragment *string) *walker {
	chain := append([]string(nil), w.fragments...)
	if fragment != nil {
		chain = append(chain, *fragment)
	}
	return &walker{doc: w.doc, path: w.path.Clone(), fragments: chain, rec: w.rec}
}

// pruned reports whether dirs close a subtree: some directive is unknown and
// none is a container.
func pruned(dirs ast.DirectiveList) bool {
	prune := false
	for _, d := range dirs {
		switch ActionFor(d.Name) {
		case Descend:
			return false
		case Prune:
			prune = true
		}
	}
	return prune
}
