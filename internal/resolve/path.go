// Package resolve walks selection paths through a materialized schema.
package resolve

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Segment is one field hop of a selection path.
type Segment struct {
	Name     string
	Alias    string
	Position *ast.Position
}

// ResponseKey is the alias when present, else the field name.
func (s Segment) ResponseKey() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

// Path is the stack of fields from an operation root down to the field
// being visited. A Path belongs to one traversal; nested traversals work on
// a Clone.
type Path struct {
	Operation ast.Operation
	segments  []Segment
}

func NewPath(op ast.Operation) *Path {
	if op == "" {
		op = ast.Query
	}
	return &Path{Operation: op}
}

// Push appends f to the path.
func (p *Path) Push(f *ast.Field) {
	alias := f.Alias
	if alias == f.Name {
		alias = ""
	}
	p.segments = append(p.segments, Segment{Name: f.Name, Alias: alias, Position: f.Position})
}

func (p *Path) PushSegment(s Segment) { p.segments = append(p.segments, s) }

func (p *Path) Pop() {
	if len(p.segments) > 0 {
		p.segments = p.segments[:len(p.segments)-1]
	}
}

func (p *Path) Clone() *Path {
	return &Path{Operation: p.Operation, segments: append([]Segment(nil), p.segments...)}
}

func (p *Path) Len() int { return len(p.segments) }

func (p *Path) Segments() []Segment { return p.segments }

// Last returns the innermost segment. ok is false for an empty path.
func (p *Path) Last() (seg Segment, ok bool) {
	if len(p.segments) == 0 {
		return Segment{}, false
	}
	return p.segments[len(p.segments)-1], true
}

// Key is the field name of the innermost segment.
func (p *Path) Key() string {
	seg, _ := p.Last()
	return seg.Name
}

// String joins the operation keyword and the response key of every segment
// with dots, e.g. "query.todoes.name".
func (p *Path) String() string {
	var b strings.Builder
	b.WriteString(string(p.Operation))
	for _, s := range p.segments {
		b.WriteByte('.')
		b.WriteString(s.ResponseKey())
	}
	return b.String()
}
