// Package extract derives table and form metadata from a query document
// annotated with view directives.
package extract

// Action is what the extractor does with a field carrying a directive.
type Action int

const (
	// Prune stops the walk from entering the field's selection set.
	Prune Action = iota
	// Descend marks a container whose children are always visited.
	Descend
	RecordColumn
	RecordInput
	RecordTotal
)

func (a Action) String() string {
	switch a {
	case Descend:
		return "descend"
	case RecordColumn:
		return "column"
	case RecordInput:
		return "input"
	case RecordTotal:
		return "total"
	}
	return "prune"
}

// Directive names understood by the extractor.
const (
	TableDirective      = "table"
	PaginationDirective = "pagination"
	FormDirective       = "form"
	ColumnDirective     = "column"
	InputDirective      = "input"
	TotalDirective      = "total"
)

// ActionFor maps a directive name to its action. Unknown names prune.
func ActionFor(name string) Action {
	switch name {
	case TableDirective, PaginationDirective, FormDirective:
		return Descend
	case ColumnDirective:
		return RecordColumn
	case InputDirective:
		return RecordInput
	case TotalDirective:
		return RecordTotal
	}
	return Prune
}
