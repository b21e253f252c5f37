package schema

import (
	"sort"
	"strconv"
	"strings"
)

// Render produces SDL from the Schema.
// Deterministic ordering: type/directive names sorted lexicographically.
// Fields, arguments and enum values keep their declaration order.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	p := &printer{}
	p.schemaBlock(s)

	typeNames := make([]string, 0, len(s.Types))
	for name := range s.Types {
		if IsBuiltinScalar(name) || strings.HasPrefix(name, "__") {
			continue
		}
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	for _, name := range typeNames {
		p.typ(s.Types[name])
	}

	directiveNames := make([]string, 0, len(s.Directives))
	for name := range s.Directives {
		if IsBuiltinDirective(name) {
			continue
		}
		directiveNames = append(directiveNames, name)
	}
	sort.Strings(directiveNames)
	for _, name := range directiveNames {
		p.directive(s.Directives[name])
	}

	return strings.TrimRight(p.b.String(), "\n") + "\n"
}

type printer struct {
	b strings.Builder
}

func (p *printer) w(parts ...string) {
	for _, s := range parts {
		p.b.WriteString(s)
	}
}

// schemaBlock prints `schema {}` only when a root name is not the default.
func (p *printer) schemaBlock(s *Schema) {
	roots := [][2]string{
		{"query", s.QueryType},
		{"mutation", s.MutationType},
		{"subscription", s.SubscriptionType},
	}
	custom := false
	for _, r := range roots {
		if r[1] != "" && r[1] != strings.ToUpper(r[0][:1])+r[0][1:] {
			custom = true
		}
	}
	if !custom && s.Description == "" {
		return
	}
	p.description(s.Description, "")
	p.w("schema {\n")
	for _, r := range roots {
		if r[1] != "" {
			p.w("  ", r[0], ": ", r[1], "\n")
		}
	}
	p.w("}\n\n")
}

func (p *printer) typ(t *Type) {
	p.description(t.Description, "")
	switch t.Kind {
	case TypeKindScalar:
		p.w("scalar ", t.Name)
		if t.SpecifiedByURL != nil {
			p.w(" @specifiedBy(url: ", strconv.Quote(*t.SpecifiedByURL), ")")
		}
		p.w("\n\n")
	case TypeKindEnum:
		p.w("enum ", t.Name)
		if len(t.EnumValues) == 0 {
			p.w("\n\n")
			return
		}
		p.w(" {\n")
		for _, v := range t.EnumValues {
			p.description(v.Description, "  ")
			p.w("  ", v.Name)
			p.deprecation(v.IsDeprecated, v.DeprecationReason)
			p.w("\n")
		}
		p.w("}\n\n")
	case TypeKindInputObject:
		p.w("input ", t.Name)
		if t.OneOf {
			p.w(" @oneOf")
		}
		if len(t.InputFields) == 0 {
			p.w("\n\n")
			return
		}
		p.w(" {\n")
		for _, f := range t.InputFields {
			p.description(f.Description, "  ")
			p.w("  ")
			p.inputValue(f)
			p.w("\n")
		}
		p.w("}\n\n")
	case TypeKindObject, TypeKindInterface:
		keyword := "type "
		if t.Kind == TypeKindInterface {
			keyword = "interface "
		}
		p.w(keyword, t.Name)
		if len(t.Interfaces) > 0 {
			p.w(" implements ", strings.Join(t.Interfaces, " & "))
		}
		if len(t.Fields) == 0 {
			p.w("\n\n")
			return
		}
		p.w(" {\n")
		for _, f := range t.Fields {
			p.field(f)
		}
		p.w("}\n\n")
	case TypeKindUnion:
		p.w("union ", t.Name)
		if len(t.PossibleTypes) > 0 {
			p.w(" = ", strings.Join(t.PossibleTypes, " | "))
		}
		p.w("\n\n")
	}
}

func (p *printer) field(f *Field) {
	p.description(f.Description, "  ")
	p.w("  ", f.Name)
	p.arguments(f.Arguments)
	p.w(": ", renderTypeRef(f.Type))
	p.deprecation(f.IsDeprecated, f.DeprecationReason)
	p.w("\n")
}

func (p *printer) arguments(args []*InputValue) {
	if len(args) == 0 {
		return
	}
	p.w("(")
	for i, arg := range args {
		if i > 0 {
			p.w(", ")
		}
		p.inputValue(arg)
	}
	p.w(")")
}

func (p *printer) inputValue(v *InputValue) {
	p.w(v.Name, ": ", renderTypeRef(v.Type))
	if v.DefaultValue != nil {
		p.w(" = ", *v.DefaultValue)
	}
	p.deprecation(v.IsDeprecated, v.DeprecationReason)
}

func (p *printer) directive(d *Directive) {
	p.description(d.Description, "")
	p.w("directive @", d.Name)
	p.arguments(d.Arguments)
	if d.IsRepeatable {
		p.w(" repeatable")
	}
	p.w(" on ", strings.Join(d.Locations, " | "), "\n\n")
}

func (p *printer) deprecation(deprecated bool, reason string) {
	if !deprecated {
		return
	}
	p.w(" @deprecated")
	if reason != "" {
		p.w("(reason: ", strconv.Quote(reason), ")")
	}
}

func (p *printer) description(desc, indent string) {
	if desc == "" {
		return
	}
	escaped := strings.ReplaceAll(desc, `"""`, `\"""`)
	p.w(indent, `"""`, "\n")
	for _, line := range strings.Split(escaped, "\n") {
		p.w(indent, line, "\n")
	}
	p.w(indent, `"""`, "\n")
}

func renderTypeRef(typeRef *TypeRef) string {
	if typeRef == nil {
		return ""
	}

	switch typeRef.Kind {
	case TypeRefKindNamed:
		return typeRef.Named
	case TypeRefKindList:
		return "[" + renderTypeRef(typeRef.OfType) + "]"
	case TypeRefKindNonNull:
		return renderTypeRef(typeRef.OfType) + "!"
	default:
		return ""
	}
}
