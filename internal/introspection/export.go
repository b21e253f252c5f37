package introspection

import (
	"sort"

	"github.com/hanpama/gqlview/internal/schema"
)

// FromSchema produces the introspection result a server for s would return
// to Query. Types and directives are sorted by name; fields, arguments and
// enum values keep their declaration order.
func FromSchema(s *schema.Schema) *Schema {
	out := &Schema{
		Description:      ptr(s.Description),
		QueryType:        typeName(s.QueryType),
		MutationType:     typeName(s.MutationType),
		SubscriptionType: typeName(s.SubscriptionType),
		Types:            []FullType{},
		Directives:       []Directive{},
	}
	for _, t := range schemaTypes(s) {
		out.Types = append(out.Types, exportType(s, t))
	}
	for _, d := range schemaDirectives(s) {
		out.Directives = append(out.Directives, exportDirective(s, d))
	}
	return out
}

func typeName(name string) *TypeName {
	if name == "" {
		return nil
	}
	return &TypeName{Name: name}
}

func schemaTypes(s *schema.Schema) []*schema.Type {
	out := make([]*schema.Type, 0, len(s.Types))
	for _, t := range s.Types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func schemaDirectives(s *schema.Schema) []*schema.Directive {
	dirs := make([]*schema.Directive, 0, len(s.Directives))
	for _, d := range s.Directives {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	return dirs
}

func exportType(s *schema.Schema, t *schema.Type) FullType {
	ft := FullType{
		Kind:           string(t.Kind),
		Name:           t.Name,
		Description:    ptr(t.Description),
		SpecifiedByURL: t.SpecifiedByURL,
		IsOneOf:        t.OneOf,
	}
	switch t.Kind {
	case schema.TypeKindObject, schema.TypeKindInterface:
		ft.Fields = []Field{}
		for _, f := range t.Fields {
			ft.Fields = append(ft.Fields, exportField(s, f))
		}
		ft.Interfaces = []TypeRef{}
		for _, name := range t.Interfaces {
			ft.Interfaces = append(ft.Interfaces, namedRef(s, name))
		}
	case schema.TypeKindEnum:
		ft.EnumValues = []EnumValue{}
		for _, ev := range t.EnumValues {
			ft.EnumValues = append(ft.EnumValues, EnumValue{
				Name:              ev.Name,
				Description:       ptr(ev.Description),
				IsDeprecated:      ev.IsDeprecated,
				DeprecationReason: deprecationReason(ev.IsDeprecated, ev.DeprecationReason),
			})
		}
	case schema.TypeKindInputObject:
		ft.InputFields = exportInputValues(s, t.InputFields)
	}
	if t.Kind == schema.TypeKindInterface || t.Kind == schema.TypeKindUnion {
		ft.PossibleTypes = []TypeRef{}
		for _, name := range t.PossibleTypes {
			ft.PossibleTypes = append(ft.PossibleTypes, namedRef(s, name))
		}
	}
	return ft
}

func exportField(s *schema.Schema, f *schema.Field) Field {
	return Field{
		Name:              f.Name,
		Description:       ptr(f.Description),
		Args:              exportInputValues(s, f.Arguments),
		Type:              exportTypeRef(s, f.Type),
		IsDeprecated:      f.IsDeprecated,
		DeprecationReason: deprecationReason(f.IsDeprecated, f.DeprecationReason),
	}
}

func exportInputValues(s *schema.Schema, values []*schema.InputValue) []InputValue {
	out := []InputValue{}
	for _, v := range values {
		out = append(out, InputValue{
			Name:              v.Name,
			Description:       ptr(v.Description),
			Type:              exportTypeRef(s, v.Type),
			DefaultValue:      v.DefaultValue,
			IsDeprecated:      v.IsDeprecated,
			DeprecationReason: deprecationReason(v.IsDeprecated, v.DeprecationReason),
		})
	}
	return out
}

func exportDirective(s *schema.Schema, d *schema.Directive) Directive {
	locs := append([]string{}, d.Locations...)
	sort.Strings(locs)
	return Directive{
		Name:         d.Name,
		Description:  ptr(d.Description),
		IsRepeatable: d.IsRepeatable,
		Locations:    locs,
		Args:         exportInputValues(s, d.Arguments),
	}
}

func exportTypeRef(s *schema.Schema, ref *schema.TypeRef) *TypeRef {
	if ref == nil {
		return nil
	}
	switch ref.Kind {
	case schema.TypeRefKindNonNull:
		return &TypeRef{Kind: "NON_NULL", OfType: exportTypeRef(s, ref.OfType)}
	case schema.TypeRefKindList:
		return &TypeRef{Kind: "LIST", OfType: exportTypeRef(s, ref.OfType)}
	}
	named := namedRef(s, ref.Named)
	return &named
}

func namedRef(s *schema.Schema, name string) TypeRef {
	n := name
	ref := TypeRef{Name: &n}
	if t := s.Types[name]; t != nil {
		ref.Kind = string(t.Kind)
	}
	return ref
}

func deprecationReason(deprecated bool, reason string) *string {
	if !deprecated {
		return nil
	}
	return &reason
}
