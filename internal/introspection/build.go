package introspection

import (
	"fmt"

	"github.com/hanpama/gqlview/internal/schema"
)

// BuildSchema converts an introspection result into a schema model. It
// rejects results that could not come from a valid schema: a missing query
// root, unnamed types, unknown kinds, wrappers without ofType and references
// to types that are not declared.
func BuildSchema(in *Schema) (*schema.Schema, error) {
	if in == nil {
		return nil, fmt.Errorf("introspection result is empty")
	}
	if in.QueryType == nil || in.QueryType.Name == "" {
		return nil, fmt.Errorf("introspection result does not define a query type")
	}

	out := schema.NewSchema(str(in.Description))
	for i := range in.Types {
		ft := &in.Types[i]
		if ft.Name == "" {
			return nil, fmt.Errorf("type #%d has no name", i)
		}
		if _, dup := out.Types[ft.Name]; dup {
			return nil, fmt.Errorf("type %q is declared more than once", ft.Name)
		}
		t, err := buildType(ft)
		if err != nil {
			return nil, err
		}
		out.AddType(t)
	}
	for i := range in.Directives {
		d, err := buildDirective(&in.Directives[i])
		if err != nil {
			return nil, err
		}
		out.AddDirective(d)
	}
	schema.AddBuiltins(out)

	out.SetQueryType(in.QueryType.Name)
	if in.MutationType != nil {
		out.SetMutationType(in.MutationType.Name)
	}
	if in.SubscriptionType != nil {
		out.SetSubscriptionType(in.SubscriptionType.Name)
	}
	if err := checkReferences(out); err != nil {
		return nil, err
	}
	return out, nil
}

func buildType(ft *FullType) (*schema.Type, error) {
	var kind schema.TypeKind
	switch schema.TypeKind(ft.Kind) {
	case schema.TypeKindScalar, schema.TypeKindObject, schema.TypeKindInterface,
		schema.TypeKindUnion, schema.TypeKindEnum, schema.TypeKindInputObject:
		kind = schema.TypeKind(ft.Kind)
	default:
		return nil, fmt.Errorf("type %q has invalid kind %q", ft.Name, ft.Kind)
	}

	t := schema.NewType(ft.Name, kind, str(ft.Description))
	if ft.SpecifiedByURL != nil {
		t.SetSpecifiedByURL(*ft.SpecifiedByURL)
	}
	t.SetOneOf(ft.IsOneOf)

	switch kind {
	case schema.TypeKindObject, schema.TypeKindInterface:
		if ft.Fields == nil {
			return nil, fmt.Errorf("introspection result for %s %q is missing fields", kind, ft.Name)
		}
		for _, f := range ft.Fields {
			ref, err := buildTypeRef(f.Type)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", ft.Name, f.Name, err)
			}
			field := schema.NewField(f.Name, str(f.Description), ref)
			for _, a := range f.Args {
				arg, err := buildInputValue(&a)
				if err != nil {
					return nil, fmt.Errorf("%s.%s(%s): %w", ft.Name, f.Name, a.Name, err)
				}
				field.AddArgument(arg)
			}
			if f.IsDeprecated {
				field.Deprecate(str(f.DeprecationReason))
			}
			t.AddField(field)
		}
		for _, iface := range ft.Interfaces {
			if iface.Name == nil {
				return nil, fmt.Errorf("type %q implements an unnamed interface", ft.Name)
			}
			t.AddInterface(*iface.Name)
		}
	case schema.TypeKindUnion:
		for _, pt := range ft.PossibleTypes {
			if pt.Name == nil {
				return nil, fmt.Errorf("union %q has an unnamed member", ft.Name)
			}
			t.AddPossibleType(*pt.Name)
		}
	case schema.TypeKindEnum:
		if ft.EnumValues == nil {
			return nil, fmt.Errorf("introspection result for enum %q is missing enumValues", ft.Name)
		}
		for _, v := range ft.EnumValues {
			ev := schema.NewEnumValue(v.Name, str(v.Description))
			if v.IsDeprecated {
				ev.Deprecate(str(v.DeprecationReason))
			}
			t.AddEnumValue(ev)
		}
	case schema.TypeKindInputObject:
		if ft.InputFields == nil {
			return nil, fmt.Errorf("introspection result for input %q is missing inputFields", ft.Name)
		}
		for _, iv := range ft.InputFields {
			v, err := buildInputValue(&iv)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", ft.Name, iv.Name, err)
			}
			t.AddInputField(v)
		}
	}
	if kind == schema.TypeKindInterface {
		for _, pt := range ft.PossibleTypes {
			if pt.Name != nil {
				t.AddPossibleType(*pt.Name)
			}
		}
	}
	return t, nil
}

func buildInputValue(iv *InputValue) (*schema.InputValue, error) {
	ref, err := buildTypeRef(iv.Type)
	if err != nil {
		return nil, err
	}
	v := schema.NewInputValue(iv.Name, str(iv.Description), ref).SetDefault(iv.DefaultValue)
	if iv.IsDeprecated {
		v.Deprecate(str(iv.DeprecationReason))
	}
	return v, nil
}

func buildDirective(d *Directive) (*schema.Directive, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("directive has no name")
	}
	out := schema.NewDirective(d.Name, str(d.Description)).SetRepeatable(d.IsRepeatable)
	out.Locations = append(out.Locations, d.Locations...)
	for _, a := range d.Args {
		arg, err := buildInputValue(&a)
		if err != nil {
			return nil, fmt.Errorf("@%s(%s): %w", d.Name, a.Name, err)
		}
		out.AddArgument(arg)
	}
	return out, nil
}

func buildTypeRef(ref *TypeRef) (*schema.TypeRef, error) {
	if ref == nil {
		return nil, fmt.Errorf("missing type reference")
	}
	switch ref.Kind {
	case "NON_NULL", "LIST":
		if ref.OfType == nil {
			return nil, fmt.Errorf("%s type reference without ofType", ref.Kind)
		}
		inner, err := buildTypeRef(ref.OfType)
		if err != nil {
			return nil, err
		}
		if ref.Kind == "LIST" {
			return schema.ListType(inner), nil
		}
		if inner.IsNonNull() {
			return nil, fmt.Errorf("NON_NULL type reference wraps another NON_NULL")
		}
		return schema.NonNullType(inner), nil
	}
	if ref.Name == nil || *ref.Name == "" {
		return nil, fmt.Errorf("%s type reference without name", ref.Kind)
	}
	return schema.NamedType(*ref.Name), nil
}

func checkReferences(s *schema.Schema) error {
	known := func(name string) error {
		if _, ok := s.Types[name]; !ok {
			return fmt.Errorf("unknown type %q", name)
		}
		return nil
	}
	if err := known(s.QueryType); err != nil {
		return fmt.Errorf("query type: %w", err)
	}
	for _, root := range []string{s.MutationType, s.SubscriptionType} {
		if root == "" {
			continue
		}
		if err := known(root); err != nil {
			return fmt.Errorf("root type: %w", err)
		}
	}
	for _, t := range s.Types {
		for _, f := range t.Fields {
			if err := known(f.Type.GetNamedType()); err != nil {
				return fmt.Errorf("%s.%s: %w", t.Name, f.Name, err)
			}
			for _, a := range f.Arguments {
				if err := known(a.Type.GetNamedType()); err != nil {
					return fmt.Errorf("%s.%s(%s): %w", t.Name, f.Name, a.Name, err)
				}
			}
		}
		for _, iv := range t.InputFields {
			if err := known(iv.Type.GetNamedType()); err != nil {
				return fmt.Errorf("%s.%s: %w", t.Name, iv.Name, err)
			}
		}
		for _, name := range append(append([]string{}, t.Interfaces...), t.PossibleTypes...) {
			if err := known(name); err != nil {
				return fmt.Errorf("%s: %w", t.Name, err)
			}
		}
	}
	for _, d := range s.Directives {
		for _, a := range d.Arguments {
			if err := known(a.Type.GetNamedType()); err != nil {
				return fmt.Errorf("@%s(%s): %w", d.Name, a.Name, err)
			}
		}
	}
	return nil
}
