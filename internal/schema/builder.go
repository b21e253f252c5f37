package schema

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/language"
)

// BuildFromSDL parses SDL string and returns the corresponding Schema.
// Type extensions are merged into their base definitions and the specified
// scalars and directives are always present.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}
	return BuildFromDocument(doc)
}

// BuildFromDocument converts a parsed schema document into a Schema.
func BuildFromDocument(doc *language.SchemaDocument) (*Schema, error) {
	s := NewSchema("")
	for _, def := range doc.Definitions {
		if _, dup := s.Types[def.Name]; dup {
			return nil, fmt.Errorf("type %q defined more than once", def.Name)
		}
		s.AddType(buildType(def))
	}
	for _, ext := range doc.Extensions {
		base, ok := s.Types[ext.Name]
		if !ok {
			return nil, fmt.Errorf("cannot extend undefined type %q", ext.Name)
		}
		extendType(base, ext)
	}
	for _, dir := range doc.Directives {
		s.AddDirective(buildDirective(dir))
	}

	for _, sd := range append(append(ast.SchemaDefinitionList{}, doc.Schema...), doc.SchemaExtension...) {
		if sd.Description != "" {
			s.Description = sd.Description
		}
		for _, op := range sd.OperationTypes {
			switch op.Operation {
			case language.Query:
				s.SetQueryType(op.Type)
			case language.Mutation:
				s.SetMutationType(op.Type)
			case language.Subscription:
				s.SetSubscriptionType(op.Type)
			}
		}
	}
	if s.QueryType == "" && s.Types["Query"] != nil {
		s.SetQueryType("Query")
	}
	if s.MutationType == "" && s.Types["Mutation"] != nil {
		s.SetMutationType("Mutation")
	}
	if s.SubscriptionType == "" && s.Types["Subscription"] != nil {
		s.SetSubscriptionType("Subscription")
	}
	return AddBuiltins(s), nil
}

func buildType(def *language.Definition) *Type {
	t := NewType(def.Name, kindOf(def.Kind), def.Description)
	extendType(t, def)
	return t
}

func extendType(t *Type, def *language.Definition) {
	for _, name := range def.Interfaces {
		t.AddInterface(name)
	}
	for _, name := range def.Types {
		t.AddPossibleType(name)
	}
	for _, v := range def.EnumValues {
		ev := NewEnumValue(v.Name, v.Description)
		if reason, ok := deprecation(v.Directives); ok {
			ev.Deprecate(reason)
		}
		t.AddEnumValue(ev)
	}
	for _, f := range def.Fields {
		if t.Kind == TypeKindInputObject {
			t.AddInputField(buildInputValue(f.Name, f.Description, f.Type, f.DefaultValue, f.Directives))
			continue
		}
		field := NewField(f.Name, f.Description, buildTypeRef(f.Type))
		for _, arg := range f.Arguments {
			field.AddArgument(buildInputValue(arg.Name, arg.Description, arg.Type, arg.DefaultValue, arg.Directives))
		}
		if reason, ok := deprecation(f.Directives); ok {
			field.Deprecate(reason)
		}
		t.AddField(field)
	}
	if d := def.Directives.ForName("specifiedBy"); d != nil {
		if url := d.Arguments.ForName("url"); url != nil && url.Value != nil {
			t.SetSpecifiedByURL(url.Value.Raw)
		}
	}
	if def.Directives.ForName("oneOf") != nil {
		t.SetOneOf(true)
	}
}

func buildInputValue(name, description string, typ *language.Type, def *language.Value, dirs language.DirectiveList) *InputValue {
	v := NewInputValue(name, description, buildTypeRef(typ))
	if def != nil {
		literal := def.String()
		v.SetDefault(&literal)
	}
	if reason, ok := deprecation(dirs); ok {
		v.Deprecate(reason)
	}
	return v
}

func buildDirective(def *ast.DirectiveDefinition) *Directive {
	d := NewDirective(def.Name, def.Description).SetRepeatable(def.IsRepeatable)
	for _, arg := range def.Arguments {
		d.AddArgument(buildInputValue(arg.Name, arg.Description, arg.Type, arg.DefaultValue, arg.Directives))
	}
	for _, loc := range def.Locations {
		d.Locations = append(d.Locations, string(loc))
	}
	return d
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	var ref *TypeRef
	if t.Elem != nil {
		ref = ListType(buildTypeRef(t.Elem))
	} else {
		ref = NamedType(t.NamedType)
	}
	if t.NonNull {
		ref = NonNullType(ref)
	}
	return ref
}

func kindOf(k language.DefinitionKind) TypeKind {
	switch k {
	case language.Object:
		return TypeKindObject
	case language.Interface:
		return TypeKindInterface
	case language.Union:
		return TypeKindUnion
	case language.Enum:
		return TypeKindEnum
	case language.InputObject:
		return TypeKindInputObject
	}
	return TypeKindScalar
}

func deprecation(dirs language.DirectiveList) (string, bool) {
	d := dirs.ForName("deprecated")
	if d == nil {
		return "", false
	}
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw, true
	}
	return "", true
}
