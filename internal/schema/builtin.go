package schema

var builtinScalars = []*Type{
	{Name: "String", Kind: TypeKindScalar, Description: "The `String` scalar type represents textual data, represented as UTF-8 character sequences."},
	{Name: "Int", Kind: TypeKindScalar, Description: "The `Int` scalar type represents non-fractional signed whole numeric values."},
	{Name: "Float", Kind: TypeKindScalar, Description: "The `Float` scalar type represents signed double-precision fractional values."},
	{Name: "Boolean", Kind: TypeKindScalar, Description: "The `Boolean` scalar type represents `true` or `false`."},
	{Name: "ID", Kind: TypeKindScalar, Description: "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching."},
}

func booleanIf(description string) *InputValue {
	return &InputValue{Name: "if", Description: description, Type: NonNullType(NamedType("Boolean"))}
}

func optionalString(name, description string, literal string) *InputValue {
	return &InputValue{Name: name, Description: description, Type: NamedType("String"), DefaultValue: &literal}
}

var builtinDirectives = []*Directive{
	{
		Name:        "include",
		Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
		Arguments:   []*InputValue{booleanIf("Included when true.")},
		Locations:   []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
	},
	{
		Name:        "skip",
		Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
		Arguments:   []*InputValue{booleanIf("Skipped when true.")},
		Locations:   []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
	},
	{
		Name:        "deprecated",
		Description: "Marks an element of a GraphQL schema as no longer supported.",
		Arguments:   []*InputValue{optionalString("reason", "Explains why this element was deprecated.", `"No longer supported"`)},
		Locations:   []string{"FIELD_DEFINITION", "ARGUMENT_DEFINITION", "INPUT_FIELD_DEFINITION", "ENUM_VALUE"},
	},
	{
		Name:        "specifiedBy",
		Description: "Exposes a URL that specifies the behavior of this scalar.",
		Arguments:   []*InputValue{{Name: "url", Description: "The URL that specifies the behavior of this scalar.", Type: NonNullType(NamedType("String"))}},
		Locations:   []string{"SCALAR"},
	},
}

// IsBuiltinScalar reports whether name is one of the five specified scalars.
func IsBuiltinScalar(name string) bool {
	for _, t := range builtinScalars {
		if t.Name == name {
			return true
		}
	}
	return false
}

// IsBuiltinDirective reports whether name is a directive every schema carries.
func IsBuiltinDirective(name string) bool {
	for _, d := range builtinDirectives {
		if d.Name == name {
			return true
		}
	}
	return name == "oneOf"
}

// AddBuiltins registers the specified scalars and directives on s unless s
// already defines a type or directive of the same name.
func AddBuiltins(s *Schema) *Schema {
	for _, t := range builtinScalars {
		if _, ok := s.Types[t.Name]; !ok {
			s.AddType(t)
		}
	}
	for _, d := range builtinDirectives {
		if _, ok := s.Directives[d.Name]; !ok {
			s.AddDirective(d)
		}
	}
	return s
}
