// Package introspection decodes GraphQL introspection results into the schema
// model and produces them from it.
package introspection

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Schema is the value of the __schema field of an introspection result.
type Schema struct {
	Description      *string     `json:"description,omitempty"`
	QueryType        *TypeName   `json:"queryType"`
	MutationType     *TypeName   `json:"mutationType"`
	SubscriptionType *TypeName   `json:"subscriptionType"`
	Types            []FullType  `json:"types"`
	Directives       []Directive `json:"directives"`
}

type TypeName struct {
	Name string `json:"name"`
}

type FullType struct {
	Kind           string       `json:"kind"`
	Name           string       `json:"name"`
	Description    *string      `json:"description"`
	SpecifiedByURL *string      `json:"specifiedByURL,omitempty"`
	IsOneOf        bool         `json:"isOneOf,omitempty"`
	Fields         []Field      `json:"fields"`
	InputFields    []InputValue `json:"inputFields"`
	Interfaces     []TypeRef    `json:"interfaces"`
	EnumValues     []EnumValue  `json:"enumValues"`
	PossibleTypes  []TypeRef    `json:"possibleTypes"`
}

type Field struct {
	Name              string       `json:"name"`
	Description       *string      `json:"description"`
	Args              []InputValue `json:"args"`
	Type              *TypeRef     `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated"`
	DeprecationReason *string      `json:"deprecationReason"`
}

type InputValue struct {
	Name              string   `json:"name"`
	Description       *string  `json:"description"`
	Type              *TypeRef `json:"type"`
	DefaultValue      *string  `json:"defaultValue"`
	IsDeprecated      bool     `json:"isDeprecated,omitempty"`
	DeprecationReason *string  `json:"deprecationReason,omitempty"`
}

type EnumValue struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

// TypeRef is a possibly wrapped type reference. Name is set for named kinds
// and OfType for LIST and NON_NULL.
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   *string  `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

type Directive struct {
	Name         string       `json:"name"`
	Description  *string      `json:"description"`
	IsRepeatable bool         `json:"isRepeatable"`
	Locations    []string     `json:"locations"`
	Args         []InputValue `json:"args"`
}

// Decode parses an introspection result. It accepts a full GraphQL response
// ({"data":{"__schema":...}}), the data object ({"__schema":...}) or the
// bare schema object.
func Decode(data []byte) (*Schema, error) {
	var envelope struct {
		Data *struct {
			Schema *Schema `json:"__schema"`
		} `json:"data"`
		Schema *Schema `json:"__schema"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode introspection: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return nil, fmt.Errorf("introspection result carries errors: %s", envelope.Errors[0].Message)
	}
	switch {
	case envelope.Data != nil && envelope.Data.Schema != nil:
		return envelope.Data.Schema, nil
	case envelope.Schema != nil:
		return envelope.Schema, nil
	}
	var bare Schema
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("decode introspection: %w", err)
	}
	if bare.QueryType == nil && len(bare.Types) == 0 {
		return nil, fmt.Errorf("decode introspection: no __schema found")
	}
	return &bare, nil
}

// Encode returns the {"__schema": ...} JSON form of s.
func Encode(s *Schema, indent bool) ([]byte, error) {
	wrapped := struct {
		Schema *Schema `json:"__schema"`
	}{s}
	if indent {
		return json.MarshalIndent(wrapped, "", "  ")
	}
	return json.Marshal(wrapped)
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
