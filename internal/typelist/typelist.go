// Package typelist lists the model types of a Prisma generated SDL.
package typelist

import (
	"strings"

	"github.com/hanpama/gqlview/internal/language"
)

var generatedSuffixes = []string{
	"BatchPayload",
	"Mutation",
	"Query",
	"Node",
	"PageInfo",
	"Connection",
	"CreateInput",
	"CreateManyInput",
	"Edge",
	"OrderByInput",
	"PreviousValues",
	"SubscriptionPayload",
}

var generatedPrefixes = []string{
	"Aggregate",
	"Subscription",
}

// UserDefined returns the object types of sdl that are not generated by
// Prisma, in document order.
func UserDefined(sdl string) ([]string, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, def := range doc.Definitions {
		if def.Kind != language.Object || Generated(def.Name) {
			continue
		}
		out = append(out, def.Name)
	}
	return out, nil
}

// Generated reports whether name follows one of Prisma's generated type
// naming patterns.
func Generated(name string) bool {
	for _, s := range generatedSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	for _, p := range generatedPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
