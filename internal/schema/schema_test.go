package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBuildFromSDL(t *testing.T) {
	sch, err := BuildFromSDL(`
schema { query: Root mutation: Edit }

type Root {
  todo(id: ID!, first: Int = 10): Todo
}

type Edit {
  rename(id: ID!, name: String): Todo
}

type Todo {
  id: ID!
  name: String! @deprecated(reason: "use title")
}

extend type Todo {
  title: String
}

enum ColorEnum { RED BLUE GREEN }

scalar DateTime @specifiedBy(url: "https://example.com/datetime")

input Where @oneOf { id: ID name: String }

directive @column(label: String, description: String) repeatable on FIELD
`)
	require.NoError(t, err)

	require.Equal(t, "Root", sch.QueryType)
	require.Equal(t, "Edit", sch.MutationType)
	require.Equal(t, "", sch.SubscriptionType)

	todo := sch.Types["Todo"]
	require.NotNil(t, todo)
	var names []string
	for _, f := range todo.Fields {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"id", "name", "title"}, names)
	require.True(t, todo.Field("name").IsDeprecated)
	require.Equal(t, "use title", todo.Field("name").DeprecationReason)

	arg := sch.Types["Root"].Field("todo").Arguments[1]
	require.Equal(t, "10", *arg.DefaultValue)

	require.Equal(t, "https://example.com/datetime", *sch.Types["DateTime"].SpecifiedByURL)
	require.True(t, sch.Types["Where"].OneOf)
	require.True(t, sch.Directives["column"].IsRepeatable)
	require.NotNil(t, sch.Types["String"], "built-in scalars are always present")
	require.NotNil(t, sch.Directives["skip"])
}

func TestBuildFromSDLErrors(t *testing.T) {
	_, err := BuildFromSDL(`type Query { a: String`)
	require.Error(t, err)

	_, err = BuildFromSDL(`type Query { a: String } type Query { b: String }`)
	require.ErrorContains(t, err, "defined more than once")

	_, err = BuildFromSDL(`extend type Missing { a: String }`)
	require.ErrorContains(t, err, "cannot extend undefined type")
}

func TestRender(t *testing.T) {
	sch, err := BuildFromSDL(`
schema { query: Root }

"""
Root of "everything".
"""
type Root {
  b: [Int!]!
  a(flag: Boolean = false): String @deprecated
}

union Result = Root | Other

type Other

enum E { Y X }
`)
	require.NoError(t, err)

	want := `schema {
  query: Root
}

enum E {
  Y
  X
}

type Other

union Result = Root | Other

"""
Root of "everything".
"""
type Root {
  b: [Int!]!
  a(flag: Boolean = false): String @deprecated
}
`
	if diff := cmp.Diff(want, Render(sch)); diff != "" {
		t.Fatalf("Render mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, Render(sch), Render(sch))
}
