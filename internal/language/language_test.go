package language

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringArguments(t *testing.T) {
	doc, err := ParseQuery(`{ todoes { name @column(label: "Name", description: """Block""", width: 3) } }`)
	require.NoError(t, err)
	f := doc.Operations[0].SelectionSet[0].(*Field).SelectionSet[0].(*Field)

	require.Equal(t, map[string]string{"label": "Name", "description": "Block"}, StringArguments(f.Directives.ForName("column")))
	require.Empty(t, StringArguments(nil))
}

func TestResponseKey(t *testing.T) {
	doc, err := ParseQuery(`{ data: todoes { name } todoLists { id } }`)
	require.NoError(t, err)
	set := doc.Operations[0].SelectionSet
	require.Equal(t, "data", ResponseKey(set[0].(*Field)))
	require.Equal(t, "todoLists", ResponseKey(set[1].(*Field)))
	require.Equal(t, "name", ResponseKey(&Field{Name: "name"}))
}

func TestSelectOperation(t *testing.T) {
	doc, err := ParseQuery(`query A { a } query B { b }`)
	require.NoError(t, err)

	all, ok := SelectOperation(doc, "")
	require.True(t, ok)
	require.Len(t, all.Operations, 2)

	b, ok := SelectOperation(doc, "B")
	require.True(t, ok)
	require.Len(t, b.Operations, 1)
	require.Equal(t, "B", b.Operations[0].Name)
	require.Len(t, doc.Operations, 2)

	_, ok = SelectOperation(doc, "C")
	require.False(t, ok)
}

func TestPrintQueryReparses(t *testing.T) {
	doc, err := ParseQuery(`query Todos($first: Int) { todoes(first: $first) @table { name @column(label: "Name") } }`)
	require.NoError(t, err)

	printed := PrintQuery(doc)
	again, err := ParseQuery(printed)
	require.NoError(t, err)
	require.Equal(t, printed, PrintQuery(again))
	require.Contains(t, printed, `@column(label: "Name")`)
}

func TestParseSchemaError(t *testing.T) {
	_, err := ParseSchema("broken.graphql", `type {`)
	var gqlErr *Error
	require.ErrorAs(t, err, &gqlErr)
	require.NotEmpty(t, gqlErr.Locations)
}
