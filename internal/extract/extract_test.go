package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlview/internal/language"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/tree"
)

const todoSDL = `
scalar DateTime
scalar JSON
enum ColorEnum { RED BLUE GREEN }
union Anything = Todo | TodoList

type Todo {
  id: ID!
  name: String!
  state: Boolean
  color: ColorEnum
  priority: Int
  weight: Float
  createdAt: DateTime!
  extra: JSON
  list: TodoList
  any: Anything
}

type TodoList {
  id: ID!
  name: String!
  todoes: [Todo!]
}

type AggregateTodo { count: Int! }
type TodoConnection { aggregate: AggregateTodo! edges: [TodoEdge]! }
type TodoEdge { node: Todo! cursor: String! }
input TodoWhereUniqueInput { id: ID }

type Query {
  todoes(first: Int, skip: Int): [Todo]!
  todoLists: [TodoList]!
  todo(where: TodoWhereUniqueInput!): Todo
  todoesConnection: TodoConnection!
}

type Mutation {
  updateTodo(where: TodoWhereUniqueInput!, name: String): Todo
}
`

func todoTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.MaterializeSDL(todoSDL)
	require.NoError(t, err)
	return tr
}

func parse(t *testing.T, query string) *language.QueryDocument {
	t.Helper()
	doc, err := language.ParseQuery(query)
	require.NoError(t, err)
	return doc
}

func TestActionFor(t *testing.T) {
	for name, want := range map[string]Action{
		"table":      Descend,
		"pagination": Descend,
		"form":       Descend,
		"column":     RecordColumn,
		"input":      RecordInput,
		"total":      RecordTotal,
		"include":    Prune,
		"client":     Prune,
	} {
		require.Equal(t, want, ActionFor(name), name)
	}
}

func TestTableColumns(t *testing.T) {
	doc := parse(t, `{
  todoes {
    name @column(label: "Name")
    state @column(label: "State")
    color @column(label: "Color")
  }
}`)
	got, err := Table(doc, todoTree(t))
	require.NoError(t, err)

	want := &meta.TableMeta{Columns: []meta.ColumnInfo{
		{Kind: meta.StringColumn, Key: "name", Label: "Name", Path: "query.todoes.name"},
		{Kind: meta.BooleanColumn, Key: "state", Label: "State", Path: "query.todoes.state"},
		{Kind: meta.EnumColumn, Key: "color", Label: "Color", Path: "query.todoes.color", EnumValues: []string{"RED", "BLUE", "GREEN"}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Table mismatch (-want +got):\n%s", diff)
	}
}

func TestTableKindsAndDefaults(t *testing.T) {
	doc := parse(t, `query {
  data: todoes @table(label: "Todos") {
    id @column
    priority @column(description: "higher first")
    weight @column
    createdAt @column(label: "Created")
    extra @column
    title: name @column(label: 1)
    list { name @column }
  }
}`)
	got, err := Table(doc, todoTree(t))
	require.NoError(t, err)

	want := []meta.ColumnInfo{
		{Kind: meta.StringColumn, Key: "id", Label: "id", Path: "query.data.id"},
		{Kind: meta.IntColumn, Key: "priority", Label: "priority", Description: "higher first", Path: "query.data.priority"},
		{Kind: meta.IntColumn, Key: "weight", Label: "weight", Path: "query.data.weight"},
		{Kind: meta.DateColumn, Key: "createdAt", Label: "Created", Path: "query.data.createdAt"},
		{Kind: meta.StringColumn, Key: "extra", Label: "extra", Path: "query.data.extra"},
		{Kind: meta.StringColumn, Key: "name", Label: "name", Path: "query.data.title"},
		{Kind: meta.StringColumn, Key: "name", Label: "name", Path: "query.data.list.name"},
	}
	if diff := cmp.Diff(want, got.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	require.Empty(t, got.TotalPath)
}

func TestTableTotal(t *testing.T) {
	doc := parse(t, `query {
  todoesConnection @pagination {
    aggregate { count @total }
    edges { node { name @column(label: "Name") } }
  }
}`)
	got, err := Table(doc, todoTree(t))
	require.NoError(t, err)
	require.Equal(t, "query.todoesConnection.aggregate.count", got.TotalPath)
	require.Equal(t, []meta.ColumnInfo{
		{Kind: meta.StringColumn, Key: "name", Label: "Name", Path: "query.todoesConnection.edges.node.name"},
	}, got.Columns)
}

func TestTableUnknownDirectivePrunes(t *testing.T) {
	doc := parse(t, `{
  todoes {
    name @column
    list @client { name @column }
    both: list @client @table { id @column }
  }
}`)
	got, err := Table(doc, todoTree(t))
	require.NoError(t, err)
	var paths []string
	for _, c := range got.Columns {
		paths = append(paths, c.Path)
	}
	require.Equal(t, []string{"query.todoes.name", "query.todoes.both.id"}, paths)
}

func TestTableDuplicatesKept(t *testing.T) {
	doc := parse(t, `{ todoes { name @column name @column(label: "Again") } }`)
	got, err := Table(doc, todoTree(t))
	require.NoError(t, err)
	require.Len(t, got.Columns, 2)
	require.Equal(t, "Again", got.Columns[1].Label)
}

func TestTableSkipsMutations(t *testing.T) {
	doc := parse(t, `mutation { updateTodo(where: {id: "1"}) { name @column } }`)
	got, err := Table(doc, todoTree(t))
	require.NoError(t, err)
	require.Empty(t, got.Columns)
}

func TestTableFragmentEquivalence(t *testing.T) {
	tr := todoTree(t)
	inlined, err := Table(parse(t, `{
  todoes {
    id
    name @column(label: "Name")
    list { name @column(label: "List") }
    color @column
  }
}`), tr)
	require.NoError(t, err)

	spread, err := Table(parse(t, `{
  todoes {
    id
    ...TodoColumns
    color @column
  }
}

fragment TodoColumns on Todo {
  name @column(label: "Name")
  list { ...ListColumns }
}

fragment ListColumns on TodoList {
  name @column(label: "List")
}`), tr)
	require.NoError(t, err)

	inline, err := Table(parse(t, `{
  todoes {
    id
    ... on Todo {
      name @column(label: "Name")
      list { name @column(label: "List") }
    }
    color @column
  }
}`), tr)
	require.NoError(t, err)

	if diff := cmp.Diff(inlined, spread); diff != "" {
		t.Fatalf("fragment spread mismatch (-inlined +spread):\n%s", diff)
	}
	if diff := cmp.Diff(inlined, inline); diff != "" {
		t.Fatalf("inline fragment mismatch (-inlined +inline):\n%s", diff)
	}
}

func TestTableIdempotent(t *testing.T) {
	doc := parse(t, `{ todoes { name @column color @column ...F } } fragment F on Todo { state @column }`)
	first, err := Table(doc, todoTree(t))
	require.NoError(t, err)
	second, err := Table(doc, todoTree(t))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestTableErrors(t *testing.T) {
	cases := map[string]struct {
		query string
		check func(error) bool
	}{
		"unknown top-level field": {
			query: `{ stodoLists { id @column(label: "id") name @column(label: "Name") } }`,
			check: isPathError,
		},
		"unknown nested field": {
			query: `{ todoLists { ids @column(label: "id") name @column(label: "Name") } }`,
			check: isPathError,
		},
		"object typed column": {
			query: `{ todoes { list @column } }`,
			check: isPathError,
		},
		"union typed column": {
			query: `{ todoes { any @column } }`,
			check: isPathError,
		},
		"unknown fragment": {
			query: `{ todoes { ...Missing } }`,
			check: isDirectiveError,
		},
		"cyclic fragment": {
			query: `{ todoes { list { ...A } } } fragment A on TodoList { todoes { list { ...A } } }`,
			check: isDirectiveError,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Table(parse(t, tc.query), todoTree(t))
			require.Error(t, err)
			require.True(t, tc.check(err), "unexpected error type %T: %v", err, err)
		})
	}
}

func TestForm(t *testing.T) {
	doc := parse(t, `query($where: TodoWhereUniqueInput!) {
  todo(where: $where) @form {
    id @input(label: "ID")
    name @input
    color @input(label: "Colour")
    state @input
    createdAt @input
  }
  t: todo(where: $where) {
    id
    name
  }
}`)
	got, err := Form(doc, todoTree(t))
	require.NoError(t, err)

	want := []meta.FormMeta{
		{Kind: meta.TextInput, Key: "id", Label: "ID", Path: "query.todo.id", TypeName: "ID", NonNull: true, Editable: false},
		{Kind: meta.TextInput, Key: "name", Label: "name", Path: "query.todo.name", TypeName: "String", NonNull: true, Editable: true},
		{Kind: meta.EnumInput, Key: "color", Label: "Colour", Path: "query.todo.color", TypeName: "ColorEnum", Editable: true, Options: []string{"RED", "BLUE", "GREEN"}},
		{Kind: meta.BooleanInput, Key: "state", Label: "state", Path: "query.todo.state", TypeName: "Boolean", Editable: true},
		{Kind: meta.DateInput, Key: "createdAt", Label: "createdAt", Path: "query.todo.createdAt", TypeName: "DateTime", NonNull: true, Editable: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Form mismatch (-want +got):\n%s", diff)
	}
}

func TestFormMutationAndFragments(t *testing.T) {
	doc := parse(t, `mutation {
  updateTodo(where: {id: "1"}) @form(label: "Edit") { ...Fields }
}
fragment Fields on Todo { id @input name @input priority @input }`)
	got, err := Form(doc, todoTree(t))
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "mutation.updateTodo.name", got[1].Path)
	require.Equal(t, meta.TextInput, got[2].Kind)
	require.False(t, got[0].Editable)
}

func TestDataKey(t *testing.T) {
	cases := map[string]string{
		`query { data: todoLists @table { id @column name @column todoes { id } } }`: "data",
		`query { todoLists { id } items: todoes { name @column } }`:                  "items",
		`query { todoes { name } }`:                                                  "todoes",
		`query { ...Root } fragment Root on Query { rows: todoes @table { id } }`:    "rows",
	}
	for query, want := range cases {
		got, err := DataKey(parse(t, query))
		require.NoError(t, err, query)
		require.Equal(t, want, got, query)
	}

	_, err := DataKey(parse(t, `mutation { updateTodo(where: {id: "1"}) { id } }`))
	require.True(t, isDirectiveError(err))
}

func TestFormDataKeyAndLabel(t *testing.T) {
	doc := parse(t, `query { t: todo(where: {id: "1"}) { id } item: todo(where: {id: "2"}) @form(label: "Todo") { name @input } }`)
	key, err := FormDataKey(doc)
	require.NoError(t, err)
	require.Equal(t, "item", key)
	require.Equal(t, "Todo", FormLabel(doc))

	plain := parse(t, `query { todo(where: {id: "1"}) { name @input } }`)
	_, err = FormDataKey(plain)
	require.True(t, isDirectiveError(err))
	require.Equal(t, "", FormLabel(plain))
}

func TestStripDirectives(t *testing.T) {
	doc := parse(t, `query Todos($show: Boolean!) {
  data: todoes @table(label: "x") {
    name @column(label: "Name")
    state @include(if: $show) @column
    ...F @pagination
  }
}
fragment F on Todo { color @input @label(text: "c") }`)
	out := StripDirectives(doc)

	for _, gone := range []string{"@table", "@column", "@pagination", "@input", "@label"} {
		require.NotContains(t, out, gone)
	}
	require.Contains(t, out, "@include(if: $show)")
	require.Contains(t, out, "data: todoes")
	require.True(t, strings.Contains(out, "fragment F on Todo"))

	reparsed := parse(t, out)
	require.Len(t, reparsed.Operations, 1)
	require.NotNil(t, doc.Operations[0].SelectionSet[0].(*language.Field).Directives.ForName("table"), "input document is untouched")
}

func TestIsViewDirective(t *testing.T) {
	for _, name := range []string{"table", "pagination", "form", "column", "input", "total", "label", "datasources"} {
		require.True(t, isViewDirective(name), name)
	}
	for _, name := range []string{"include", "skip", "deprecated", "cached", ""} {
		require.False(t, isViewDirective(name), name)
	}
}

func isPathError(err error) bool {
	var target *meta.PathResolutionError
	return errors.As(err, &target)
}

func isDirectiveError(err error) bool {
	var target *meta.DirectiveConfigurationError
	return errors.As(err, &target)
}
