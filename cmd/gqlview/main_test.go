package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	cmd := newRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"table", "form", "rows", "strip", "introspect", "types", "serve", "version"} {
		require.Contains(t, names, want)
	}
}

func TestTable(t *testing.T) {
	out, err := run(t, "table", "--schema", "testdata/todo.json", "testdata/todoes.graphql")
	require.NoError(t, err)
	require.Contains(t, out, "TableDateColumnInfo")
	require.Contains(t, out, "RED,BLUE,GREEN")
	require.Contains(t, out, "total: query.todoesConnection.aggregate.count")
}

func TestTableWithData(t *testing.T) {
	out, err := run(t, "table", "--schema", "testdata/todo.graphql", "--per-page", "10",
		"--data", "testdata/todoes.json", "testdata/todoes.graphql")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.True(t, strings.HasPrefix(lines[0], "Name"), out)
	require.Contains(t, out, "todo_name_10  true")
	require.Contains(t, out, "total 21, 3 pages")
}

func TestTableJSON(t *testing.T) {
	out, err := run(t, "--json", "table", "--schema", "testdata/todo.json", "testdata/todoes.graphql")
	require.NoError(t, err)

	var got tableOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Columns, 4)
	require.Equal(t, "todoes", got.DataKey)
	require.Equal(t, "Created", got.Columns[3].Label)
	require.Nil(t, got.Rows)
}

func TestTableErrors(t *testing.T) {
	_, err := run(t, "table", "testdata/todoes.graphql")
	require.ErrorContains(t, err, "no schema given")

	_, err = run(t, "table", "--schema", "testdata/todo.json", "--operation", "Nope", "testdata/todoes.graphql")
	require.ErrorContains(t, err, `unknown operation "Nope"`)

	_, err = run(t, "table", "--schema", "testdata/todo.json", "testdata/missing.graphql")
	require.Error(t, err)
}

func TestTableFromStdin(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(`{ todoLists @table { name @column(label: "List") } }`))
	cmd.SetArgs([]string{"--no-color", "table", "--schema", "testdata/todo.json", "-"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "query.todoLists.name")
}

func TestForm(t *testing.T) {
	out, err := run(t, "form", "--schema", "testdata/todo.json", "--data", "testdata/todo_form.json", "testdata/todo_form.graphql")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Todo\n"), out)
	require.Contains(t, out, "FormTextInputFieldMeta")
	require.Contains(t, out, "Colour: NULL")
	require.Contains(t, out, "ID:     cjm1")
}

func TestRows(t *testing.T) {
	columns, err := run(t, "--json", "table", "--schema", "testdata/todo.json", "testdata/todoes.graphql")
	require.NoError(t, err)

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(columns))
	cmd.SetArgs([]string{"--no-color", "--json", "rows", "--columns", "-", "testdata/rows.json"})
	require.NoError(t, cmd.Execute())

	var cells [][]map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &cells))
	require.Len(t, cells, 1)
	require.Equal(t, "true", cells[0][1]["value"])

	_, err = run(t, "rows", "testdata/rows.json")
	require.Error(t, err)
}

func TestStrip(t *testing.T) {
	out, err := run(t, "strip", "testdata/todoes.graphql")
	require.NoError(t, err)
	require.NotContains(t, out, "@")
	require.Contains(t, out, "todoesConnection")
}

func TestIntrospect(t *testing.T) {
	out, err := run(t, "introspect", "--schema", "testdata/todo.graphql")
	require.NoError(t, err)
	require.Contains(t, out, `"__schema"`)

	sdl, err := run(t, "introspect", "--format", "sdl", "--schema", "testdata/todo.json")
	require.NoError(t, err)
	require.Contains(t, sdl, "type Todo implements Node")

	q, err := run(t, "introspect", "--format", "query")
	require.NoError(t, err)
	require.Contains(t, q, "__schema")

	_, err = run(t, "introspect", "--format", "yaml", "--schema", "testdata/todo.json")
	require.Error(t, err)
}

func TestTypes(t *testing.T) {
	out, err := run(t, "--json", "types", "testdata/prisma.graphql")
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	require.Equal(t, []string{"Todo", "TodoList"}, names)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "gqlview: dev")
}

func TestDecodeResult(t *testing.T) {
	data, err := decodeResult([]byte(`{"data":{"todoes":[]},"errors":[]}`))
	require.NoError(t, err)
	require.Contains(t, data, "todoes")

	data, err = decodeResult([]byte(`{"data":{"a":1},"todoes":[]}`))
	require.NoError(t, err)
	require.Contains(t, data, "todoes")

	_, err = decodeResult([]byte(`[`))
	require.Error(t, err)
}
