package project

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlview/internal/meta"
)

var todoColumns = []meta.ColumnInfo{
	{Kind: meta.StringColumn, Key: "name", Label: "Name", Path: "query.todos.name"},
	{Kind: meta.BooleanColumn, Key: "state", Label: "State", Path: "query.todos.state"},
	{Kind: meta.EnumColumn, Key: "color", Label: "Color", Path: "query.todos.color", EnumValues: []string{"RED", "BLUE", "GREEN"}},
}

func TestRows(t *testing.T) {
	rows := []any{
		map[string]any{"name": "todo_name_00", "state": false, "color": "RED"},
		map[string]any{"name": "todo_name_10", "state": true, "color": "BLUE"},
	}
	got, err := Rows(rows, todoColumns)
	require.NoError(t, err)

	want := [][]meta.Cell{
		{
			{Path: "query.todos.name", Value: "todo_name_00"},
			{Path: "query.todos.state", Value: "false"},
			{Path: "query.todos.color", Value: "RED"},
		},
		{
			{Path: "query.todos.name", Value: "todo_name_10"},
			{Path: "query.todos.state", Value: "true"},
			{Path: "query.todos.color", Value: "BLUE"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsBooleanTruthiness(t *testing.T) {
	cols := []meta.ColumnInfo{{Kind: meta.BooleanColumn, Key: "state", Path: "query.todos.state"}}
	for _, tc := range []struct {
		value any
		want  string
	}{
		{true, "true"},
		{false, "false"},
		{nil, "false"},
		{float64(0), "false"},
		{float64(2), "true"},
		{"", "false"},
		{"yes", "true"},
		{json.Number("0"), "false"},
		{map[string]any{}, "true"},
	} {
		got, err := Rows([]any{map[string]any{"state": tc.value}}, cols)
		require.NoError(t, err)
		require.Equal(t, tc.want, got[0][0].Value, "%#v", tc.value)
	}
}

func TestRowsNestedPaths(t *testing.T) {
	cols := []meta.ColumnInfo{
		{Kind: meta.StringColumn, Key: "name", Path: "query.todoesConnection.node.list.name"},
		{Kind: meta.StringColumn, Key: "id", Path: "query.todoesConnection.tags.1"},
		{Kind: meta.IntColumn, Key: "priority", Path: "query.todoesConnection.node.priority"},
	}
	row := map[string]any{
		"node": map[string]any{"list": map[string]any{"name": "Home"}, "priority": nil},
		"tags": []any{"a", "b"},
	}
	got, err := Rows([]any{row}, cols)
	require.NoError(t, err)
	require.Equal(t, "Home", got[0][0].Value)
	require.Equal(t, "b", got[0][1].Value)
	require.Nil(t, got[0][2].Value)
}

func TestRowsDrift(t *testing.T) {
	cols := []meta.ColumnInfo{
		{Kind: meta.StringColumn, Key: "name", Path: "query.todoLists.todos.name"},
		{Kind: meta.BooleanColumn, Key: "state", Path: "query.todoLists.todos.state"},
	}
	rows := []any{map[string]any{"id": "1", "name": "list", "todoes": []any{}}}
	_, err := Rows(rows, cols)
	var projErr *meta.FieldProjectionError
	require.True(t, errors.As(err, &projErr))
	require.EqualError(t, err, "query.todoLists.todos.name Invalid Field")
}

func TestRowsEmpty(t *testing.T) {
	got, err := Rows(nil, []meta.ColumnInfo{{Path: "query.x.missing"}})
	require.NoError(t, err)
	require.Empty(t, got)
	require.NotNil(t, got)
}

func TestRowPath(t *testing.T) {
	require.Equal(t, "name", RowPath("query.todoes.name"))
	require.Equal(t, "edges.node.name", RowPath("query.data.edges.node.name"))
	require.Equal(t, "", RowPath("query.todoes"))
}

func TestTotal(t *testing.T) {
	data := map[string]any{
		"todoesConnection": map[string]any{"aggregate": map[string]any{"count": float64(42)}},
		"n":                json.Number("7"),
		"s":                "x",
	}
	n, err := Total(data, "query.todoesConnection.aggregate.count")
	require.NoError(t, err)
	require.Equal(t, 42, n)

	n, err = Total(data, "query.n")
	require.NoError(t, err)
	require.Equal(t, 7, n)

	n, err = Total(data, "")
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = Total(data, "query.todoesConnection.aggregate.sum")
	var projErr *meta.FieldProjectionError
	require.True(t, errors.As(err, &projErr))

	_, err = Total(data, "query.s")
	require.ErrorContains(t, err, "not a number")

	for name, v := range map[string]any{
		"nan":       math.NaN(),
		"infinity":  math.Inf(1),
		"huge":      1e300,
		"huge text": json.Number("1e300"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Total(map[string]any{"count": v}, "query.count")
			require.ErrorContains(t, err, "out of range")
		})
	}
}

func TestLastPage(t *testing.T) {
	require.Equal(t, 1, LastPage(0, 10))
	require.Equal(t, 1, LastPage(10, 10))
	require.Equal(t, 2, LastPage(11, 10))
	require.Equal(t, 1, LastPage(50, 0))
}
