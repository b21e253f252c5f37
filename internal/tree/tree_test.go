package tree

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/introspection"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/schema"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestMaterializePrintsCanonicalSDL(t *testing.T) {
	in, err := introspection.Decode(readFixture(t, "todo.json"))
	require.NoError(t, err)
	sch, err := introspection.BuildSchema(in)
	require.NoError(t, err)

	want := string(readFixture(t, "todo.graphql"))
	if diff := cmp.Diff(want, schema.Render(sch)); diff != "" {
		t.Fatalf("rendered SDL mismatch (-want +got):\n%s", diff)
	}
}

func TestMaterializeJSON(t *testing.T) {
	tr, err := MaterializeJSON(readFixture(t, "todo.json"))
	require.NoError(t, err)

	require.Equal(t, "Query", tr.RootTypeName(ast.Query))
	require.Equal(t, "Query", tr.RootTypeName(""))
	require.Equal(t, "Mutation", tr.RootTypeName(ast.Mutation))
	require.Equal(t, "", tr.RootTypeName(ast.Subscription))

	require.NotNil(t, tr.Object("Todo"))
	require.NotNil(t, tr.Object("Node"))
	require.Nil(t, tr.Object("ColorEnum"))
	require.NotNil(t, tr.Scalar("DateTime"))
	require.Nil(t, tr.Scalar("String"))
	require.True(t, tr.IsBuiltinScalar("String"))
	require.Equal(t, []string{"RED", "BLUE", "GREEN"}, tr.EnumValues("ColorEnum"))
	require.Nil(t, tr.EnumValues("Todo"))

	name := tr.Object("Todo").Fields.ForName("name")
	require.NotNil(t, name)
	require.True(t, name.Type.NonNull)
	require.Equal(t, "Short title of the todo.", name.Description)
}

func TestMaterializeSDLCustomRoots(t *testing.T) {
	tr, err := MaterializeSDL(`
schema { query: Root }
type Root { hello: String }
`)
	require.NoError(t, err)
	require.Equal(t, "Root", tr.RootTypeName(ast.Query))
}

func TestMaterializeSchemaErrors(t *testing.T) {
	for name, input := range map[string]string{
		"not json":     `{`,
		"no query":     `{"__schema":{"types":[{"kind":"OBJECT","name":"A","fields":[]}]}}`,
		"dangling ref": `{"__schema":{"queryType":{"name":"Query"},"types":[{"kind":"OBJECT","name":"Query","fields":[{"name":"a","args":[],"type":{"kind":"OBJECT","name":"Nope"}}]}]}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := MaterializeJSON([]byte(input))
			var schemaErr *meta.SchemaError
			require.True(t, errors.As(err, &schemaErr), "got %v", err)
			require.Equal(t, meta.CodeSchema, meta.Code(err))
		})
	}
}

func TestMaterializeIsFreshPerCall(t *testing.T) {
	data := readFixture(t, "todo.json")
	a, err := MaterializeJSON(data)
	require.NoError(t, err)
	b, err := MaterializeJSON(data)
	require.NoError(t, err)
	require.NotSame(t, a.Document, b.Document)
}

func TestMaterializeDocument(t *testing.T) {
	fromJSON, err := MaterializeDocument(append([]byte("\n  "), readFixture(t, "todo.json")...))
	require.NoError(t, err)
	require.NotNil(t, fromJSON.Object("Todo"))

	fromSDL, err := MaterializeDocument(readFixture(t, "todo.graphql"))
	require.NoError(t, err)
	require.NotNil(t, fromSDL.Object("Todo"))
	require.Equal(t, fromJSON.EnumValues("ColorEnum"), fromSDL.EnumValues("ColorEnum"))

	_, err = MaterializeDocument([]byte(`type Query {`))
	var se *meta.SchemaError
	require.True(t, errors.As(err, &se), "got %v", err)
}
