package meta

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func TestCode(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{&SchemaError{Err: errors.New("bad")}, CodeSchema},
		{fmt.Errorf("column: %w", &PathResolutionError{Message: "cannot resolve typename"}), CodePathResolution},
		{&FieldProjectionError{Path: "query.todoes.name"}, CodeFieldProjection},
		{Directivef(nil, "missing @form"), CodeDirectiveConfig},
		{gqlerror.Errorf("Unexpected Name"), CodeGraphQLParseFailed},
		{errors.New("boom"), CodeInternal},
	}
	for _, tc := range cases {
		require.Equal(t, tc.code, Code(tc.err), tc.err.Error())
	}
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "query.todoes.nme Invalid Field", (&FieldProjectionError{Path: "query.todoes.nme"}).Error())
	require.Equal(t, "Query type not found", (&PathResolutionError{Message: "Query type not found"}).Error())
	require.Equal(t, "query.todo: cannot resolve typename", (&PathResolutionError{Path: "query.todo", Message: "cannot resolve typename"}).Error())
}

func TestPosition(t *testing.T) {
	pos := &ast.Position{Line: 3, Column: 5}
	require.Equal(t, pos, Position(Directivef(pos, "x")))
	require.Nil(t, Position(errors.New("x")))
}

func TestKindText(t *testing.T) {
	text, err := EnumColumn.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "TableEnumColumnInfo", string(text))

	var k FormKind
	require.NoError(t, k.UnmarshalText([]byte("FormIDInputFieldMeta")))
	require.Equal(t, IDInput, k)
	require.Error(t, k.UnmarshalText([]byte("Nope")))
}
