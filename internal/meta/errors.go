package meta

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// SchemaError reports an introspection result that cannot be materialized.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string { return "schema: " + e.Err.Error() }
func (e *SchemaError) Unwrap() error { return e.Err }

// PathResolutionError reports a selection path that does not match the
// schema.
type PathResolutionError struct {
	Path     string
	Message  string
	Position *ast.Position
}

func (e *PathResolutionError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// FieldProjectionError reports a column path absent from a data row.
type FieldProjectionError struct {
	Path string
}

func (e *FieldProjectionError) Error() string { return e.Path + " Invalid Field" }

// DirectiveConfigurationError reports a query whose view directives cannot
// be honoured, or a form edit the field metadata does not allow.
type DirectiveConfigurationError struct {
	Message  string
	Position *ast.Position
}

func (e *DirectiveConfigurationError) Error() string { return e.Message }

// Directivef builds a DirectiveConfigurationError.
func Directivef(pos *ast.Position, format string, args ...any) error {
	return &DirectiveConfigurationError{Message: fmt.Sprintf(format, args...), Position: pos}
}

const (
	CodeSchema             = "SCHEMA_ERROR"
	CodePathResolution     = "PATH_RESOLUTION_ERROR"
	CodeFieldProjection    = "FIELD_PROJECTION_ERROR"
	CodeDirectiveConfig    = "DIRECTIVE_CONFIGURATION_ERROR"
	CodeGraphQLParseFailed = "GRAPHQL_PARSE_FAILED"
	CodeInternal           = "INTERNAL"
)

// Code returns the stable machine code for err's class.
func Code(err error) string {
	var (
		schemaErr *SchemaError
		pathErr   *PathResolutionError
		projErr   *FieldProjectionError
		dirErr    *DirectiveConfigurationError
		gqlErr    *gqlerror.Error
		gqlList   gqlerror.List
	)
	switch {
	case errors.As(err, &schemaErr):
		return CodeSchema
	case errors.As(err, &pathErr):
		return CodePathResolution
	case errors.As(err, &projErr):
		return CodeFieldProjection
	case errors.As(err, &dirErr):
		return CodeDirectiveConfig
	case errors.As(err, &gqlErr), errors.As(err, &gqlList):
		return CodeGraphQLParseFailed
	}
	return CodeInternal
}

// Position returns the source position attached to err, if any.
func Position(err error) *ast.Position {
	var (
		pathErr *PathResolutionError
		dirErr  *DirectiveConfigurationError
		gqlErr  *gqlerror.Error
	)
	switch {
	case errors.As(err, &pathErr):
		return pathErr.Position
	case errors.As(err, &dirErr):
		return dirErr.Position
	case errors.As(err, &gqlErr):
		if len(gqlErr.Locations) > 0 {
			return &ast.Position{Line: gqlErr.Locations[0].Line, Column: gqlErr.Locations[0].Column}
		}
	}
	return nil
}
