package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/hanpama/gqlview/internal/extract"
	"github.com/hanpama/gqlview/internal/language"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/ui"
	"github.com/hanpama/gqlview/internal/view"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// queryFlags are shared by commands that read an annotated query.
type queryFlags struct {
	operation string
	data      string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&q.operation, "operation", "o", "", "only use the named operation")
	cmd.Flags().StringVarP(&q.data, "data", "d", "", "query result JSON to apply, a response or its data object")
}

func (q *queryFlags) document(cmd *cobra.Command, path string) (*language.QueryDocument, error) {
	src, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	doc, err := language.ParseQuery(string(src))
	if err != nil {
		return nil, err
	}
	selected, ok := language.SelectOperation(doc, q.operation)
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", q.operation)
	}
	return selected, nil
}

// result reads the --data file, or returns nil when none was given.
func (q *queryFlags) result(cmd *cobra.Command) (map[string]any, error) {
	if q.data == "" {
		return nil, nil
	}
	raw, err := readInput(cmd, q.data)
	if err != nil {
		return nil, err
	}
	return decodeResult(raw)
}

// decodeResult accepts {"data": {...}} or the data object itself.
func decodeResult(raw []byte) (map[string]any, error) {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		return body, nil
	}
	for k := range body {
		if k != "data" && k != "errors" && k != "extensions" {
			return body, nil
		}
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type tableOutput struct {
	Columns   []meta.ColumnInfo `json:"columns"`
	TotalPath string            `json:"totalPath"`
	DataKey   string            `json:"dataKey"`
	Rows      [][]meta.Cell     `json:"rows,omitempty"`
	Total     *int              `json:"total,omitempty"`
	LastPage  int               `json:"lastPage,omitempty"`
}

func newTableCommand(a *app) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "table QUERY_FILE",
		Short: "Print the table columns of an annotated query",
		Long: `Print the columns, total path and data key of a query annotated with
@table, @column, @pagination and @total. With --data the result rows are
projected through the columns. Use - to read the query from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := q.document(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := a.loadTree()
			if err != nil {
				return err
			}
			tbl, err := view.NewTable(ctx, doc, t, view.WithPerPage(a.cfg.Table.PerPage))
			if err != nil {
				return err
			}
			out := tableOutput{Columns: tbl.Meta().Columns, TotalPath: tbl.Meta().TotalPath, DataKey: tbl.DataKey()}

			data, err := q.result(cmd)
			if err != nil {
				return err
			}
			if data != nil {
				state, err := tbl.Apply(ctx, view.Snapshot{Data: data})
				if err != nil {
					return err
				}
				out.Rows = state.Rows
				out.Total = &state.Total
				out.LastPage = state.LastPage
			}

			w := cmd.OutOrStdout()
			if a.asJSON {
				return writeJSON(w, out)
			}
			if data == nil {
				ui.Columns(w, tbl.Meta(), a.noColor)
				return nil
			}
			ui.Rows(w, out.Columns, out.Rows, a.noColor)
			if out.TotalPath != "" {
				fmt.Fprintf(w, "\ntotal %d", *out.Total)
				if out.LastPage > 0 {
					fmt.Fprintf(w, ", %d pages", out.LastPage)
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	q.register(cmd)
	cmd.Flags().Int("per-page", 0, "page size used to compute the page count")
	a.bind(cmd, "table.per_page", "per-page")
	return cmd
}

type formOutput struct {
	Label   string          `json:"label"`
	DataKey string          `json:"dataKey"`
	Fields  []meta.FormMeta `json:"fields"`
	State   map[string]any  `json:"state,omitempty"`
}

func newFormCommand(a *app) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "form QUERY_FILE",
		Short: "Print the form fields of an annotated query",
		Long: `Print the fields of a query annotated with @form and @input. With --data
the record selected by the @form field is loaded as the form state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := q.document(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := a.loadTree()
			if err != nil {
				return err
			}
			f, err := view.NewForm(ctx, doc, t, nil)
			if err != nil {
				return err
			}
			out := formOutput{Label: f.Label(), DataKey: f.DataKey(), Fields: f.Fields()}

			data, err := q.result(cmd)
			if err != nil {
				return err
			}
			if data != nil {
				if err := f.Apply(ctx, view.Snapshot{Data: data}); err != nil {
					return err
				}
				out.State = f.State()
			}

			w := cmd.OutOrStdout()
			if a.asJSON {
				return writeJSON(w, out)
			}
			ui.Fields(w, out.Label, out.Fields, a.noColor)
			if out.State != nil {
				fmt.Fprintln(w)
				kv := ui.NewKeyValue(w, a.noColor)
				for _, m := range out.Fields {
					key := f.StateKey(m)
					value := fmt.Sprint(out.State[key])
					if m.Kind == meta.EnumInput {
						value = f.Selected(key)
					}
					kv.AddRow(m.Label, value)
				}
				kv.Render()
			}
			return nil
		},
	}
	q.register(cmd)
	return cmd
}

func newRowsCommand(a *app) *cobra.Command {
	var columnsFile string
	cmd := &cobra.Command{
		Use:   "rows ROWS_FILE",
		Short: "Project result rows through column metadata",
		Long: `Project a JSON array of result rows through the columns printed by
"gqlview table --json". Use - to read the rows from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, columnsFile)
			if err != nil {
				return err
			}
			var cols struct {
				Columns []meta.ColumnInfo `json:"columns"`
			}
			if err := json.Unmarshal(raw, &cols); err != nil {
				return fmt.Errorf("decode columns: %w", err)
			}

			raw, err = readInput(cmd, args[0])
			if err != nil {
				return err
			}
			var rows []any
			if err := json.Unmarshal(raw, &rows); err != nil {
				return fmt.Errorf("decode rows: %w", err)
			}

			cells, err := view.ProjectRows(cmd.Context(), rows, cols.Columns)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), cells)
			}
			ui.Rows(cmd.OutOrStdout(), cols.Columns, cells, a.noColor)
			return nil
		},
	}
	cmd.Flags().StringVarP(&columnsFile, "columns", "c", "", "table metadata JSON (required)")
	_ = cmd.MarkFlagRequired("columns")
	return cmd
}

func newStripCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strip QUERY_FILE",
		Short: "Print the query without view directives",
		Long: `Print the query with @table, @column, @form, @input and the other view
directives removed, ready to be sent to a GraphQL server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			doc, err := language.ParseQuery(string(src))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), extract.StripDirectives(doc))
			return nil
		},
	}
}
