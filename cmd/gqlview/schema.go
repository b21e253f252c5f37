package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanpama/gqlview/internal/introspection"
	"github.com/hanpama/gqlview/internal/schema"
	"github.com/hanpama/gqlview/internal/typelist"
	"github.com/hanpama/gqlview/internal/ui"
)

func newIntrospectCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "introspect",
		Short: "Convert the schema between SDL and introspection JSON",
		Long: `Print the --schema file as introspection JSON ({"__schema": ...}) or as
SDL. Either form is accepted as input. With --format query it prints
the introspection query to send to a server instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if format == "query" {
				fmt.Fprint(w, introspection.Query)
				return nil
			}
			sch, err := a.loadModel()
			if err != nil {
				return err
			}
			switch format {
			case "json":
				data, err := introspection.Encode(introspection.FromSchema(sch), true)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(data))
				return err
			case "sdl":
				fmt.Fprint(w, schema.Render(sch))
				return nil
			}
			return fmt.Errorf("unknown format %q, want json, sdl or query", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, sdl or query")
	return cmd
}

func newTypesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types SDL_FILE",
		Short: "List the model types of a Prisma generated SDL",
		Long: `List the object types of a Prisma generated SDL that are not generated
helpers such as connections, edges, payloads and aggregates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			names, err := typelist.UserDefined(string(src))
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), names)
			}
			t := ui.NewTable(cmd.OutOrStdout(), []string{"TYPE"}, a.noColor)
			for _, n := range names {
				t.AddRow(n)
			}
			t.Render()
			return nil
		},
	}
}
