package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hanpama/gqlview/internal/config"
	"github.com/hanpama/gqlview/internal/eventbus"
	"github.com/hanpama/gqlview/internal/introspection"
	"github.com/hanpama/gqlview/internal/logging"
	"github.com/hanpama/gqlview/internal/schema"
	"github.com/hanpama/gqlview/internal/tree"
	"github.com/hanpama/gqlview/internal/ui"
)

// app carries what every command needs once flags and config are loaded.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	logger  *zap.Logger
	noColor bool
	asJSON  bool

	configFile string
	unsub      func()
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "gqlview",
		Short: "Table and form metadata from directive annotated GraphQL queries",
		Long: `gqlview reads a GraphQL query annotated with view directives
(@table, @column, @pagination, @total, @form, @input) and a schema given as
introspection JSON or SDL, and derives the column and form field metadata
a table or form needs to display the query result.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./gqlview.yaml if present)")
	flags.String("schema", "", "schema file, introspection JSON or SDL")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Bool("log-dev", false, "human readable development logs")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&a.asJSON, "json", false, "print JSON instead of tables")
	a.bind(root, "schema.introspection", "schema")
	a.bind(root, "log.level", "log-level")
	a.bind(root, "log.development", "log-dev")

	root.AddCommand(
		newTableCommand(a),
		newFormCommand(a),
		newRowsCommand(a),
		newStripCommand(),
		newIntrospectCommand(a),
		newTypesCommand(a),
		newServeCommand(a),
		newVersionCommand(),
	)
	return root
}

const configKey = "gqlview_config_key"

// bind marks flag as the override of config key. The binding is applied in
// setup for the command that runs, so several commands may bind one key.
func (a *app) bind(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if f.Annotations == nil {
		f.Annotations = map[string][]string{}
	}
	f.Annotations[configKey] = []string{key}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if keys := f.Annotations[configKey]; len(keys) > 0 && bindErr == nil {
			bindErr = a.v.BindPFlag(keys[0], f)
		}
	})
	if bindErr != nil {
		return bindErr
	}
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.noColor {
		color.NoColor = true
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.logger = logger
	eventbus.Use(eventbus.New())
	a.unsub = logging.Subscribe(logger)
	return nil
}

func (a *app) teardown() {
	if a.unsub != nil {
		a.unsub()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// loadTree materializes the configured schema file.
func (a *app) loadTree() (*tree.Tree, error) {
	data, err := a.readSchema()
	if err != nil {
		return nil, err
	}
	return tree.MaterializeDocument(data)
}

// loadModel builds the schema model of the configured schema file.
func (a *app) loadModel() (*schema.Schema, error) {
	data, err := a.readSchema()
	if err != nil {
		return nil, err
	}
	if isJSON(data) {
		in, err := introspection.Decode(data)
		if err != nil {
			return nil, err
		}
		return introspection.BuildSchema(in)
	}
	return schema.BuildFromSDL(string(data))
}

func (a *app) readSchema() ([]byte, error) {
	path := a.cfg.Schema.Introspection
	if path == "" {
		return nil, fmt.Errorf("no schema given: use --schema or schema.introspection")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return data, nil
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			kv := ui.NewKeyValue(cmd.OutOrStdout(), color.NoColor)
			kv.AddRow("gqlview", Version)
			kv.AddRow("commit", GitCommit)
			kv.AddRow("built", BuildDate)
			kv.AddRow("go", runtime.Version())
			kv.Render()
		},
	}
}
