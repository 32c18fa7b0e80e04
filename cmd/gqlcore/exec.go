package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	executor "github.com/hanpama/gqlcore/internal/executor"
	introspection "github.com/hanpama/gqlcore/internal/introspection"
	language "github.com/hanpama/gqlcore/internal/language"
)

// ExecOptions holds the flags of the exec command.
type ExecOptions struct {
	SchemaFiles   []string
	Query         string
	OperationName string
	VariablesFile string
	RootFile      string
	Pretty        bool
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{}

	cmd := &cobra.Command{
		Use:   "exec --schema <file> <document>",
		Short: "Execute an operation against a static root value",
		Long: `Execute an operation against the root value read from --root (YAML or
JSON). Fields resolve to the properties of their parent value. The events of a
subscription field are the items of the root value property of the same name.

Each result is printed as one JSON line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Query = args[0]
			return runExec(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.SchemaFiles, "schema", "s", nil, "SDL file (repeatable)")
	cmd.Flags().StringVar(&opts.OperationName, "operation", "", "name of the operation to run")
	cmd.Flags().StringVar(&opts.VariablesFile, "variables", "", "YAML or JSON file of variable values")
	cmd.Flags().StringVar(&opts.RootFile, "root", "", "YAML or JSON file of the root value")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "indent JSON output")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runExec(cmd *cobra.Command, rootOpts *RootOptions, opts *ExecOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s, err := loadSchema(opts.SchemaFiles)
	if err != nil {
		return err
	}
	text, err := readInput(cmd, opts.Query)
	if err != nil {
		return err
	}
	doc, err := language.ParseExecutableSource(language.NewSource(opts.Query, text))
	if err != nil {
		return err
	}
	variables, err := readValues(opts.VariablesFile)
	if err != nil {
		return err
	}
	vars, ok := variables.(map[string]any)
	if variables != nil && !ok {
		return fmt.Errorf("%s: variables must be a mapping", opts.VariablesFile)
	}
	root, err := readValues(opts.RootFile)
	if err != nil {
		return err
	}

	stopTelemetry, err := startTelemetry(rootOpts.Config, rootOpts.Logger)
	if err != nil {
		return err
	}
	defer stopTelemetry()

	cfg := rootOpts.Config.Executor
	e := executor.New(introspection.Wrap(replayRuntime{}), s,
		executor.WithMaxConcurrency(cfg.MaxConcurrency),
		executor.WithSubscriptionBuffer(cfg.SubscriptionBuffer),
		executor.WithIntrospection(cfg.Introspection),
		executor.WithLogger(rootOpts.Logger),
	)
	defer e.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if opts.Pretty {
		enc.SetIndent("", "  ")
	}
	for res := range e.Execute(ctx, executor.Request{
		Document:      doc,
		OperationName: opts.OperationName,
		Variables:     vars,
		RootValue:     root,
	}) {
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	return nil
}
