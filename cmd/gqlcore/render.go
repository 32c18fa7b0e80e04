package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	schema "github.com/hanpama/gqlcore/internal/schema"
)

// NewRenderSchemaCommand creates the render-schema command.
func NewRenderSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	var schemaFiles []string
	var output string

	cmd := &cobra.Command{
		Use:   "render-schema --schema <file>...",
		Short: "Merge SDL files into one schema document",
		Long: `Build the schema from the given SDL files, applying extensions, and print
it as a single SDL document with types sorted by name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSchema(schemaFiles)
			if err != nil {
				return err
			}
			sdl := schema.Render(s)
			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), sdl)
				return nil
			}
			rootOpts.Logger.Debug("writing schema", "file", output, "types", len(s.Types))
			return os.WriteFile(output, []byte(sdl), 0o644)
		},
	}

	cmd.Flags().StringSliceVarP(&schemaFiles, "schema", "s", nil, "SDL file (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
