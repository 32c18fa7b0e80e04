package main

import (
	"fmt"

	"github.com/spf13/cobra"

	language "github.com/hanpama/gqlcore/internal/language"
	validation "github.com/hanpama/gqlcore/internal/validation"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var schemaFiles []string

	cmd := &cobra.Command{
		Use:   "validate --schema <file> [document]...",
		Short: "Validate a schema and documents against it",
		Long: `Build the schema from the given SDL files, then validate each document
against it. Every violation is printed as file:line:column: message.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSchema(schemaFiles)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				text, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				doc, err := language.ParseExecutableSource(language.NewSource(path, text))
				if err != nil {
					return err
				}
				errs := validation.Validate(s, doc)
				for _, ve := range errs {
					if len(ve.Locations) > 0 {
						loc := ve.Locations[0]
						fmt.Fprintf(out, "%s:%d:%d: %s\n", path, loc.Line, loc.Column, ve.Message)
					} else {
						fmt.Fprintf(out, "%s: %s\n", path, ve.Message)
					}
				}
				rootOpts.Logger.Debug("validated", "file", path, "errors", len(errs))
				failed += len(errs)
			}
			if failed > 0 {
				return fmt.Errorf("%d validation error(s)", failed)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&schemaFiles, "schema", "s", nil, "SDL file (repeatable)")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
