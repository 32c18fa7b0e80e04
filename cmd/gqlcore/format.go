package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	language "github.com/hanpama/gqlcore/internal/language"
)

// NewFormatCommand creates the format command.
func NewFormatCommand(rootOpts *RootOptions) *cobra.Command {
	var sdl, write bool

	cmd := &cobra.Command{
		Use:   "format <file>...",
		Short: "Print GraphQL documents in canonical form",
		Long: `Parse each document and print it back in canonical form.

Documents are parsed as operations and fragments first, then as type system
definitions. Use --sdl to parse type system definitions only. "-" reads stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				text, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				out, err := formatDocument(path, text, sdl)
				if err != nil {
					return err
				}
				if write && path != "-" {
					if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
						return err
					}
					rootOpts.Logger.Debug("formatted", "file", path)
					continue
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sdl, "sdl", false, "parse as a type system document")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")

	return cmd
}

func formatDocument(name, text string, sdl bool) (string, error) {
	src := language.NewSource(name, text)
	if !sdl {
		doc, err := language.ParseExecutableSource(src)
		if err == nil {
			return language.Print(doc) + "\n", nil
		}
		if _, serr := language.ParseTypeSystemSource(src); serr != nil {
			return "", err
		}
	}
	doc, err := language.ParseTypeSystemSource(src)
	if err != nil {
		return "", err
	}
	return language.Print(doc) + "\n", nil
}
