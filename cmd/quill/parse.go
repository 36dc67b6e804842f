package main

import (
	"github.com/spf13/cobra"

	"github.com/you-not-fish/quill/internal/diag"
	"github.com/you-not-fish/quill/internal/syntax"
)

func newParseCmd(a *app) *cobra.Command {
	var mode, format string
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a file",
		Long: `parse prints the syntax tree of FILE followed by any syntax errors.
The tree is printed even when the file has errors; it then holds every
statement that could be recovered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.mode(mode)
			if err != nil {
				return err
			}
			f, err := a.format(format)
			if err != nil {
				return err
			}
			return a.runParse(cmd, args[0], m, f)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "lexer mode: template or raw (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "tree format: text or json (default from config)")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, filename string, mode syntax.Mode, format string) error {
	src, err := readSource(filename)
	if err != nil {
		return err
	}

	res := syntax.ParseString(src, mode, a.parseOptions()...)
	a.logger.Debug("parsed", "file", filename, "mode", mode, "errors", len(res.Errors))

	// Output AST
	switch format {
	case "json":
		if err := syntax.FprintJSON(cmd.OutOrStdout(), res.AST); err != nil {
			return err
		}
	default:
		syntax.Fprint(cmd.OutOrStdout(), res.AST)
	}

	diags := diag.FromParse(filename, src, res)
	diag.Sort(diags)
	if err := diag.Fprint(cmd.ErrOrStderr(), diags); err != nil {
		return err
	}
	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}
