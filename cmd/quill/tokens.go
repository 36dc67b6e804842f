package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/quill/internal/syntax"
)

func newTokensCmd(a *app) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.mode(mode)
			if err != nil {
				return err
			}
			return a.runTokens(cmd, args[0], m)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "lexer mode: template or raw (default from config)")
	return cmd
}

func (a *app) runTokens(cmd *cobra.Command, filename string, mode syntax.Mode) error {
	src, err := readSource(filename)
	if err != nil {
		return err
	}
	if n := writeTokens(cmd.OutOrStdout(), filename, src, mode); n > 0 {
		a.logger.Debug("lexical errors", "file", filename, "count", n)
		return errDiagnostics
	}
	return nil
}

// writeTokens prints the token table of src followed by its lexical
// errors and returns the number of errors.
func writeTokens(out io.Writer, filename, src string, mode syntax.Mode) int {
	// Print header
	fmt.Fprintf(out, "%-20s %-18s %s\n", "POSITION", "TOKEN", "VALUE")
	fmt.Fprintf(out, "%-20s %-18s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 18), strings.Repeat("-", 20))

	var errs []string
	l := syntax.NewLexer(src, mode)
	for {
		tok := l.NextToken()
		pos := fmt.Sprintf("%d:%d", tok.Line, tok.Column)
		fmt.Fprintf(out, "%-20s %-18s %s\n", pos, tokenName(tok.Kind), formatValue(tok))

		if tok.Kind.IsError() {
			prefix := pos
			if filename != "" {
				prefix = filename + ":" + pos
			}
			errs = append(errs, fmt.Sprintf("%s: %s", prefix, tok.Text()))
		}
		if tok.Kind.IsEOF() {
			break
		}
	}

	// Print any errors
	if len(errs) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Errors:")
		for _, e := range errs {
			fmt.Fprintf(out, "  %s\n", e)
		}
	}
	return len(errs)
}

// tokenName returns the table name of a kind: operators and keywords are
// shown quoted so they do not read as token class names.
func tokenName(k syntax.Kind) string {
	if k.IsOperator() || k.IsKeyword() {
		return "'" + k.String() + "'"
	}
	return k.String()
}

// formatValue formats a token value for display, escaping special characters.
func formatValue(tok syntax.Token) string {
	switch v := tok.Value.(type) {
	case nil:
		return ""
	case string:
		return formatLiteral(v)
	case syntax.RegexpValue:
		return "/" + v.Pattern + "/" + v.Flags
	}
	return fmt.Sprint(tok.Value)
}

// formatLiteral quotes s with special characters made visible.
func formatLiteral(s string) string {
	var b strings.Builder
	b.WriteRune('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
