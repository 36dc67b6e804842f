package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/quill/internal/check"
	"github.com/you-not-fish/quill/internal/config"
	"github.com/you-not-fish/quill/internal/diag"
	"github.com/you-not-fish/quill/internal/syntax"
)

const (
	historyFile = ".quill_history"
	promptMain  = "quill> "
	promptCont  = "  ...> "
)

const replHelp = `Enter code to parse and check it. Input that is cut off
(an open block, string or bracket) continues on the next line; an empty
line submits it as is.

Commands:
  :tokens   toggle printing the token table
  :ast      toggle printing the syntax tree
  :globals  list names declared by earlier input
  :reset    forget names declared by earlier input
  :help     show this text
  :quit     exit
`

func newReplCmd(a *app) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse and check code interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := syntax.RawMode
			if mode != "" {
				var err error
				if m, err = config.ParseMode(mode); err != nil {
					return err
				}
			}
			return a.runRepl(cmd, m)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "lexer mode: raw or template (default raw)")
	return cmd
}

func (a *app) runRepl(cmd *cobra.Command, mode syntax.Mode) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Quill %s (:help for commands, :quit to exit)\n", Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newReplSession(a, ln, out, mode)
	s.run()
	return nil
}

// ----------------------------------------------------------------------------
// Session

// lineReader is the part of *liner.State a session uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// replSession reads inputs, checks them and prints the results.
// Top-level names declared by an input that checked cleanly are visible
// to later inputs.
type replSession struct {
	app  *app
	in   lineReader
	out  io.Writer
	mode syntax.Mode

	showTokens bool
	showAST    bool
	declared   map[string]*check.Symbol // top-level names of earlier inputs
}

func newReplSession(a *app, in lineReader, out io.Writer, mode syntax.Mode) *replSession {
	return &replSession{app: a, in: in, out: out, mode: mode, declared: make(map[string]*check.Symbol)}
}

// run processes inputs until end of input or :quit.
func (s *replSession) run() {
	for {
		src, ok := s.read()
		if !ok {
			fmt.Fprintln(s.out)
			return
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if !s.command(trimmed) {
				return
			}
			continue
		}

		s.in.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		s.eval(src)
	}
}

// read returns the next complete input. It keeps prompting while the
// accumulated input parses as incomplete. ok is false at end of input.
func (s *replSession) read() (src string, ok bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := s.in.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src = b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if !syntax.ParseString(src, s.mode, s.app.parseOptions()...).Incomplete() {
			return src, true
		}
	}
}

// command runs a colon command and reports whether the session goes on.
func (s *replSession) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return false
	case ":tokens":
		s.showTokens = !s.showTokens
		fmt.Fprintf(s.out, "tokens %s\n", onOff(s.showTokens))
	case ":ast":
		s.showAST = !s.showAST
		fmt.Fprintf(s.out, "ast %s\n", onOff(s.showAST))
	case ":globals":
		names := s.names()
		if len(names) == 0 {
			fmt.Fprintln(s.out, "no globals")
		}
		for _, name := range names {
			fmt.Fprintf(s.out, "%s %s\n", s.declared[name].Kind(), name)
		}
	case ":reset":
		s.declared = make(map[string]*check.Symbol)
		fmt.Fprintln(s.out, "globals cleared")
	case ":help":
		fmt.Fprint(s.out, replHelp)
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return true
}

// eval parses and checks one input and prints what was asked for.
func (s *replSession) eval(src string) {
	if s.showTokens {
		writeTokens(s.out, "", src, s.mode)
	}

	res := syntax.ParseString(src, s.mode, s.app.parseOptions()...)
	if s.showAST {
		syntax.Fprint(s.out, res.AST)
	}
	diags := diag.FromParse("", src, res)

	if s.app.cfg.Check.Enabled {
		var errs []*check.Error
		conf := s.app.checkConfig(func(e *check.Error) { errs = append(errs, e) })
		for _, name := range s.names() {
			conf.Predeclared = append(conf.Predeclared, s.declared[name])
		}

		scope, err := check.Check(res.AST, conf, nil)
		if err == nil && !res.HasErrors() {
			s.remember(scope)
		}
		diags = append(diags, diag.FromCheck("", src, errs)...)
	}

	diag.Sort(diags)
	_ = diag.Fprint(s.out, diags)
}

// remember records the top-level symbols of scope. A name declared again
// takes the kind of its latest declaration.
func (s *replSession) remember(scope *check.Scope) {
	for _, name := range scope.Names() {
		s.declared[name] = scope.Lookup(name)
	}
}

// names returns the declared names, sorted.
func (s *replSession) names() []string {
	names := make([]string, 0, len(s.declared))
	for name := range s.declared {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
