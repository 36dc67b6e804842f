// Package main implements the quill command: tokenizer, parser and
// checker front ends for Quill templates and scripts.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/quill/internal/config"
	"github.com/you-not-fish/quill/internal/syntax"
)

// Version information
const Version = "0.1.0-dev"

// errDiagnostics reports that a command ran but found errors in its input.
// The diagnostics have already been printed.
var errDiagnostics = errors.New("input has errors")

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code.
func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

// app holds the state shared by all subcommands.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "quill",
		Short: "Quill template language toolchain",
		Long: `quill tokenizes, parses and checks Quill templates and scripts.

Templates mix text with {{ expression }} and {% statement %} blocks.
Scripts (--mode raw) are plain code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: discovered .quill.yaml, .quill.yml or quill.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newTokensCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(logOut io.Writer) error {
	cfg, err := config.Resolve(a.cfgFile, ".")
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		a.logger = slog.New(slog.NewJSONHandler(logOut, opts))
	} else {
		a.logger = slog.New(slog.NewTextHandler(logOut, opts))
	}

	if cfg.Path != "" {
		a.logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

// mode returns the lexer mode named by flag, or the configured mode if
// flag is empty.
func (a *app) mode(flag string) (syntax.Mode, error) {
	if flag == "" {
		return a.cfg.LexMode(), nil
	}
	return config.ParseMode(flag)
}

// format returns the output format named by flag, or the configured one.
func (a *app) format(flag string) (string, error) {
	if flag == "" {
		flag = a.cfg.Output.Format
	}
	switch flag {
	case "text", "json":
		return flag, nil
	}
	return "", fmt.Errorf("unknown format %q (want text or json)", flag)
}

// parseOptions returns the parser options derived from the configuration.
func (a *app) parseOptions() []syntax.Option {
	return []syntax.Option{
		syntax.WithMaxErrors(a.cfg.MaxErrors),
		syntax.WithLogger(a.logger),
	}
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	return string(data), nil
}
