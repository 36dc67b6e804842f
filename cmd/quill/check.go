package main

import (
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/quill/internal/check"
	"github.com/you-not-fish/quill/internal/diag"
	"github.com/you-not-fish/quill/internal/syntax"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		mode, format string
		watch        bool
	)
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Report syntax and semantic problems",
		Long: `check parses each FILE, runs the semantic checks and prints the
diagnostics. It exits with status 1 if any error was found.

With --watch, files are checked again whenever they change until the
command is interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.mode(mode)
			if err != nil {
				return err
			}
			f, err := a.format(format)
			if err != nil {
				return err
			}

			if !watch {
				return a.runCheck(cmd, args, m, f)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			report := func() {
				if err := a.runCheck(cmd, args, m, f); err != nil && !errors.Is(err, errDiagnostics) {
					a.logger.Error("check failed", "error", err)
				}
			}
			report()
			return watchFiles(ctx, a.logger, args, watchDebounce, report)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "lexer mode: template or raw (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "diagnostic format: text or json (default from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "check again when files change")
	return cmd
}

const watchDebounce = 100 * time.Millisecond

// runCheck checks files and prints their diagnostics in the given format.
func (a *app) runCheck(cmd *cobra.Command, files []string, mode syntax.Mode, format string) error {
	var all []diag.Diagnostic
	for _, file := range files {
		diags, err := a.checkFile(file, mode)
		if err != nil {
			return err
		}
		all = append(all, diags...)
	}
	diag.Sort(all)

	out := cmd.OutOrStdout()
	var err error
	if format == "json" {
		err = diag.FprintJSON(out, all)
	} else {
		err = diag.Fprint(out, all)
	}
	if err != nil {
		return err
	}

	errs, warns := diag.Count(all)
	a.logger.Info("check finished", "files", len(files), "errors", errs, "warnings", warns)
	if errs > 0 {
		return errDiagnostics
	}
	return nil
}

// checkFile returns the syntax and semantic diagnostics of one file.
// Semantic checks run on the recovered tree even if it has syntax errors.
func (a *app) checkFile(filename string, mode syntax.Mode) ([]diag.Diagnostic, error) {
	src, err := readSource(filename)
	if err != nil {
		return nil, err
	}

	res := syntax.ParseString(src, mode, a.parseOptions()...)
	diags := diag.FromParse(filename, src, res)
	if !a.cfg.Check.Enabled {
		return diags, nil
	}

	var errs []*check.Error
	conf := a.checkConfig(func(e *check.Error) { errs = append(errs, e) })
	if _, err := check.Check(res.AST, conf, nil); err != nil {
		a.logger.Debug("semantic errors", "file", filename, "first", err)
	}
	return append(diags, diag.FromCheck(filename, src, errs)...), nil
}

// checkConfig builds the checker configuration from the tool configuration.
func (a *app) checkConfig(handler check.ErrorHandler) *check.Config {
	conf := &check.Config{
		Error:          handler,
		Globals:        a.cfg.Check.Globals,
		ShadowWarnings: a.cfg.Check.ShadowWarnings,
		Logger:         a.logger,
	}
	for _, code := range a.cfg.Check.DisabledCodes {
		conf.Disabled = append(conf.Disabled, check.Code(code))
	}
	return conf
}
