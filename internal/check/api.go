package check

import (
	"io"
	"log/slog"
	"time"

	"github.com/you-not-fish/quill/internal/syntax"
)

// Config specifies the configuration for checking.
type Config struct {
	// Error is called for each error and warning.
	// If nil, problems are only counted.
	Error ErrorHandler

	// Globals are names provided by the host environment.
	Globals []string

	// Predeclared are symbols carried over from an earlier check, such as
	// the top-level declarations of a previous REPL input. They live next
	// to Globals, keep their kind and win over a global of the same name.
	Predeclared []*Symbol

	// ShadowWarnings enables warnings for declarations that hide an
	// outer declaration.
	ShadowWarnings bool

	// Disabled lists codes that are never reported.
	Disabled []Code

	// Logger receives debug records. If nil, nothing is logged.
	Logger *slog.Logger
}

// Info holds the results of checking.
type Info struct {
	// Defs maps declaring identifiers to their symbols.
	Defs map[*syntax.Identifier]*Symbol

	// Uses maps referencing identifiers to the symbols they resolve to.
	Uses map[*syntax.Identifier]*Symbol

	// Scopes maps nodes that open a scope to that scope.
	// This includes Program, BlockStatement, ForStatement, ForInStatement,
	// FunctionDeclaration, FunctionExpression, CatchClause and
	// SwitchStatement.
	Scopes map[syntax.Node]*Scope
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Check checks a parsed program.
// It returns the program scope and the first error encountered, if any.
// Warnings are delivered only through conf.Error.
func Check(prog *syntax.Program, conf *Config, info *Info) (*Scope, error) {
	if conf == nil {
		conf = &Config{}
	}

	// Initialize info maps if not provided
	if info != nil {
		if info.Defs == nil {
			info.Defs = make(map[*syntax.Identifier]*Symbol)
		}
		if info.Uses == nil {
			info.Uses = make(map[*syntax.Identifier]*Symbol)
		}
		if info.Scopes == nil {
			info.Scopes = make(map[syntax.Node]*Scope)
		}
	}

	c := &Checker{
		conf:     conf,
		info:     info,
		logger:   conf.Logger,
		disabled: make(map[Code]bool),
	}
	if c.logger == nil {
		c.logger = discardLogger
	}
	for _, code := range conf.Disabled {
		c.disabled[code] = true
	}

	start := time.Now()
	c.checkProgram(prog)
	c.logger.Debug("check finished",
		"errors", c.errors,
		"warnings", c.warnings,
		"duration", time.Since(start))

	if c.errors > 0 {
		return c.top, c.first
	}
	return c.top, nil
}
