package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/quill/internal/check"
	"github.com/you-not-fish/quill/internal/config"
	"github.com/you-not-fish/quill/internal/syntax"
)

func TestRunTokens(t *testing.T) {
	filename := writeTempQuillFile(t, "input.qs", "let x = 1;")
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"tokens", "--mode", "raw", filename})
	})

	require.Equal(t, 0, code, "stderr:\n%s", errOut)
	assert.Contains(t, out, "POSITION")
	assert.Contains(t, out, "'local'")
	assert.Contains(t, out, `"let"`)
	assert.Contains(t, out, "NUMBER")
	assert.Contains(t, out, "EOF")
	assert.NotContains(t, out, "Errors:")
}

func TestRunTokensLexicalError(t *testing.T) {
	filename := writeTempQuillFile(t, "input.qs", `"abc`)
	code, out, _ := captureOutput(t, func() int {
		return run([]string{"tokens", "--mode", "raw", filename})
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Errors:")
	assert.Contains(t, out, filename+":1:1:")
}

func TestRunParseText(t *testing.T) {
	filename := writeTempQuillFile(t, "input.qs", "let x = 1;")
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"parse", "--mode", "raw", filename})
	})

	require.Equal(t, 0, code, "stderr:\n%s", errOut)
	assert.Empty(t, errOut)
	assert.True(t, strings.HasPrefix(out, "Program [0,10)\n"), out)
	assert.Contains(t, out, "VariableDeclaration let")
	assert.Contains(t, out, "Identifier x")
	assert.Contains(t, out, "Literal 1")
}

func TestRunParseJSON(t *testing.T) {
	filename := writeTempQuillFile(t, "input.qs", "f(1);")
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"parse", "--mode", "raw", "--format", "json", filename})
	})
	require.Equal(t, 0, code, "stderr:\n%s", errOut)

	var tree map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "Program", tree["type"])
	body := tree["body"].([]interface{})
	require.Len(t, body, 1)
	stmt := body[0].(map[string]interface{})
	assert.Equal(t, "ExpressionStatement", stmt["type"])
	assert.Equal(t, "CallExpression", stmt["expression"].(map[string]interface{})["type"])
}

func TestRunParseErrors(t *testing.T) {
	filename := writeTempQuillFile(t, "input.qs", "x = ;\nlet y = 2;")
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"parse", "--mode", "raw", filename})
	})

	assert.Equal(t, 1, code)
	// The recovered statement is still printed.
	assert.Contains(t, out, "Identifier y")
	assert.Contains(t, errOut, filename+":1:")
	assert.Contains(t, errOut, "error:")
}

func TestRunParseTemplateDefault(t *testing.T) {
	filename := writeTempQuillFile(t, "page.quill", "Hello {{ name }}!")
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"parse", filename})
	})

	require.Equal(t, 0, code, "stderr:\n%s", errOut)
	assert.Contains(t, out, `TextStatement "Hello "`)
	assert.Contains(t, out, "OutputStatement")
	assert.Contains(t, out, `TextStatement "!"`)
}

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode int
		wantOut  string
	}{
		{"clean", "let a = 1;\nprint(a);", 0, ""},
		{"undefined", "let a = b;", 1, ":1:9: error: undefined: b [undefined]"},
		{"syntax", "let = 1;", 1, "error:"},
		{"warning_only", "let from = 1;", 0, "warning:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := writeTempQuillFile(t, "input.qs", tt.src)
			code, out, errOut := captureOutput(t, func() int {
				return run([]string{"check", "--mode", "raw", filename})
			})

			assert.Equal(t, tt.wantCode, code, "stdout:\n%s\nstderr:\n%s", out, errOut)
			if tt.wantOut == "" {
				assert.Empty(t, out)
			} else {
				assert.Contains(t, out, tt.wantOut)
			}
		})
	}
}

func TestRunCheckMultipleFilesJSON(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.qs")
	b := filepath.Join(dir, "b.qs")
	require.NoError(t, os.WriteFile(a, []byte("print(x);"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("print(y);"), 0o600))

	code, out, _ := captureOutput(t, func() int {
		return run([]string{"check", "--mode", "raw", "--format", "json", b, a})
	})
	assert.Equal(t, 1, code)

	var diags []struct {
		File    string `json:"file"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &diags))
	require.Len(t, diags, 2)
	// Sorted by file.
	assert.Equal(t, a, diags[0].File)
	assert.Equal(t, "undefined: x", diags[0].Message)
	assert.Equal(t, b, diags[1].File)
	assert.Equal(t, "undefined", diags[1].Code)
}

func TestRunCheckConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "quill.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
mode: raw
check:
  globals: [request]
  disabled_codes: [builtin-arity]
`), 0o600))
	filename := filepath.Join(dir, "input.qs")
	require.NoError(t, os.WriteFile(filename, []byte("print(request);\nlen();"), 0o600))

	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"check", "--config", cfgPath, filename})
	})
	assert.Equal(t, 0, code, "stdout:\n%s\nstderr:\n%s", out, errOut)
	assert.Empty(t, out)

	// Without the config the same file fails.
	code, out, _ = captureOutput(t, func() int {
		return run([]string{"check", "--mode", "raw", filename})
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "undefined: request")
	assert.Contains(t, out, "len expects 1 argument, got 0")
}

func TestRunCheckDisabled(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "quill.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("mode = \"raw\"\n[check]\nenabled = false\n"), 0o600))
	filename := filepath.Join(dir, "input.qs")
	require.NoError(t, os.WriteFile(filename, []byte("print(nope);"), 0o600))

	code, out, _ := captureOutput(t, func() int {
		return run([]string{"check", "--config", cfgPath, filename})
	})
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing_file", []string{"parse", "/nonexistent/input.qs"}, "reading source"},
		{"bad_mode", []string{"tokens", "--mode", "weird", "x.qs"}, "error:"},
		{"bad_format", []string{"parse", "--format", "xml", "x.qs"}, "unknown format"},
		{"bad_config", []string{"--config", "/nonexistent/quill.yaml", "version"}, "reading config"},
		{"no_args", []string{"check"}, "error:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := captureOutput(t, func() int {
				return run(tt.args)
			})
			assert.Equal(t, 1, code)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := captureOutput(t, func() int {
		return run([]string{"version"})
	})
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "quill version "+Version)
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	filename := writeTempQuillFile(t, "input.qs", "let a = 1;")
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"check", "-v", "--mode", "raw", filename})
	})
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "check finished")
}

// ----------------------------------------------------------------------------
// REPL

type fakeReader struct {
	lines   []string
	prompts []string
	history []string
}

func (r *fakeReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	if line == "^C" {
		return "", liner.ErrPromptAborted
	}
	return line, nil
}

func (r *fakeReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func newTestApp() *app {
	return &app{
		cfg:    config.Default(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func runSession(t *testing.T, lines ...string) (*replSession, *fakeReader, string) {
	t.Helper()
	in := &fakeReader{lines: lines}
	var out strings.Builder
	s := newReplSession(newTestApp(), in, &out, syntax.RawMode)
	s.run()
	return s, in, out.String()
}

func TestReplCarriesDeclarations(t *testing.T) {
	s, in, out := runSession(t,
		"let a = 1;",
		"print(a);",
		"print(b);",
		":globals",
	)

	assert.Contains(t, out, "1:7: error: undefined: b [undefined]")
	assert.NotContains(t, out, "undefined: a")
	assert.Contains(t, out, "\nlet a\n")
	assert.Equal(t, []string{"a"}, s.names())
	assert.Equal(t, []string{"let a = 1;", "print(a);", "print(b);"}, in.history)
}

func TestReplContinuation(t *testing.T) {
	s, in, out := runSession(t,
		"function f() {",
		"return 1;",
		"}",
		"f();",
	)

	assert.Empty(t, strings.TrimSpace(out))
	assert.Equal(t, []string{promptMain, promptCont, promptCont, promptMain, promptMain}, in.prompts)
	assert.Equal(t, []string{"function f() { return 1; }", "f();"}, in.history)
	assert.Equal(t, []string{"f"}, s.names())
}

func TestReplEmptyLineSubmits(t *testing.T) {
	_, _, out := runSession(t,
		"f(1,",
		"",
	)
	assert.Contains(t, out, "error:")
}

func TestReplAbortClearsInput(t *testing.T) {
	_, in, out := runSession(t,
		"if (x) {",
		"^C",
		"let y = 1;",
	)
	assert.Empty(t, strings.TrimSpace(out))
	assert.Equal(t, []string{"let y = 1;"}, in.history)
}

func TestReplCommands(t *testing.T) {
	s, in, out := runSession(t,
		":tokens",
		":ast",
		"x;",
		":reset",
		":nope",
		":help",
		":quit",
		"never read",
	)

	assert.True(t, s.showTokens)
	assert.True(t, s.showAST)
	assert.Contains(t, out, "tokens on")
	assert.Contains(t, out, "ast on")
	assert.Contains(t, out, "POSITION")
	assert.Contains(t, out, "ExpressionStatement")
	assert.Contains(t, out, "undefined: x")
	assert.Contains(t, out, "globals cleared")
	assert.Contains(t, out, "unknown command :nope")
	assert.Contains(t, out, "Commands:")
	assert.Equal(t, []string{"never read"}, in.lines)
}

func TestReplFailedInputNotRemembered(t *testing.T) {
	s, _, _ := runSession(t,
		"let a = missing;",
		"let b = 1;",
	)
	assert.Equal(t, []string{"b"}, s.names())
}

func TestReplCarriedNamesKeepKind(t *testing.T) {
	s, _, out := runSession(t,
		"const c = 1;",
		`import m from "mod";`,
		"let v = 2;",
		"c = 2;",
		"m = 3;",
		"v = 4;",
		":globals",
	)

	assert.Contains(t, out, "cannot assign to const c [const-assign]")
	assert.Contains(t, out, "cannot assign to import m [const-assign]")
	assert.NotContains(t, out, "cannot assign to let v")
	assert.Contains(t, out, "const c\nimport m\nlet v\n")
	assert.Equal(t, []string{"c", "m", "v"}, s.names())
}

func TestReplRedeclarationReplacesKind(t *testing.T) {
	s, _, out := runSession(t,
		"const c = 1;",
		"let c = 2;",
		"c = 3;",
	)

	assert.NotContains(t, out, "cannot assign")
	assert.Equal(t, check.Let, s.declared["c"].Kind())
}

// ----------------------------------------------------------------------------
// Watch

func TestWatchFiles(t *testing.T) {
	filename := writeTempQuillFile(t, "input.qs", "let a = 1;")
	other := filepath.Join(filepath.Dir(filename), "other.qs")

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		done <- watchFiles(ctx, logger, []string{filename}, 10*time.Millisecond, func() {
			calls.Add(1)
		})
	}()

	// Files that are not watched do not trigger.
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))

	require.Eventually(t, func() bool {
		_ = os.WriteFile(filename, []byte("let a = 2;"), 0o600)
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchFiles did not stop after cancel")
	}
}

func TestWatchFilesRunsAfterLastWrite(t *testing.T) {
	filename := writeTempQuillFile(t, "input.qs", "let a = 1;")
	const debounce = 300 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var calls atomic.Int32
	var seen atomic.Value
	go func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		_ = watchFiles(ctx, logger, []string{filename}, debounce, func() {
			data, _ := os.ReadFile(filename)
			seen.Store(string(data))
			calls.Add(1)
		})
	}()

	// Wait until the watcher is live, then for the trailing call to pass.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filename, []byte("let a = 2;"), 0o600)
		return calls.Load() > 0
	}, 10*time.Second, 2*debounce)
	time.Sleep(2 * debounce)
	before := calls.Load()

	for _, src := range []string{"let b", "let b =", "let b = 3;"} {
		require.NoError(t, os.WriteFile(filename, []byte(src), 0o600))
	}

	require.Eventually(t, func() bool {
		return calls.Load() > before
	}, 5*time.Second, 20*time.Millisecond)
	time.Sleep(2 * debounce)

	assert.Equal(t, before+1, calls.Load(), "one call per burst")
	assert.Equal(t, "let b = 3;", seen.Load())
}

func TestWatchFilesMissingDir(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := watchFiles(context.Background(), logger, []string{"/nonexistent/dir/input.qs"}, time.Millisecond, func() {})
	assert.Error(t, err)
}

// ----------------------------------------------------------------------------
// Helpers

func writeTempQuillFile(t *testing.T, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
