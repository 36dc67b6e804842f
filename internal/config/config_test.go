package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/quill/internal/syntax"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, syntax.TemplateMode, cfg.LexMode())
	assert.Equal(t, syntax.DefaultMaxErrors, cfg.MaxErrors)
	assert.True(t, cfg.Check.Enabled)
	assert.False(t, cfg.Check.ShadowWarnings)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".quill.yaml", `
mode: raw
max_errors: 5
check:
  shadow_warnings: true
  globals: [user, site]
  disabled_codes: [undefined]
output:
  format: json
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, syntax.RawMode, cfg.LexMode())
	assert.Equal(t, 5, cfg.MaxErrors)
	assert.True(t, cfg.Check.Enabled, "unset fields keep defaults")
	assert.True(t, cfg.Check.ShadowWarnings)
	assert.Equal(t, []string{"user", "site"}, cfg.Check.Globals)
	assert.Equal(t, []string{"undefined"}, cfg.Check.DisabledCodes)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "quill.toml", `
mode = "raw"
max_errors = 0

[check]
enabled = false
globals = ["env"]

[log]
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, syntax.RawMode, cfg.LexMode())
	assert.Equal(t, 0, cfg.MaxErrors)
	assert.False(t, cfg.Check.Enabled)
	assert.Equal(t, []string{"env"}, cfg.Check.Globals)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yml", "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Mode, cfg.Mode)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		errText string
	}{
		{"bad_mode", "a.yaml", "mode: html\n", `unknown mode "html"`},
		{"negative_limit", "b.yaml", "max_errors: -1\n", "max_errors must not be negative"},
		{"bad_format", "c.toml", "[output]\nformat = \"xml\"\n", `unknown output format "xml"`},
		{"bad_level", "d.yaml", "log:\n  level: loud\n", `unknown log level "loud"`},
		{"unknown_yaml_field", "e.yaml", "colour: red\n", "colour"},
		{"unknown_toml_field", "f.toml", "colour = \"red\"\n", `unknown field "colour"`},
		{"syntax", "g.yaml", "mode: [\n", "parsing"},
		{"extension", "h.json", "{}", `unsupported config format ".json"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	want := writeFile(t, root, "quill.toml", "mode = \"raw\"\n")
	got, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// A YAML file closer to dir wins.
	closer := writeFile(t, filepath.Join(root, "a"), ".quill.yml", "mode: raw\n")
	got, err = Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, closer, got)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Resolve("", dir)
	require.NoError(t, err)
	if cfg.Path == "" {
		assert.Equal(t, Default(), cfg)
	}

	explicit := writeFile(t, dir, "custom.yaml", "mode: raw\n")
	cfg, err = Resolve(explicit, dir)
	require.NoError(t, err)
	assert.Equal(t, syntax.RawMode, cfg.LexMode())
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]slog.Level{
		"":      slog.LevelWarn,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
}
