// Package config loads Quill tool configuration from YAML or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/quill/internal/syntax"
)

// FileNames are the configuration file names Discover looks for, in
// order of preference.
var FileNames = []string{".quill.yaml", ".quill.yml", "quill.toml"}

// ErrNotFound is returned by Discover when no configuration file exists.
var ErrNotFound = errors.New("no configuration file found")

// Config holds the complete tool configuration
type Config struct {
	Mode      string       `yaml:"mode" toml:"mode"`
	MaxErrors int          `yaml:"max_errors" toml:"max_errors"`
	Check     CheckConfig  `yaml:"check" toml:"check"`
	Output    OutputConfig `yaml:"output" toml:"output"`
	Log       LogConfig    `yaml:"log" toml:"log"`

	// Path is the file the configuration was loaded from, if any.
	Path string `yaml:"-" toml:"-"`
}

// CheckConfig holds semantic check settings
type CheckConfig struct {
	Enabled        bool     `yaml:"enabled" toml:"enabled"`
	ShadowWarnings bool     `yaml:"shadow_warnings" toml:"shadow_warnings"`
	Globals        []string `yaml:"globals" toml:"globals"`
	DisabledCodes  []string `yaml:"disabled_codes" toml:"disabled_codes"`
}

// OutputConfig holds diagnostic output settings
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Mode:      "template",
		MaxErrors: syntax.DefaultMaxErrors,
		Check: CheckConfig{
			Enabled: true,
		},
		Output: OutputConfig{Format: "text"},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a configuration file. The format is chosen by extension:
// .yaml and .yml are YAML, .toml is TOML. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return nil, fmt.Errorf("parsing %s: unknown field %q", path, undec[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover looks for a configuration file in dir and its parents and
// returns the path of the first one found, or ErrNotFound.
func Discover(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Resolve returns the configuration at path if it is not empty, else the
// configuration discovered from dir, else the defaults.
func Resolve(path, dir string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	found, err := Discover(dir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(found)
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	if c.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.MaxErrors)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", c.Output.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	return nil
}

// LexMode returns the lexer mode named by Mode.
func (c *Config) LexMode() syntax.Mode {
	m, _ := ParseMode(c.Mode)
	return m
}

// LogLevel returns the slog level named by Log.Level.
func (c *Config) LogLevel() slog.Level {
	l, _ := ParseLevel(c.Log.Level)
	return l
}

// ParseMode converts a mode name to a lexer mode.
func ParseMode(s string) (syntax.Mode, error) {
	switch s {
	case "template", "":
		return syntax.TemplateMode, nil
	case "raw":
		return syntax.RawMode, nil
	}
	return syntax.TemplateMode, fmt.Errorf("unknown mode %q (want raw or template)", s)
}

// ParseLevel converts a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}
