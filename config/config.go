// Package config loads CLI settings from a YAML file, a .env file and
// PENTTI_* environment variables, in increasing order of precedence.
// Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pentti/internal/ctxlog"
	"github.com/katalvlaran/pentti/render"
)

const (
	// AppName names the config and cache directories.
	AppName = "pentti"
	// DefaultConfigFile is the config filename inside the config directory.
	DefaultConfigFile = "config.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PENTTI_"
)

// Output formats accepted by Config.Output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputPNG  = "png"
)

// Config holds the CLI settings.
type Config struct {
	LogLevel  string         `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string         `yaml:"log_format"` // text or json
	Output    string         `yaml:"output"`     // text, json, yaml or png
	Plain     bool           `yaml:"plain"`      // glyphs instead of colors
	CellSize  int            `yaml:"cell_size"`  // PNG pixels per cell
	MaxSteps  int            `yaml:"max_steps"`  // 0 = unlimited
	Workers   int            `yaml:"workers"`    // batch concurrency, 0 = one per CPU
	Cache     bool           `yaml:"cache"`      // reuse results across runs
	CacheDir  string         `yaml:"cache_dir"`
	CacheTTL  time.Duration  `yaml:"cache_ttl"` // 0 = keep forever
	Palette   render.Palette `yaml:"palette"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Output:    OutputText,
		CellSize:  16,
		CacheDir:  defaultCacheDir(),
		Palette:   render.DefaultPalette,
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(dir, AppName)
}

// DefaultPath returns the config file location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate config directory: %w", err)
	}
	return filepath.Join(dir, AppName, DefaultConfigFile), nil
}

// Load builds a Config from defaults, then the YAML file at path, then the
// .env file at envFile, then the process environment.
//
// An empty path means DefaultPath(), which may be absent. An explicit path
// must exist. An empty envFile means ".env" in the working directory, which
// may also be absent.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if envFile == "" {
		envFile = ".env"
	}
	fileEnv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read %s: %w", envFile, err)
	}
	lookup := func(k string) (string, bool) {
		if v, ok := os.LookupEnv(k); ok {
			return v, true
		}
		v, ok := fileEnv[k]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	c.Palette = c.Palette.Merge(render.DefaultPalette)
	return nil
}

// ApplyEnv overrides fields from PENTTI_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s%s must be an integer: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s%s must be a boolean: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("OUTPUT", &c.Output)
	str("CACHE_DIR", &c.CacheDir)
	if v, ok := lookup(EnvPrefix + "CACHE_TTL"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %sCACHE_TTL: %w", EnvPrefix, err)
		}
		c.CacheTTL = d
	}
	for name, dst := range map[string]*int{"CELL_SIZE": &c.CellSize, "MAX_STEPS": &c.MaxSteps, "WORKERS": &c.Workers} {
		if err := integer(name, dst); err != nil {
			return err
		}
	}
	for name, dst := range map[string]*bool{"PLAIN": &c.Plain, "CACHE": &c.Cache} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := ctxlog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: log_format must be text or json, got %q", c.LogFormat)
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML, OutputPNG:
	default:
		return fmt.Errorf("config: output must be text, json, yaml or png, got %q", c.Output)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("config: cell_size must be positive, got %d", c.CellSize)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("config: max_steps cannot be negative, got %d", c.MaxSteps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers cannot be negative, got %d", c.Workers)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config: cache_ttl cannot be negative, got %s", c.CacheTTL)
	}
	if err := c.Palette.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
