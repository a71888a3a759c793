package mdgrid

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/mdgrid/internal/common"
)

// Configuration defaults
const (
	DefaultTargetWidth = common.DefaultTargetWidth
	DefaultFixedMargin = common.DefaultFixedMargin
)

// Environment variables read by ConfigFromEnv
const (
	EnvTableWidth  = "MDGRID_TABLE_WIDTH"
	EnvFixedMargin = "MDGRID_FIXED_MARGIN"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".mdgrid.yaml"

// Common errors returned by the mdgrid package
var (
	// ErrInvalidConfig is returned when a config file cannot be decoded or
	// holds an out-of-range value
	ErrInvalidConfig = common.ErrInvalidConfig

	// ErrNotMarkdown is returned when a path does not name a Markdown file
	ErrNotMarkdown = common.ErrNotMarkdown
)

// Config holds the settings for a conversion. Build it once and pass it by
// value; nothing in the package mutates it.
type Config struct {
	// TargetWidth is the total inner width of all columns a table grows to
	TargetWidth int `yaml:"width"`

	// FixedMargin is added to the widest content of each single-dash column
	FixedMargin int `yaml:"margin"`

	// Exclude lists glob patterns of paths skipped during discovery
	Exclude []string `yaml:"exclude,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		TargetWidth: DefaultTargetWidth,
		FixedMargin: DefaultFixedMargin,
	}
}

// Validate reports out-of-range values.
func (c Config) Validate() error {
	if c.TargetWidth <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.TargetWidth)
	}
	if c.FixedMargin < 0 {
		return fmt.Errorf("%w: margin must not be negative, got %d", ErrInvalidConfig, c.FixedMargin)
	}
	for _, pattern := range c.Exclude {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("%w: empty exclude pattern", ErrInvalidConfig)
		}
	}
	return nil
}

// normalized replaces out-of-range values with the defaults.
func (c Config) normalized() Config {
	if c.TargetWidth <= 0 {
		c.TargetWidth = DefaultTargetWidth
	}
	if c.FixedMargin < 0 {
		c.FixedMargin = DefaultFixedMargin
	}
	return c
}

// fileConfig mirrors Config with optional fields so that keys missing from
// the file keep their defaults.
type fileConfig struct {
	Width   *int     `yaml:"width"`
	Margin  *int     `yaml:"margin"`
	Exclude []string `yaml:"exclude"`
}

// LoadConfig reads a YAML config file on top of the defaults.
// A missing file is not an error: the defaults are returned.
//
// Example .mdgrid.yaml:
//
//	width: 100
//	margin: 1
//	exclude:
//	  - CHANGELOG.md
//	  - docs/generated/*
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	if fc.Width != nil {
		cfg.TargetWidth = *fc.Width
	}
	if fc.Margin != nil {
		cfg.FixedMargin = *fc.Margin
	}
	cfg.Exclude = fc.Exclude

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment. Variables that are already set win over the file, and a
// missing file is ignored.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ConfigFromEnv overlays MDGRID_TABLE_WIDTH and MDGRID_FIXED_MARGIN on base.
// A variable that is unset, not a number, or out of range leaves the base
// value in place.
func ConfigFromEnv(base Config) Config {
	cfg := base
	if v, ok := envInt(EnvTableWidth); ok && v > 0 {
		cfg.TargetWidth = v
	}
	if v, ok := envInt(EnvFixedMargin); ok && v >= 0 {
		cfg.FixedMargin = v
	}
	return cfg
}

func envInt(key string) (int, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}
