// Package config loads physref configuration. Values are layered in order
// of increasing precedence: built-in defaults, the user config, the project
// config in the working directory, then PHYSREF_* environment variables.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/physref/data"
	"github.com/Aman-CERP/physref/internal/imageload"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/store"
)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config is the complete physref configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Data    DataConfig    `yaml:"data" json:"data"`
	Images  ImagesConfig  `yaml:"images" json:"images"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// DataConfig locates the four tables. An empty Dir selects the tables
// bundled in the binary; file names are relative to Dir.
type DataConfig struct {
	Dir        string `yaml:"dir" json:"dir"`
	Formulas   string `yaml:"formulas" json:"formulas"`
	Constants  string `yaml:"constants" json:"constants"`
	Scientists string `yaml:"scientists" json:"scientists"`
	Dimensions string `yaml:"dimensions" json:"dimensions"`
}

// ImagesConfig controls scientist portraits.
type ImagesConfig struct {
	// Enabled is a pointer so a file can turn images off explicitly.
	Enabled        *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Timeout        string `yaml:"timeout" json:"timeout"`
	PlaceholderURL string `yaml:"placeholder_url" json:"placeholder_url"`
	Width          int    `yaml:"width" json:"width"`
	MaxBytes       int64  `yaml:"max_bytes" json:"max_bytes"`
	CacheSize      int    `yaml:"cache_size" json:"cache_size"`
	Concurrency    int    `yaml:"concurrency" json:"concurrency"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format  string `yaml:"format" json:"format"`
	Details bool   `yaml:"details" json:"details"`
	NoColor bool   `yaml:"no_color" json:"no_color"`
	// Limit caps printed results; 0 prints all.
	Limit int `yaml:"limit" json:"limit"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	enabled := true
	return &Config{
		Version: 1,
		Data: DataConfig{
			Formulas:   "formulas.csv",
			Constants:  "constants.csv",
			Scientists: "scientists.csv",
			Dimensions: "dimensions.csv",
		},
		Images: ImagesConfig{
			Enabled:        &enabled,
			Timeout:        imageload.DefaultTimeout.String(),
			PlaceholderURL: imageload.DefaultPlaceholderURL,
			Width:          imageload.DefaultWidth,
			MaxBytes:       imageload.DefaultMaxBytes,
			CacheSize:      imageload.DefaultCacheSize,
			Concurrency:    4,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// GetUserConfigPath returns the user configuration file:
//   - $XDG_CONFIG_HOME/physref/config.yaml when XDG_CONFIG_HOME is set
//   - ~/.config/physref/config.yaml otherwise
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "physref", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "physref", "config.yaml")
	}
	return filepath.Join(home, ".config", "physref", "config.yaml")
}

// GetUserConfigDir returns the directory of the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists reports whether the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// ProjectConfigNames are tried in order in the working directory.
var ProjectConfigNames = []string{".physref.yaml", ".physref.yml"}

// Load builds the effective configuration for dir.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if path := GetUserConfigPath(); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if err := cfg.loadFromDir(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile builds the configuration from defaults, one explicit file and
// the environment. The user and project configs are skipped.
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()
	if err := cfg.loadYAML(path); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFromDir(dir string) error {
	for _, name := range ProjectConfigNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return c.loadYAML(path)
		}
	}
	return nil
}

func (c *Config) loadYAML(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith copies the non-zero values of other into c. Plain booleans can
// only be switched on this way.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Data.Dir != "" {
		c.Data.Dir = other.Data.Dir
	}
	if other.Data.Formulas != "" {
		c.Data.Formulas = other.Data.Formulas
	}
	if other.Data.Constants != "" {
		c.Data.Constants = other.Data.Constants
	}
	if other.Data.Scientists != "" {
		c.Data.Scientists = other.Data.Scientists
	}
	if other.Data.Dimensions != "" {
		c.Data.Dimensions = other.Data.Dimensions
	}

	if other.Images.Enabled != nil {
		v := *other.Images.Enabled
		c.Images.Enabled = &v
	}
	if other.Images.Timeout != "" {
		c.Images.Timeout = other.Images.Timeout
	}
	if other.Images.PlaceholderURL != "" {
		c.Images.PlaceholderURL = other.Images.PlaceholderURL
	}
	if other.Images.Width != 0 {
		c.Images.Width = other.Images.Width
	}
	if other.Images.MaxBytes != 0 {
		c.Images.MaxBytes = other.Images.MaxBytes
	}
	if other.Images.CacheSize != 0 {
		c.Images.CacheSize = other.Images.CacheSize
	}
	if other.Images.Concurrency != 0 {
		c.Images.Concurrency = other.Images.Concurrency
	}

	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Details {
		c.Output.Details = true
	}
	if other.Output.NoColor {
		c.Output.NoColor = true
	}
	if other.Output.Limit != 0 {
		c.Output.Limit = other.Output.Limit
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxFiles != 0 {
		c.Logging.MaxFiles = other.Logging.MaxFiles
	}
}

// applyEnvOverrides applies PHYSREF_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PHYSREF_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("PHYSREF_IMAGE_TIMEOUT"); v != "" {
		c.Images.Timeout = v
	}
	if v := os.Getenv("PHYSREF_PLACEHOLDER_URL"); v != "" {
		c.Images.PlaceholderURL = v
	}
	if v := os.Getenv("PHYSREF_NO_IMAGES"); v != "" {
		if off, err := strconv.ParseBool(v); err == nil {
			enabled := !off
			c.Images.Enabled = &enabled
		}
	}
	if v := os.Getenv("PHYSREF_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv("PHYSREF_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	d, err := time.ParseDuration(c.Images.Timeout)
	if err != nil {
		return fmt.Errorf("images.timeout must be a duration like 5s, got %q", c.Images.Timeout)
	}
	if d <= 0 {
		return fmt.Errorf("images.timeout must be positive, got %s", d)
	}
	if c.Images.Width <= 0 {
		return fmt.Errorf("images.width must be positive, got %d", c.Images.Width)
	}
	if c.Images.Concurrency <= 0 {
		return fmt.Errorf("images.concurrency must be positive, got %d", c.Images.Concurrency)
	}
	if c.Images.MaxBytes <= 0 {
		return fmt.Errorf("images.max_bytes must be positive, got %d", c.Images.MaxBytes)
	}
	if c.Output.Limit < 0 {
		return fmt.Errorf("output.limit must be non-negative, got %d", c.Output.Limit)
	}

	switch strings.ToLower(c.Output.Format) {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("output.format must be 'text', 'json', or 'markdown', got %s", c.Output.Format)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}
	return nil
}

// ImagesEnabled reports whether portraits should be fetched.
func (c *Config) ImagesEnabled() bool {
	return c.Images.Enabled == nil || *c.Images.Enabled
}

// ImageTimeout returns images.timeout, or the default when unparsable.
func (c *Config) ImageTimeout() time.Duration {
	d, err := time.ParseDuration(c.Images.Timeout)
	if err != nil || d <= 0 {
		return imageload.DefaultTimeout
	}
	return d
}

// ImageLoaderConfig converts the images section for imageload.New.
func (c *Config) ImageLoaderConfig() imageload.Config {
	return imageload.Config{
		Timeout:        c.ImageTimeout(),
		PlaceholderURL: c.Images.PlaceholderURL,
		Width:          c.Images.Width,
		MaxBytes:       c.Images.MaxBytes,
		CacheSize:      c.Images.CacheSize,
	}
}

// DataSource returns where the tables are read from.
func (c *Config) DataSource() store.Source {
	var fsys fs.FS = data.FS
	if c.Data.Dir != "" {
		fsys = os.DirFS(c.Data.Dir)
	}
	return store.Source{
		FS: fsys,
		Files: map[record.Domain]string{
			record.DomainFormulas:   c.Data.Formulas,
			record.DomainConstants:  c.Data.Constants,
			record.DomainScientists: c.Data.Scientists,
			record.DomainDimensions: c.Data.Dimensions,
		},
	}
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
