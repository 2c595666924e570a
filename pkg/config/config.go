package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultFileName = "config.yaml"

// Config captures the user-adjustable knobs for screenshot backups.
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Capture   CaptureConfig   `yaml:"capture"`
	Retention RetentionConfig `yaml:"retention"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Source indicates where the configuration originated (defaults or a file path).
	Source string `yaml:"-"`
}

// PathsConfig controls filesystem locations used by the CLI.
type PathsConfig struct {
	BackupDir string `yaml:"backup_dir"`
}

// CaptureConfig selects what gets captured and how files are named.
type CaptureConfig struct {
	// Display picks a single display index; -1 captures the union of all
	// active displays.
	Display    int    `yaml:"display"`
	FilePrefix string `yaml:"file_prefix"`
}

// RetentionConfig bounds how many screenshots the clean command keeps.
// Zero values disable the corresponding limit.
type RetentionConfig struct {
	KeepLast   int `yaml:"keep_last"`
	MaxAgeDays int `yaml:"max_age_days"`
}

// LoggingConfig defines log verbosity and formatting.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the baseline configuration used when no overrides are supplied.
func Default() Config {
	return Config{
		Paths: PathsConfig{
			BackupDir: "backups/screenshots",
		},
		Capture: CaptureConfig{
			Display:    -1,
			FilePrefix: "screenshot",
		},
		Retention: RetentionConfig{
			KeepLast:   0,
			MaxAgeDays: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Source: "<defaults>",
	}
}

// Load reads configuration from disk if present, otherwise returning defaults.
// When path is empty, the loader attempts to read ./config.yaml but tolerates a missing file.
func Load(path string) (Config, error) {
	cfg := Default()

	candidate := strings.TrimSpace(path)
	explicit := candidate != ""
	if !explicit {
		candidate = DefaultFileName
	}

	data, err := os.ReadFile(candidate)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if explicit {
				return cfg, fmt.Errorf("config file %q not found", candidate)
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file %q: %w", candidate, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config %q: %w", candidate, err)
	}
	cfg.Source = candidate
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate ensures essential configuration values are present and sensible.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		return errors.New("paths.backup_dir must not be empty")
	}

	if c.Capture.Display < -1 {
		return errors.New("capture.display must be -1 (all displays) or a display index")
	}
	prefix := strings.TrimSpace(c.Capture.FilePrefix)
	if prefix == "" {
		return errors.New("capture.file_prefix must not be empty")
	}
	if strings.ContainsAny(prefix, `/\`) {
		return errors.New("capture.file_prefix must not contain path separators")
	}

	if c.Retention.KeepLast < 0 {
		return errors.New("retention.keep_last must not be negative")
	}
	if c.Retention.MaxAgeDays < 0 {
		return errors.New("retention.max_age_days must not be negative")
	}

	if _, err := NormalizeLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := NormalizeFormat(c.Logging.Format); err != nil {
		return err
	}

	return nil
}

func (c *Config) normalize() {
	c.Paths.BackupDir = strings.TrimSpace(c.Paths.BackupDir)
	c.Capture.FilePrefix = strings.TrimSpace(c.Capture.FilePrefix)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// NormalizeLogLevel validates a log level string and returns its canonical form.
func NormalizeLogLevel(level string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "debug", "info", "warn", "error":
		return normalized, nil
	case "":
		return "info", nil
	default:
		return "", fmt.Errorf("unsupported log level %q", level)
	}
}

// NormalizeFormat validates a log format string and returns its canonical form.
func NormalizeFormat(format string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case "json", "console", "text":
		return normalized, nil
	case "":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported log format %q", format)
	}
}
