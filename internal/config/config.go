package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// maxInputSize limits YAML input to prevent memory exhaustion (1MB).
const maxInputSize = 1 << 20

// Field length limits for untrusted config files.
const (
	MaxPathLength        = 4096 // Filesystem path limit
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxTimeoutLength     = 20   // "30s", "2m30s"
)

// Config holds all configuration for archive conversion.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Page   PageConfig   `yaml:"page"`
	Render RenderConfig `yaml:"render"`
}

// InputConfig defines input source options.
type InputConfig struct {
	Default string `yaml:"default"` // Archive converted when no input is given (empty = bundled sample)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // Directory for derived output paths (default: "out")
	Validate bool   `yaml:"validate"` // Structurally validate the PDF after writing
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// RenderConfig defines rendering engine options.
type RenderConfig struct {
	Timeout string `yaml:"timeout"` // Per-document budget in Go duration form (default: "30s")
}

// Validate checks field lengths and value forms. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.default", c.Input.Default, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("page.margin: must not be negative, got %.2f", c.Page.Margin)
	}
	if err := validateFieldLength("render.timeout", c.Render.Timeout, MaxTimeoutLength); err != nil {
		return err
	}
	if c.Render.Timeout != "" {
		if _, err := time.ParseDuration(c.Render.Timeout); err != nil {
			return fmt.Errorf("render.timeout: invalid duration %q", c.Render.Timeout)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Timeout returns the configured render budget, or fallback when the field
// is unset or unparseable.
func (c *Config) Timeout(fallback time.Duration) time.Duration {
	if c.Render.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return fallback
	}
	return d
}

// DefaultConfig returns the configuration used when no file is loaded.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Default: ""},
		Output: OutputConfig{Dir: "out"},
		Page:   PageConfig{Size: "letter", Orientation: "portrait", Margin: 0.5},
		Render: RenderConfig{Timeout: "30s"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their defaults.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// unmarshalStrict parses YAML, rejecting unknown fields and oversized input.
func unmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return errors.New("empty config data")
	}
	if len(data) > maxInputSize {
		return fmt.Errorf("input exceeds maximum size: %d bytes (max %d)", len(data), maxInputSize)
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mht2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mht2pdf", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
