package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-mht2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
// Both tools share the MHT2PDF_* namespace; this one consumes the
// subset that applies to the browserless pipeline.
type envConfig struct {
	ConfigPath string        // MHT2PDF_CONFIG: config file path or name
	Input      string        // MHT2PDF_INPUT: default input archive
	OutputDir  string        // MHT2PDF_OUTPUT_DIR: default output directory
	Timeout    time.Duration // MHT2PDF_TIMEOUT: extraction budget
}

// knownEnvVars lists valid MHT2PDF_* environment variables.
// Page variables belong to mht2pdf but are recognized here so that a
// shared shell profile doesn't trip the typo warning.
var knownEnvVars = map[string]bool{
	"MHT2PDF_CONFIG":      true,
	"MHT2PDF_INPUT":       true,
	"MHT2PDF_OUTPUT_DIR":  true,
	"MHT2PDF_PAGE_SIZE":   true,
	"MHT2PDF_ORIENTATION": true,
	"MHT2PDF_TIMEOUT":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid durations are ignored rather than treated as errors.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MHT2PDF_CONFIG"),
		Input:      os.Getenv("MHT2PDF_INPUT"),
		OutputDir:  os.Getenv("MHT2PDF_OUTPUT_DIR"),
	}

	if timeout := os.Getenv("MHT2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MHT2PDF_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MHT2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values onto cfg.
// Environment variables beat the config file; CLI flags are merged
// later and beat both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" {
		cfg.Input.Default = env.Input
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Timeout > 0 {
		cfg.Render.Timeout = env.Timeout.String()
	}
}
