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
type envConfig struct {
	ConfigPath  string        // MHT2PDF_CONFIG: config file path or name
	Input       string        // MHT2PDF_INPUT: default input archive
	OutputDir   string        // MHT2PDF_OUTPUT_DIR: default output directory
	PageSize    string        // MHT2PDF_PAGE_SIZE: letter, a4, legal
	Orientation string        // MHT2PDF_ORIENTATION: portrait, landscape
	Timeout     time.Duration // MHT2PDF_TIMEOUT: render timeout
}

// knownEnvVars lists valid MHT2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MHT2PDF_CONFIG":      true,
	"MHT2PDF_INPUT":       true,
	"MHT2PDF_OUTPUT_DIR":  true,
	"MHT2PDF_PAGE_SIZE":   true,
	"MHT2PDF_ORIENTATION": true,
	"MHT2PDF_TIMEOUT":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MHT2PDF_* values. Invalid
// durations are ignored rather than treated as errors.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("MHT2PDF_CONFIG"),
		Input:       os.Getenv("MHT2PDF_INPUT"),
		OutputDir:   os.Getenv("MHT2PDF_OUTPUT_DIR"),
		PageSize:    os.Getenv("MHT2PDF_PAGE_SIZE"),
		Orientation: os.Getenv("MHT2PDF_ORIENTATION"),
	}

	if timeout := os.Getenv("MHT2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MHT2PDF_* variables.
// Helps catch typos like MHT2PDF_PAGESIZE instead of MHT2PDF_PAGE_SIZE.
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
// later and beat both. Page values set here are still validated by
// buildPageSettings.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" {
		cfg.Input.Default = env.Input
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Orientation != "" {
		cfg.Page.Orientation = env.Orientation
	}
	if env.Timeout > 0 {
		cfg.Render.Timeout = env.Timeout.String()
	}
}
