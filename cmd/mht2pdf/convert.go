package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	mht2pdf "github.com/alnah/go-mht2pdf"
	"github.com/alnah/go-mht2pdf/internal/assets"
	"github.com/alnah/go-mht2pdf/internal/config"
	"github.com/alnah/go-mht2pdf/internal/fileutil"
	"github.com/alnah/go-mht2pdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrBadTimeout = errors.New("invalid timeout")
	ErrWritePDF   = errors.New("failed to write PDF file")
)

// filePermissions is used for PDFs written on behalf of the user.
const filePermissions = 0o644

// outputSuffix marks PDFs produced by the browser-backed pipeline.
const outputSuffix = ".chrome.pdf"

// defaultRenderTimeout applies when neither flag nor config set one.
const defaultRenderTimeout = 30 * time.Second

// archiveConverter is the interface for the conversion engine.
type archiveConverter interface {
	ConvertFile(ctx context.Context, archivePath string, page *mht2pdf.PageSettings) ([]byte, error)
	Close() error
}

// Compile-time interface implementation check.
var _ archiveConverter = (*mht2pdf.Converter)(nil)

// converterFactory creates the conversion engine; tests substitute mocks.
type converterFactory func(timeout time.Duration) archiveConverter

// newConverter is the production factory.
func newConverter(timeout time.Duration) archiveConverter {
	return mht2pdf.NewConverter(mht2pdf.WithTimeout(timeout))
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, flags *convertFlags, factory converterFactory, env *Environment) error {
	start := env.Now()

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	configName := flags.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := loadConfig(configName)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	inputPath, cleanup, err := resolveInput(args, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	outputPath := resolveOutputPath(flags.out, inputPath, cfg)

	page, err := buildPageSettings(flags, cfg)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}

	conv := factory(timeout)
	defer conv.Close()

	pdfBytes, err := conv.ConvertFile(ctx, inputPath, page)
	if err != nil {
		return err
	}

	if err := writePDF(outputPath, pdfBytes); err != nil {
		return err
	}

	if flags.validate || cfg.Output.Validate {
		if err := mht2pdf.ValidatePDF(outputPath); err != nil {
			return err
		}
	}

	report(outputPath, len(pdfBytes), start, flags, env)
	return nil
}

// loadConfig loads the named config, or defaults when none is named.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveInput determines the archive path from args, config, or the
// bundled sample. The cleanup removes any temp file it materialized.
func resolveInput(args []string, cfg *config.Config) (string, func(), error) {
	noop := func() {}

	if len(args) > 0 {
		return args[0], noop, nil
	}
	if cfg.Input.Default != "" {
		return cfg.Input.Default, noop, nil
	}

	// No input given: materialize the bundled sample so the browser has a
	// real file to load.
	dir, err := os.MkdirTemp("", "mht2pdf_sample_")
	if err != nil {
		return "", noop, fmt.Errorf("creating sample directory: %w", err)
	}
	path, err := assets.WriteSample(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", noop, err
	}
	return path, func() { _ = os.RemoveAll(dir) }, nil
}

// resolveOutputPath determines the PDF output path.
func resolveOutputPath(flagOut, inputPath string, cfg *config.Config) string {
	if flagOut != "" {
		return flagOut
	}
	return filepath.Join(cfg.Output.Dir, fileutil.Stem(inputPath)+outputSuffix)
}

// buildPageSettings merges page flags over config values. CLI wins.
func buildPageSettings(flags *convertFlags, cfg *config.Config) (*mht2pdf.PageSettings, error) {
	ps := &mht2pdf.PageSettings{
		Size:        cfg.Page.Size,
		Orientation: cfg.Page.Orientation,
		Margin:      cfg.Page.Margin,
	}

	// CLI flags override config
	if flags.pageSize != "" {
		ps.Size = flags.pageSize
	}
	if flags.orientation != "" {
		ps.Orientation = flags.orientation
	}
	if flags.margin > 0 {
		ps.Margin = flags.margin
	}

	// Apply defaults
	if ps.Size == "" {
		ps.Size = mht2pdf.PageSizeLetter
	}
	if ps.Orientation == "" {
		ps.Orientation = mht2pdf.OrientationPortrait
	}
	if ps.Margin == 0 {
		ps.Margin = mht2pdf.DefaultMargin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// resolveTimeout determines the render timeout from flag or config.
func resolveTimeout(flagTimeout string, cfg *config.Config) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadTimeout, flagTimeout)
		}
		return d, nil
	}
	return cfg.Timeout(defaultRenderTimeout), nil
}

// writePDF writes data to path, creating parent directories.
func writePDF(path string, data []byte) error {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return err
	}
	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

// report prints the success line, plus page count and timing when verbose.
func report(outputPath string, size int, start time.Time, flags *convertFlags, env *Environment) {
	if flags.quiet {
		return
	}
	fmt.Fprintf(env.Stdout, "PDF written: %s (%d bytes)\n", outputPath, size)
	if !flags.verbose {
		return
	}
	if n, err := mht2pdf.PageCount(outputPath); err == nil {
		fmt.Fprintf(env.Stdout, "Pages: %d\n", n)
	}
	fmt.Fprintf(env.Stderr, "Completed in %v\n", env.Now().Sub(start).Round(time.Millisecond))
}

// hintFor returns a remediation hint for known failure modes.
func hintFor(err error) string {
	switch {
	case errors.Is(err, mht2pdf.ErrInputNotFound):
		return hints.ForInputNotFound()
	case errors.Is(err, mht2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mht2pdf.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrWritePDF):
		return hints.ForOutputDirectory()
	}
	return ""
}
