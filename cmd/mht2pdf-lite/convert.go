package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	mht2pdf "github.com/alnah/go-mht2pdf"
	"github.com/alnah/go-mht2pdf/internal/assets"
	"github.com/alnah/go-mht2pdf/internal/config"
	"github.com/alnah/go-mht2pdf/internal/fileutil"
	"github.com/alnah/go-mht2pdf/internal/hints"
	"github.com/alnah/go-mht2pdf/internal/mhtml"
)

// Sentinel errors for CLI operations.
var (
	ErrWritePDF  = errors.New("failed to write PDF file")
	ErrWriteHTML = errors.New("failed to write HTML file")
)

// filePermissions is used for files written on behalf of the user.
const filePermissions = 0o644

// outputSuffix marks PDFs produced by the browserless pipeline.
const outputSuffix = ".gompdf.pdf"

// defaultRenderTimeout bounds the whole extraction run when the config
// does not set one.
const defaultRenderTimeout = 30 * time.Second

// archiveExtractor is the interface for the extraction engine.
type archiveExtractor interface {
	Convert(ctx context.Context, input mht2pdf.ExtractInput) (*mht2pdf.ExtractResult, error)
}

// Compile-time interface implementation check.
var _ archiveExtractor = (*mht2pdf.Extractor)(nil)

// extractorFactory creates the extraction engine; tests substitute mocks.
type extractorFactory func() archiveExtractor

// newExtractor is the production factory.
func newExtractor() archiveExtractor {
	return mht2pdf.NewExtractor()
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, flags *convertFlags, factory extractorFactory, env *Environment) error {
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

	data, name, err := resolveInput(args, cfg)
	if err != nil {
		return err
	}

	outputPath := resolveOutputPath(flags.out, name, cfg)

	// The engine has no timeout of its own; the context bounds the run.
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout(defaultRenderTimeout))
	defer cancel()

	res, err := factory().Convert(ctx, mht2pdf.ExtractInput{
		Archive:     data,
		Name:        name,
		KeepScratch: flags.keepAssets,
	})
	if err != nil {
		return err
	}

	if err := writePDF(outputPath, res.PDF); err != nil {
		return err
	}

	if flags.html {
		htmlPath := strings.TrimSuffix(outputPath, ".pdf") + ".html"
		// #nosec G306 -- HTML files are meant to be readable
		if err := os.WriteFile(htmlPath, []byte(res.HTML), filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteHTML, err)
		}
	}

	if flags.validate || cfg.Output.Validate {
		if err := mht2pdf.ValidatePDF(outputPath); err != nil {
			return err
		}
	}

	report(outputPath, res, start, flags, env)
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

// resolveInput reads the archive named by args or config; with neither it
// falls back to the embedded sample, which needs no file on disk.
func resolveInput(args []string, cfg *config.Config) ([]byte, string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if cfg.Input.Default != "" {
		path = cfg.Input.Default
	}
	if path == "" {
		return assets.SampleMHT(), assets.SampleName, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolving input path: %w", err)
	}
	data, err := os.ReadFile(abs) // #nosec G304 -- user-provided path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", mht2pdf.ErrInputNotFound, abs)
		}
		return nil, "", fmt.Errorf("reading input archive: %w", err)
	}
	return data, filepath.Base(abs), nil
}

// resolveOutputPath determines the PDF output path.
func resolveOutputPath(flagOut, inputName string, cfg *config.Config) string {
	if flagOut != "" {
		return flagOut
	}
	return filepath.Join(cfg.Output.Dir, fileutil.Stem(inputName)+outputSuffix)
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

// report prints the success line, plus extraction details when verbose.
func report(outputPath string, res *mht2pdf.ExtractResult, start time.Time, flags *convertFlags, env *Environment) {
	if flags.quiet {
		return
	}
	fmt.Fprintf(env.Stdout, "PDF written: %s (%d bytes)\n", outputPath, len(res.PDF))
	if res.ScratchDir != "" {
		fmt.Fprintf(env.Stdout, "Assets kept in: %s\n", res.ScratchDir)
	}
	if !flags.verbose {
		return
	}
	if n, err := mht2pdf.PageCount(outputPath); err == nil {
		fmt.Fprintf(env.Stdout, "Pages: %d\n", n)
	}
	fmt.Fprintf(env.Stderr, "Extracted %d asset(s)\n", len(res.Assets))
	fmt.Fprintf(env.Stderr, "Completed in %v\n", env.Now().Sub(start).Round(time.Millisecond))
}

// hintFor returns a remediation hint for known failure modes.
func hintFor(err error) string {
	switch {
	case errors.Is(err, mht2pdf.ErrInputNotFound):
		return hints.ForInputNotFound()
	case errors.Is(err, mhtml.ErrParse), errors.Is(err, mhtml.ErrNoHTMLPart):
		return hints.ForArchiveParse()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrWritePDF), errors.Is(err, ErrWriteHTML):
		return hints.ForOutputDirectory()
	}
	return ""
}
