package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zenpack-tools/zplc/internal/cli/config"
	"github.com/zenpack-tools/zplc/internal/cli/ui"
	"github.com/zenpack-tools/zplc/internal/extract"
	"github.com/zenpack-tools/zplc/internal/model"
	"github.com/zenpack-tools/zplc/internal/scanner"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	root    string
	verbose bool
	noColor bool
}

// result is one completed extraction
type result struct {
	config      *config.Config
	model       *model.Model
	diagnostics []extract.Diagnostic
}

// newLogger builds a development logger on stderr at the given level
func newLogger(level zapcore.Level) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// commandLogger applies --verbose over the configured level
func commandLogger(cfg *config.Config, opts *globalOptions) *zap.Logger {
	level := cfg.LogLevel()
	if opts.verbose {
		level = zapcore.DebugLevel
	}
	return newLogger(level)
}

// runExtraction loads configuration, scans the package root and runs every
// extraction pass. Diagnostics are written to stderr as warnings.
func runExtraction(cmd *cobra.Command, opts *globalOptions) (*result, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("root") {
		cfg.Root = opts.root
	}

	logger := commandLogger(cfg, opts)
	defer func() { _ = logger.Sync() }()

	scan, err := scanner.New(scanner.Config{
		Root:              cfg.Root,
		DefinitionPattern: cfg.Scan.Definitions,
		ScriptPattern:     cfg.Scan.Scripts,
		Exclude:           cfg.Scan.Exclude,
	}, logger.Named("scanner"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", cfg.Root, err)
	}

	definitions, err := scan.Definitions()
	if err != nil {
		return nil, err
	}
	scripts, err := scan.Scripts()
	if err != nil {
		return nil, err
	}

	builder := model.NewBuilder()
	extractor := extract.New(builder, extract.Options{
		AutoColumns: cfg.Panel.AutoColumns,
		Logger:      logger.Named("extract"),
	})
	if err := extractor.Files(definitions, scripts); err != nil {
		return nil, err
	}

	diagnostics := extractor.Diagnostics()
	writeDiagnostics(cmd.ErrOrStderr(), diagnostics, opts.noColor)

	return &result{
		config:      cfg,
		model:       builder.Build(),
		diagnostics: diagnostics,
	}, nil
}

func writeDiagnostics(w io.Writer, diagnostics []extract.Diagnostic, noColor bool) {
	for _, d := range diagnostics {
		location := d.File
		if d.Line > 0 {
			location = fmt.Sprintf("%s:%d", d.File, d.Line)
		}
		fmt.Fprint(w, ui.Diagnostic(d.Subject, d.Message, location, noColor))
	}
}
