package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zenpack-tools/zplc/internal/cli/config"
	"github.com/zenpack-tools/zplc/internal/cli/ui"
	"github.com/zenpack-tools/zplc/internal/report"
	"github.com/zenpack-tools/zplc/internal/watch"
)

// printReport runs one extraction and writes the report to stdout
func printReport(cmd *cobra.Command, opts *globalOptions, skipModel bool) (*config.Config, error) {
	res, err := runExtraction(cmd, opts)
	if err != nil {
		return nil, err
	}
	err = report.Write(cmd.OutOrStdout(), res.model, report.Options{
		Header:    res.config.Diagram.Header,
		SkipModel: skipModel,
	})
	return res.config, err
}

// watchReport prints a fresh report whenever a definition module or UI
// script under the package root changes, until ctx is cancelled or the
// process is interrupted. Extraction errors are reported and watching goes on.
func watchReport(ctx context.Context, cmd *cobra.Command, opts *globalOptions, cfg *config.Config, skipModel bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := commandLogger(cfg, opts).Named("watch")
	defer func() { _ = logger.Sync() }()

	stderr := cmd.ErrOrStderr()
	watcher, err := watch.NewFileWatcher(watch.Config{
		Root:         cfg.Root,
		Patterns:     []string{cfg.Scan.Scripts},
		RootPatterns: []string{cfg.Scan.Definitions},
		Exclude:      cfg.Scan.Exclude,
	}, func(files []string) error {
		fmt.Fprint(stderr, ui.Info(fmt.Sprintf("%d source file(s) changed, extracting again", len(files)), opts.noColor))
		if _, err := printReport(cmd, opts, skipModel); err != nil {
			ui.WriteError(stderr, ui.ErrorOptions{
				Level:   ui.ErrorLevelError,
				Context: "EXTRACTION FAILED",
				Problem: err.Error(),
				NoColor: opts.noColor,
			})
		}
		return nil
	}, logger)
	if err != nil {
		return err
	}

	if err := watcher.Start(); err != nil {
		return err
	}
	logger.Info("watching for changes", zap.String("root", cfg.Root))
	fmt.Fprint(stderr, ui.Info("Watching "+cfg.Root+" for changes (Ctrl+C to stop)", opts.noColor))

	<-ctx.Done()
	return watcher.Stop()
}
