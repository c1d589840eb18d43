package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/batch"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/client"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/config"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/discovery"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/logger"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/report"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/watcher"
)

func runBatch(cmd *cobra.Command, opts *options, args []string, ios streams) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: ios.errOut,
	})

	fmt.Fprintln(ios.out, "Searching for audio files...")
	files := discovery.Find(args)
	watchDirs := directories(args)

	if opts.watch && len(watchDirs) == 0 {
		return fmt.Errorf("--watch needs at least one directory")
	}
	if len(files) == 0 && !opts.watch {
		return discovery.ErrNoAudioFiles
	}

	printPlan(ios, cfg, files)

	if !opts.yes {
		ok, err := confirm(ios.in, ios.out, "\nProceed with batch processing? [y/N]: ")
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(ios.out, "Cancelled.")
			return nil
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := newProgressObserver(ios.out, len(files))
	ctrl, err := batch.New(batch.Options{
		OutputDir: cfg.Paths.Output,
		Request:   cfg.ProcessingRequest(),
		Docx:      cfg.Artifacts.Docx,
		Observer:  progress,
	}, client.New(client.Options{BaseURL: cfg.Server.URL, Timeout: cfg.Server.Timeout}, log), log)
	if err != nil {
		return err
	}

	fmt.Fprintln(ios.out, "\nStarting batch processing...")
	start := time.Now()

	summary, err := ctrl.Run(ctx, files)
	if err == nil && opts.watch {
		summary, err = watchForRecordings(ctx, ctrl, watchDirs, log)
	}
	progress.finish()

	if errors.Is(err, batch.ErrInterrupted) {
		fmt.Fprintln(ios.out, "\n\nProcessing interrupted by user")
		fmt.Fprintf(ios.out, "Partial results saved to: %s\n", cfg.Paths.Output)
		fmt.Fprintf(ios.out, "Summary file: %s\n", ctrl.SummaryPath())
		return err
	}
	if err != nil {
		return fmt.Errorf("fatal error: %w", err)
	}

	if err := report.Render(ios.out, summary); err != nil {
		return err
	}
	fmt.Fprintf(ios.out, "\nProcessing completed in %.1f seconds\n", time.Since(start).Seconds())
	fmt.Fprintf(ios.out, "\nResults saved to: %s\n", cfg.Paths.Output)
	fmt.Fprintf(ios.out, "Summary file: %s\n", ctrl.SummaryPath())
	return nil
}

// watchForRecordings feeds newly created recordings to the controller until ctx is
// cancelled. Stopping while idle ends the run normally.
func watchForRecordings(ctx context.Context, ctrl batch.Controller, dirs []string, log logger.Logger) (domain.Summary, error) {
	var abandoned error
	w, err := watcher.New(dirs, func(ctx context.Context, path string) error {
		_, err := ctrl.Run(ctx, []domain.AudioFile{domain.NewAudioFile(path)})
		if errors.Is(err, batch.ErrInterrupted) {
			abandoned = err
		}
		return err
	}, log, watcher.DefaultSettle)
	if err != nil {
		return ctrl.Summary(), err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return ctrl.Summary(), err
	}
	if abandoned != nil {
		return ctrl.Summary(), abandoned
	}
	return ctrl.Summary(), nil
}

func printPlan(ios streams, cfg *config.Config, files []domain.AudioFile) {
	fmt.Fprintf(ios.out, "Found %d audio file(s)\n", len(files))
	for _, f := range files {
		fmt.Fprintf(ios.out, "  - %s\n", f.Filename)
	}

	fmt.Fprintln(ios.out, "\nSettings:")
	fmt.Fprintf(ios.out, "  API URL: %s\n", cfg.Server.URL)
	fmt.Fprintf(ios.out, "  Ratio: %g\n", cfg.Request.Ratio)
	if subject := cfg.ProcessingRequest().Subject; subject != "" {
		fmt.Fprintf(ios.out, "  Subject: %s\n", subject)
	}
	fmt.Fprintf(ios.out, "  Output: %s\n", cfg.Paths.Output)
}

func directories(paths []string) []string {
	var dirs []string
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs = append(dirs, filepath.Clean(p))
		}
	}
	return dirs
}
