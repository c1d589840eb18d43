package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/client"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

// ErrInterrupted is returned when the run context is cancelled mid-batch.
var ErrInterrupted = errors.New("batch interrupted")

// Run processes files strictly one after another.
func (c *implController) Run(ctx context.Context, files []domain.AudioFile) (domain.Summary, error) {
	if err := os.MkdirAll(filepath.Dir(c.store.path), 0755); err != nil {
		return c.Summary(), fmt.Errorf("create output directory: %w", err)
	}

	c.summary.Total += len(files)
	if err := c.persist(); err != nil {
		return c.Summary(), err
	}

	c.logger.Info(ctx, "Run %s: %d file(s) queued, output in %s", c.summary.RunID, len(files), filepath.Dir(c.store.path))

	for _, file := range files {
		if ctx.Err() != nil {
			return c.Summary(), c.interrupted(ctx)
		}

		index := len(c.summary.Files) + 1
		c.logger.Info(ctx, "[%d/%d] Processing: %s", index, c.summary.Total, file.Filename)
		c.observer.FileStarted(file, index, c.summary.Total)

		outcome, ok := c.process(ctx, file)
		if !ok {
			c.logger.Warn(ctx, "Abandoned in-flight file %s", file.Filename)
			return c.Summary(), c.interrupted(ctx)
		}

		if err := c.summary.Append(outcome); err != nil {
			return c.Summary(), err
		}
		if err := c.persist(); err != nil {
			return c.Summary(), err
		}

		if outcome.Status == domain.StatusSuccess {
			c.logger.Info(ctx, "[DONE] %s -> %s (%.1fs, %s)", file.Filename, outcome.OutputDir, outcome.Duration, outcome.Language)
		} else {
			c.logger.Error(ctx, "[FAILED] %s (%s): %s", file.Filename, outcome.ErrorKind, outcome.Error)
		}
		c.observer.FileFinished(outcome)
	}

	return c.Summary(), nil
}

// process runs one file to a terminal outcome. It returns false when the run
// context was cancelled while the file was in flight; that outcome is discarded.
func (c *implController) process(ctx context.Context, file domain.AudioFile) (domain.FileOutcome, bool) {
	outcome := domain.NewFileOutcome(file)

	res, err := c.client.ProcessFile(ctx, file, c.request)
	if err != nil {
		if ctx.Err() != nil {
			return *outcome, false
		}
		c.fail(ctx, outcome, classify(err), err.Error())
		return *outcome, true
	}

	if !res.OK() {
		c.fail(ctx, outcome, domain.ErrorKindRemote, res.Message)
		return *outcome, true
	}

	c.checkStem(ctx, file)

	dir, err := c.artifacts.write(file, *res.Output, res.Raw)
	if err != nil {
		c.fail(ctx, outcome, domain.ErrorKindArtifact, "save artifacts: "+err.Error())
		return *outcome, true
	}

	if err := outcome.Succeed(res.Output.Duration, res.Output.Language, dir); err != nil {
		c.logger.Error(ctx, "Record success for %s: %v", file.Filename, err)
	}
	return *outcome, true
}

func (c *implController) fail(ctx context.Context, o *domain.FileOutcome, kind domain.ErrorKind, msg string) {
	if err := o.Fail(kind, msg); err != nil {
		c.logger.Error(ctx, "Record failure for %s: %v", o.Filename, err)
	}
}

// checkStem warns when two files of the run share an output directory.
func (c *implController) checkStem(ctx context.Context, file domain.AudioFile) {
	stem := file.Stem()
	if prev, ok := c.stems[stem]; ok && prev != file.Path {
		c.logger.Warn(ctx, "%s shares output directory %q with %s and will overwrite it", file.Filename, stem, filepath.Base(prev))
	}
	c.stems[stem] = file.Path
}

func (c *implController) persist() error {
	c.summary.UpdatedAt = c.now().UTC()
	if err := c.store.save(c.summary); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}

func (c *implController) interrupted(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
}

func (c *implController) Summary() domain.Summary {
	return c.summary.Clone()
}

func (c *implController) SummaryPath() string {
	return c.store.path
}

// classify maps a client error onto the per-file error kind.
func classify(err error) domain.ErrorKind {
	var decodeErr *client.DecodeError
	if errors.As(err, &decodeErr) {
		return domain.ErrorKindDecode
	}
	return domain.ErrorKindTransport
}
