package batch

import (
	"context"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

// Controller drives one batch run: files are submitted one at a time and the
// summary on disk is rewritten after every file reaches a terminal status.
type Controller interface {
	// Run processes files in order and returns the summary so far. Calling Run
	// again extends the same run. On interruption it returns ErrInterrupted with
	// the snapshot of every completed file.
	Run(ctx context.Context, files []domain.AudioFile) (domain.Summary, error)
	// Summary returns a copy of the current aggregate.
	Summary() domain.Summary
	// SummaryPath is the location of the persisted summary file.
	SummaryPath() string
}

// Observer receives per-file progress events.
type Observer interface {
	FileStarted(file domain.AudioFile, index, total int)
	FileFinished(outcome domain.FileOutcome)
}

type nopObserver struct{}

func (nopObserver) FileStarted(domain.AudioFile, int, int) {}
func (nopObserver) FileFinished(domain.FileOutcome)        {}
