package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

// progressObserver renders controller events as a progress bar.
type progressObserver struct {
	bar *progressbar.ProgressBar
}

func newProgressObserver(w io.Writer, total int) *progressObserver {
	return &progressObserver{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Processing lectures"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetWidth(30),
		),
	}
}

func (p *progressObserver) FileStarted(file domain.AudioFile, index, total int) {
	if total != p.bar.GetMax() {
		p.bar.ChangeMax(total)
	}
	p.bar.Describe(fmt.Sprintf("[%d/%d] %s", index, total, file.Filename))
}

func (p *progressObserver) FileFinished(outcome domain.FileOutcome) {
	_ = p.bar.Add(1)
}

func (p *progressObserver) finish() {
	_ = p.bar.Exit()
}
