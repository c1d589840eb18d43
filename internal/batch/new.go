package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/client"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/logger"
)

// Options configures a Controller.
type Options struct {
	OutputDir string
	Request   domain.Request
	// Docx also renders study_notes.docx for every successful file.
	Docx     bool
	Observer Observer
}

type implController struct {
	client    client.Client
	logger    logger.Logger
	observer  Observer
	request   domain.Request
	store     *summaryStore
	artifacts artifactWriter
	summary   domain.Summary
	stems     map[string]string
	now       func() time.Time
}

// New creates a Controller for a single run. The request is validated here so an
// invalid ratio is rejected before any file is touched.
func New(opts Options, c client.Client, log logger.Logger) (Controller, error) {
	if err := opts.Request.Validate(); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	now := time.Now
	started := now().UTC()

	return &implController{
		client:    c,
		logger:    log,
		observer:  observer,
		request:   opts.Request,
		store:     newSummaryStore(opts.OutputDir),
		artifacts: artifactWriter{outputDir: opts.OutputDir, docx: opts.Docx},
		summary: domain.Summary{
			RunID:     uuid.NewString(),
			StartedAt: started,
			UpdatedAt: started,
			Files:     []domain.FileOutcome{},
		},
		stems: make(map[string]string),
		now:   now,
	}, nil
}
