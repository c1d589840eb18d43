package domain

import (
	"errors"
	"fmt"
	"time"
)

// FileStatus tracks one file through a batch run.
type FileStatus string

const (
	StatusPending FileStatus = "pending"
	StatusSuccess FileStatus = "success"
	StatusFailed  FileStatus = "failed"
)

// ErrorKind says which step of the per-file work failed.
type ErrorKind string

const (
	ErrorKindTransport ErrorKind = "transport"
	ErrorKindRemote    ErrorKind = "remote"
	ErrorKindDecode    ErrorKind = "decode"
	ErrorKindArtifact  ErrorKind = "artifact"
)

// ErrTerminal is returned when an outcome that already finished is mutated again.
var ErrTerminal = errors.New("outcome already terminal")

// FileOutcome is the durable record for one processed file.
type FileOutcome struct {
	Filename  string     `json:"filename"`
	Path      string     `json:"path"`
	Status    FileStatus `json:"status"`
	Duration  float64    `json:"duration,omitempty"`
	Language  string     `json:"language,omitempty"`
	OutputDir string     `json:"output_dir,omitempty"`
	Error     string     `json:"error,omitempty"`
	ErrorKind ErrorKind  `json:"error_kind,omitempty"`
}

// NewFileOutcome starts a pending outcome for f.
func NewFileOutcome(f AudioFile) *FileOutcome {
	return &FileOutcome{
		Filename: f.Filename,
		Path:     f.Path,
		Status:   StatusPending,
	}
}

// Terminal reports whether the outcome reached success or failed.
func (o *FileOutcome) Terminal() bool {
	return o.Status == StatusSuccess || o.Status == StatusFailed
}

// Succeed moves a pending outcome to success.
func (o *FileOutcome) Succeed(duration float64, language, outputDir string) error {
	if o.Terminal() {
		return fmt.Errorf("%w: %s is %s", ErrTerminal, o.Filename, o.Status)
	}
	o.Status = StatusSuccess
	o.Duration = duration
	o.Language = language
	o.OutputDir = outputDir
	return nil
}

// Fail moves a pending outcome to failed.
func (o *FileOutcome) Fail(kind ErrorKind, msg string) error {
	if o.Terminal() {
		return fmt.Errorf("%w: %s is %s", ErrTerminal, o.Filename, o.Status)
	}
	o.Status = StatusFailed
	o.ErrorKind = kind
	o.Error = msg
	return nil
}

// Summary aggregates the outcomes of one run, in processing order.
type Summary struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Total      int           `json:"total"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Files      []FileOutcome `json:"files"`
}

// Append records a terminal outcome and recomputes the counters.
func (s *Summary) Append(o FileOutcome) error {
	if !o.Terminal() {
		return fmt.Errorf("append %s: status %q is not terminal", o.Filename, o.Status)
	}
	s.Files = append(s.Files, o)
	s.recount()
	return nil
}

func (s *Summary) recount() {
	s.Successful, s.Failed = 0, 0
	for _, f := range s.Files {
		switch f.Status {
		case StatusSuccess:
			s.Successful++
		case StatusFailed:
			s.Failed++
		}
	}
}

// Clone returns a deep copy safe to hand to other goroutines or serialize.
func (s Summary) Clone() Summary {
	out := s
	out.Files = append([]FileOutcome(nil), s.Files...)
	if out.Files == nil {
		out.Files = []FileOutcome{}
	}
	return out
}

// FailedFiles returns only the failed outcomes.
func (s Summary) FailedFiles() []FileOutcome {
	var failed []FileOutcome
	for _, f := range s.Files {
		if f.Status == StatusFailed {
			failed = append(failed, f)
		}
	}
	return failed
}

// SuccessfulFiles returns only the successful outcomes.
func (s Summary) SuccessfulFiles() []FileOutcome {
	var ok []FileOutcome
	for _, f := range s.Files {
		if f.Status == StatusSuccess {
			ok = append(ok, f)
		}
	}
	return ok
}

// TotalDuration sums the audio seconds of every successful file.
func (s Summary) TotalDuration() float64 {
	var total float64
	for _, f := range s.SuccessfulFiles() {
		total += f.Duration
	}
	return total
}
