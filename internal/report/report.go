// Package report renders the end-of-run summary for humans.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

const rule = "============================================================"

// Render writes the report for s to w.
func Render(w io.Writer, s domain.Summary) error {
	ew := &errWriter{w: w}

	ew.printf("\n%s\n", rule)
	ew.printf("BATCH PROCESSING SUMMARY\n")
	ew.printf("%s\n", rule)
	if s.RunID != "" {
		ew.printf("Run: %s\n", s.RunID)
	}
	ew.printf("Total files: %d\n", s.Total)
	ew.printf("Successful:  %d\n", s.Successful)
	ew.printf("Failed:      %d\n", s.Failed)
	if pending := s.Total - len(s.Files); pending > 0 {
		ew.printf("Not processed: %d\n", pending)
	}

	if failed := s.FailedFiles(); len(failed) > 0 {
		ew.printf("\nFailed files:\n")
		for _, f := range failed {
			msg := f.Error
			if msg == "" {
				msg = "Unknown error"
			}
			if f.ErrorKind != "" {
				ew.printf("  - %s [%s]: %s\n", f.Filename, f.ErrorKind, msg)
			} else {
				ew.printf("  - %s: %s\n", f.Filename, msg)
			}
		}
	}

	if ok := s.SuccessfulFiles(); len(ok) > 0 {
		ew.printf("\nSuccessful files:\n")
		for _, f := range ok {
			ew.printf("  - %s (%.1fs)\n", f.Filename, f.Duration)
		}
	}

	if total := s.TotalDuration(); total > 0 {
		ew.printf("\nTotal audio processed: %.1f seconds (%.1f minutes)\n", total, total/60)
	}

	return ew.err
}

// String renders the report into a string.
func String(s domain.Summary) string {
	var b strings.Builder
	_ = Render(&b, s)
	return b.String()
}

// errWriter keeps the first write error and skips the rest.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
