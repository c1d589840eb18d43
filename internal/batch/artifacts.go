package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/client"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

// Per-file artifact names under <outputDir>/<stem>/.
const (
	TranscriptFilename = "transcript.txt"
	NotesFilename      = "study_notes.md"
	NotesDocxFilename  = "study_notes.docx"
	ResultFilename     = "full_result.json"
)

// artifactWriter saves the outputs of one successful pipeline call.
type artifactWriter struct {
	outputDir string
	docx      bool
}

// write creates <outputDir>/<stem> and saves every artifact into it, returning the directory.
func (w artifactWriter) write(file domain.AudioFile, out client.Output, raw json.RawMessage) (string, error) {
	stem := file.Stem()
	dir := filepath.Join(w.outputDir, stem)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, TranscriptFilename), []byte(out.Transcript), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", TranscriptFilename, err)
	}

	notes := fmt.Sprintf("# %s\n\n%s", stem, out.Summary)
	if err := os.WriteFile(filepath.Join(dir, NotesFilename), []byte(notes), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", NotesFilename, err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return "", fmt.Errorf("format %s: %w", ResultFilename, err)
	}
	pretty.WriteByte('\n')
	if err := os.WriteFile(filepath.Join(dir, ResultFilename), pretty.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", ResultFilename, err)
	}

	if w.docx {
		if err := writeNotesDocx(stem, out.Summary, filepath.Join(dir, NotesDocxFilename)); err != nil {
			return "", fmt.Errorf("write %s: %w", NotesDocxFilename, err)
		}
	}

	return dir, nil
}
