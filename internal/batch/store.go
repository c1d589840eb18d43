package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

// SummaryFilename is the aggregate summary rewritten after every file.
const SummaryFilename = "_batch_summary.json"

// summaryStore persists the Summary snapshot for one output directory.
type summaryStore struct {
	path string
}

func newSummaryStore(outputDir string) *summaryStore {
	return &summaryStore{path: filepath.Join(outputDir, SummaryFilename)}
}

// save replaces the summary file atomically: readers see the previous snapshot or
// the new one, never a partial write.
func (s *summaryStore) save(summary domain.Summary) error {
	data, err := json.MarshalIndent(summary.Clone(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	data = append(data, '\n')

	return writeFileAtomic(s.path, data)
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadSummary reads a summary file written by a previous or running batch.
func LoadSummary(path string) (domain.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("read summary: %w", err)
	}

	var summary domain.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return domain.Summary{}, fmt.Errorf("parse summary: %w", err)
	}
	return summary, nil
}
