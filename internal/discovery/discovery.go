package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

// ErrNoAudioFiles is returned by callers that reject an empty discovery result.
var ErrNoAudioFiles = errors.New("no audio files found")

// supportedFormats lists the recognized audio extensions, lower-case.
var supportedFormats = []string{".mp3", ".wav", ".m4a", ".flac", ".ogg", ".aac", ".wma"}

// SupportedFormats returns a copy of the recognized extensions.
func SupportedFormats() []string {
	return append([]string(nil), supportedFormats...)
}

// IsAudioFile checks if the path has a recognized audio extension, in any case.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// Find resolves files and directories into a deduplicated, sorted list of audio files.
// Directories are scanned one level deep. Paths that do not exist are skipped;
// an empty result is returned as such and left to the caller to reject.
func Find(paths []string) []domain.AudioFile {
	seen := make(map[string]domain.AudioFile)

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			if info.Mode().IsRegular() && IsAudioFile(p) {
				add(seen, p)
			}
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			continue
		}
		for _, e := range entries {
			child := filepath.Join(p, e.Name())
			if !IsAudioFile(child) || !isRegular(e, child) {
				continue
			}
			add(seen, child)
		}
	}

	files := make([]domain.AudioFile, 0, len(seen))
	for _, f := range seen {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files
}

func add(seen map[string]domain.AudioFile, path string) {
	f := domain.NewAudioFile(path)
	if resolved, err := filepath.EvalSymlinks(f.Path); err == nil {
		f.Path = resolved
	}
	seen[f.Path] = f
}

// isRegular follows symlinks so a linked recording is still picked up.
func isRegular(e os.DirEntry, path string) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
