package domain

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

const (
	MinRatio     = 0.05
	MaxRatio     = 1.0
	DefaultRatio = 0.15
)

// ErrInvalidRatio is returned when a ratio falls outside [MinRatio, MaxRatio].
var ErrInvalidRatio = errors.New("ratio must be between 0.05 and 1.0")

// AudioFile is one discovered recording. Identity is the cleaned absolute path.
type AudioFile struct {
	Path      string
	Filename  string
	Extension string
}

// NewAudioFile builds an AudioFile from a filesystem path.
func NewAudioFile(path string) AudioFile {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.Clean(path)
	name := filepath.Base(path)

	return AudioFile{
		Path:      path,
		Filename:  name,
		Extension: strings.ToLower(filepath.Ext(name)),
	}
}

// Stem returns the filename without its extension.
func (f AudioFile) Stem() string {
	return strings.TrimSuffix(f.Filename, filepath.Ext(f.Filename))
}

// Request holds the parameters applied to every file of a run.
type Request struct {
	Ratio   float64
	Subject string
}

func (r Request) Validate() error {
	if math.IsNaN(r.Ratio) || r.Ratio < MinRatio || r.Ratio > MaxRatio {
		return fmt.Errorf("%w: got %g", ErrInvalidRatio, r.Ratio)
	}
	return nil
}
