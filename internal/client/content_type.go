package client

import (
	"io"

	"github.com/dhowden/tag"
)

// DefaultContentType is sent when neither the header nor the extension is recognized.
const DefaultContentType = "audio/mpeg"

var extensionTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".aac":  "audio/aac",
	".wma":  "audio/x-ms-wma",
}

// detectContentType sniffs the container from the file header and falls back to the
// extension. The reader is rewound before returning.
func detectContentType(r io.ReadSeeker, ext string) string {
	_, fileType, err := tag.Identify(r)
	if _, seekErr := r.Seek(0, io.SeekStart); seekErr != nil {
		return extensionType(ext)
	}
	if err == nil {
		if ct, ok := fileTypeContentType(fileType); ok {
			return ct
		}
	}
	return extensionType(ext)
}

func fileTypeContentType(ft tag.FileType) (string, bool) {
	switch ft {
	case tag.MP3:
		return "audio/mpeg", true
	case tag.M4A, tag.M4B, tag.M4P, tag.ALAC:
		return "audio/mp4", true
	case tag.FLAC:
		return "audio/flac", true
	case tag.OGG:
		return "audio/ogg", true
	default:
		return "", false
	}
}

func extensionType(ext string) string {
	if ct, ok := extensionTypes[ext]; ok {
		return ct
	}
	return DefaultContentType
}
