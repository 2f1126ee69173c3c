package platform

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SupportedAudioExtensions mirrors the server's upload allowlist
var SupportedAudioExtensions = []string{".mp3", ".wav", ".m4a", ".flac", ".ogg", ".aac"}

// IsSupportedAudio reports whether the file extension is on the server's
// allowlist. The server rejects anything else with a 400, so we reject the
// same set before spending bandwidth on the upload.
func IsSupportedAudio(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedAudioExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// DetectMimeType sniffs the file content and returns its MIME type.
// Falls back to the extension-derived type when the file cannot be read.
func DetectMimeType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".mp3":
			return "audio/mpeg"
		case ".wav":
			return "audio/wav"
		case ".flac":
			return "audio/flac"
		case ".ogg":
			return "audio/ogg"
		case ".m4a":
			return "audio/mp4"
		case ".aac":
			return "audio/aac"
		default:
			return "application/octet-stream"
		}
	}
	return mtype.String()
}
