package model

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// UploadFloorPercent is the minimum percent displayed once an upload has
// started, so the progress bar is visibly non-empty before the first
// transfer event arrives.
const UploadFloorPercent = 5

// User-facing messages for the non-terminal phases
const (
	MessageUploading  = "Uploading…"
	MessageProcessing = "Processing… this may take a while."
	MessageCompleted  = "Separated successfully."
)

// SeparationJob represents a single upload-and-separate lifecycle
type SeparationJob struct {
	ID         string
	FileName   string  // original file name of the selected audio
	FilePath   string  // local path to the selected audio
	FileSize   int64   // file size in bytes
	MimeType   string  // sniffed MIME type (e.g., "audio/mpeg")
	Phase      Phase
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	Message    string  // current phase message shown on the status line
	LastError  string  // last error message if any
	Result     *SeparationResult
	StartedAt  time.Time // when upload started
	FinishedAt time.Time // when the job reached a terminal phase
}

// BeginUpload moves the job from Idle to Uploading at the floor percent.
func (j *SeparationJob) BeginUpload() {
	j.Phase = PhaseUploading
	j.Percent = UploadFloorPercent
	j.Progress = float64(UploadFloorPercent) / 100.0
	j.Message = MessageUploading
	j.LastError = ""
	j.StartedAt = time.Now()
}

// ApplyTransferProgress folds a byte-level transfer event into the job state.
// Events with an unknown total are ignored. Percent never regresses below its
// current value or the upload floor. Once the byte count reaches the total the
// job holds at 100 and switches to Processing: the client cannot distinguish
// "bytes fully sent" from "server still working", so only the label changes.
func (j *SeparationJob) ApplyTransferProgress(loaded, total int64) {
	if total <= 0 {
		return
	}
	if !j.Phase.IsActive() {
		return
	}

	percent := int(float64(loaded) / float64(total) * 100)
	if percent > 100 {
		percent = 100
	}
	if percent < UploadFloorPercent {
		percent = UploadFloorPercent
	}
	if percent < j.Percent {
		percent = j.Percent
	}

	j.Percent = percent
	j.Progress = float64(percent) / 100.0

	if percent >= 100 {
		j.Phase = PhaseProcessing
		j.Message = MessageProcessing
	} else {
		j.Phase = PhaseUploading
		j.Message = MessageUploading
	}
}

// MarkCompleted moves the job to its successful terminal phase.
func (j *SeparationJob) MarkCompleted(result *SeparationResult) {
	j.Phase = PhaseCompleted
	j.Percent = 100
	j.Progress = 1.0
	j.Message = MessageCompleted
	j.Result = result
	j.FinishedAt = time.Now()
}

// Fail moves the job to its error terminal phase with the given message.
// The message is displayed verbatim on the status line prefixed with "Error: ".
func (j *SeparationJob) Fail(message string) {
	j.Phase = PhaseError
	j.LastError = message
	j.Message = ""
	j.FinishedAt = time.Now()
}

// GetDisplayTitle returns the file name without its extension, or the full
// path as a fallback
func (j *SeparationJob) GetDisplayTitle() string {
	name := j.FileName
	if name == "" {
		name = j.FilePath
	}
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}

// GetSizeString returns the file size in human readable form (e.g., "4.2 MB"),
// or "—" when the size is unknown
func (j *SeparationJob) GetSizeString() string {
	if j.FileSize <= 0 {
		return "—"
	}
	return humanize.Bytes(uint64(j.FileSize))
}
