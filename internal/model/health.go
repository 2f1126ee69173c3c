package model

// ServerHealth is the payload of the server's health endpoint
type ServerHealth struct {
	Status string `json:"status"`
	Demucs bool   `json:"demucs"`
	FFmpeg bool   `json:"ffmpeg"`
}

// IsReady returns true when the server can actually run a separation
func (h *ServerHealth) IsReady() bool {
	return h.Status == "ok" && h.Demucs
}
