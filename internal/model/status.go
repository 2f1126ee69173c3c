package model

// Phase represents the lifecycle phase of a separation job
type Phase string

const (
	// PhaseIdle means the job was created but no bytes were sent yet
	PhaseIdle Phase = "Idle"

	// PhaseUploading means file bytes are in transit to the server
	PhaseUploading Phase = "Uploading"

	// PhaseProcessing means all bytes were sent and the server is still separating
	PhaseProcessing Phase = "Processing"

	// PhaseCompleted means the server returned a valid stem set
	PhaseCompleted Phase = "Completed"

	// PhaseError means the job failed with a terminal error
	PhaseError Phase = "Error"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsActive returns true if the job is in an active state
func (p Phase) IsActive() bool {
	return p == PhaseUploading || p == PhaseProcessing
}

// IsFinished returns true if the job is in a terminal state
func (p Phase) IsFinished() bool {
	return p == PhaseCompleted || p == PhaseError
}
