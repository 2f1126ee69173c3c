package separate

import (
	"context"

	"github.com/FlamesIsCool/vocal-remover/internal/model"
)

// Separator defines the interface for the separation service.
type Separator interface {
	SetUpdateCallback(func(*model.SeparationJob))
	Submit(path string) (*model.SeparationJob, error)
	GetJob(id string) (*model.SeparationJob, bool)
	GetActiveJob() (*model.SeparationJob, bool)

	// FetchStem downloads one stem URL into destPath
	FetchStem(ctx context.Context, stemURL, destPath string) error

	// ResolveStemURL resolves a server-relative stem path against the base URL
	ResolveStemURL(stemPath string) (string, error)

	// CheckHealth probes the server health endpoint with retry
	CheckHealth(ctx context.Context) (*model.ServerHealth, error)

	// SetServerURL changes the server base URL for subsequent requests
	SetServerURL(serverURL string)
}
