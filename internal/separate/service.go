package separate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/FlamesIsCool/vocal-remover/internal/model"
	"github.com/FlamesIsCool/vocal-remover/internal/platform"
)

// Server routes and upload constants
const (
	UploadRoute = "/api/upload"
	HealthRoute = "/api/health"
	UploadField = "file"
	JobIDPrefix = "sep-"

	// GenericUploadError is shown when an error response carries no detail
	GenericUploadError = "Upload failed"

	// DefaultUploadTimeout bounds one upload including server-side separation
	DefaultUploadTimeout = 30 * time.Minute

	// HealthProbeMaxElapsed bounds the startup health probe retries
	HealthProbeMaxElapsed = 10 * time.Second
)

// errorBody is the shape of the server's failure responses
type errorBody struct {
	Detail string `json:"detail"`
}

// Service handles upload and separation operations. One job is in flight at
// a time; submitting while a job is active is rejected.
type Service struct {
	jobs      map[string]*model.SeparationJob
	jobsMutex sync.RWMutex
	activeID  string
	serverURL string
	client    *http.Client
	onUpdate  func(*model.SeparationJob) // callback for UI updates
}

// NewService creates a new separation service talking to serverURL
func NewService(serverURL string, uploadTimeout time.Duration) *Service {
	if uploadTimeout <= 0 {
		uploadTimeout = DefaultUploadTimeout
	}
	return &Service{
		jobs:      make(map[string]*model.SeparationJob),
		serverURL: serverURL,
		client:    &http.Client{Timeout: uploadTimeout},
	}
}

// SetUpdateCallback sets the callback function for job updates
func (s *Service) SetUpdateCallback(callback func(*model.SeparationJob)) {
	s.onUpdate = callback
}

// SetServerURL changes the server base URL for subsequent requests
func (s *Service) SetServerURL(serverURL string) {
	s.jobsMutex.Lock()
	s.serverURL = serverURL
	s.jobsMutex.Unlock()
}

// Submit starts a new separation job for the given audio file. The job is
// returned immediately in the Idle phase; upload and separation proceed in
// the background and are reported through the update callback.
func (s *Service) Submit(path string) (*model.SeparationJob, error) {
	if !platform.IsSupportedAudio(path) {
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("not a file: %s", path)
	}

	s.jobsMutex.Lock()
	if active, ok := s.jobs[s.activeID]; ok && active.Phase.IsActive() {
		s.jobsMutex.Unlock()
		return nil, fmt.Errorf("separation already in progress for %s", active.FileName)
	}

	job := &model.SeparationJob{
		ID:       generateJobID(),
		FileName: filepath.Base(path),
		FilePath: path,
		FileSize: info.Size(),
		MimeType: platform.DetectMimeType(path),
		Phase:    model.PhaseIdle,
	}
	s.jobs[job.ID] = job
	s.activeID = job.ID
	s.jobsMutex.Unlock()

	// Reset the display to 0/Idle before the upload floor kicks in
	s.notifyUpdate(job)

	go s.runJob(job)

	return job, nil
}

// GetJob returns a job by ID
func (s *Service) GetJob(id string) (*model.SeparationJob, bool) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	job, exists := s.jobs[id]
	return job, exists
}

// GetActiveJob returns the job currently in flight, if any
func (s *Service) GetActiveJob() (*model.SeparationJob, bool) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	job, exists := s.jobs[s.activeID]
	if !exists || !job.Phase.IsActive() {
		return nil, false
	}
	return job, true
}

// runJob performs the upload and handles the terminal response
func (s *Service) runJob(job *model.SeparationJob) {
	s.jobsMutex.Lock()
	job.BeginUpload()
	uploadURL, err := url.JoinPath(s.serverURL, UploadRoute)
	s.jobsMutex.Unlock()
	s.notifyUpdate(job)

	if err != nil {
		s.failJob(job, fmt.Sprintf("invalid server URL: %v", err))
		return
	}

	body, contentType, err := buildUploadBody(job.FilePath, job.FileName)
	if err != nil {
		s.failJob(job, err.Error())
		return
	}
	total := int64(body.Len())

	reader := newProgressReader(body, total, func(loaded, totalBytes int64) {
		s.jobsMutex.Lock()
		job.ApplyTransferProgress(loaded, totalBytes)
		s.jobsMutex.Unlock()
		s.notifyUpdate(job)
	})

	req, err := http.NewRequest(http.MethodPost, uploadURL, reader)
	if err != nil {
		s.failJob(job, err.Error())
		return
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = total

	log.Info("uploading file", "job", job.ID, "file", job.FileName, "size", job.FileSize)

	resp, err := s.client.Do(req)
	if err != nil {
		// Transport failure: no response at all
		log.Error("upload transport failure", "job", job.ID, "err", err)
		s.failJob(job, err.Error())
		return
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		s.failJob(job, fmt.Sprintf("failed to read server response: %v", err))
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(payload, &eb)
		message := eb.Detail
		if message == "" {
			message = GenericUploadError
		}
		log.Warn("server rejected upload", "job", job.ID, "status", resp.StatusCode, "detail", message)
		s.failJob(job, message)
		return
	}

	var result model.SeparationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		s.failJob(job, fmt.Sprintf("malformed server response: %v", err))
		return
	}
	if err := result.Validate(); err != nil {
		s.failJob(job, err.Error())
		return
	}

	s.jobsMutex.Lock()
	job.MarkCompleted(&result)
	s.activeID = ""
	s.jobsMutex.Unlock()

	log.Info("separation completed", "job", job.ID, "result", result.ID)
	s.notifyUpdate(job)
}

// FetchStem downloads one stem URL into destPath
func (s *Service) FetchStem(ctx context.Context, stemURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, stemURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch stem: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stem fetch returned status %d", resp.StatusCode)
	}

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(destPath)); err != nil {
		return err
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to save stem: %w", err)
	}
	return nil
}

// ResolveStemURL resolves a server-relative stem path (e.g., "/outputs/...")
// against the configured base URL
func (s *Service) ResolveStemURL(stemPath string) (string, error) {
	s.jobsMutex.RLock()
	serverURL := s.serverURL
	s.jobsMutex.RUnlock()

	base, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	ref, err := url.Parse(stemPath)
	if err != nil {
		return "", fmt.Errorf("invalid stem path: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

// CheckHealth probes the server health endpoint, retrying with exponential
// backoff until the probe window elapses. The upload itself is never retried;
// only this read-only probe is.
func (s *Service) CheckHealth(ctx context.Context) (*model.ServerHealth, error) {
	healthURL, err := url.JoinPath(s.serverURL, HealthRoute)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	var health *model.ServerHealth
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
		}

		var h model.ServerHealth
		if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
			return fmt.Errorf("malformed health response: %w", err)
		}
		health = &h
		return nil
	}

	policy := backoff.WithContext(
		backoff.NewExponentialBackOff(backoff.WithMaxElapsedTime(HealthProbeMaxElapsed)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return health, nil
}

// failJob sets an error state for a job and releases the in-flight slot
func (s *Service) failJob(job *model.SeparationJob, message string) {
	s.jobsMutex.Lock()
	job.Fail(message)
	if s.activeID == job.ID {
		s.activeID = ""
	}
	s.jobsMutex.Unlock()

	s.notifyUpdate(job)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(job *model.SeparationJob) {
	if s.onUpdate != nil {
		s.onUpdate(job)
	}
}

// buildUploadBody assembles the single-field multipart form body. The body is
// buffered so the total request length is known up front, which keeps the
// transfer length-computable for progress events.
func buildUploadBody(path, fileName string) (*bytes.Buffer, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(UploadField, fileName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build form body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// generateJobID generates a unique job ID using UUID v7 for natural time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
