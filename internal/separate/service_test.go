package separate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/FlamesIsCool/vocal-remover/internal/model"
)

const testWaitTimeout = 5 * time.Second

// updateRecorder captures callback updates as value snapshots so tests can
// assert on the full progress sequence after the job finishes.
type updateRecorder struct {
	mu       sync.Mutex
	phases   []model.Phase
	percents []int
	done     chan struct{}
	once     sync.Once
}

func newUpdateRecorder() *updateRecorder {
	return &updateRecorder{done: make(chan struct{})}
}

func (r *updateRecorder) callback(job *model.SeparationJob) {
	r.mu.Lock()
	r.phases = append(r.phases, job.Phase)
	r.percents = append(r.percents, job.Percent)
	finished := job.Phase.IsFinished()
	r.mu.Unlock()

	if finished {
		r.once.Do(func() { close(r.done) })
	}
}

func (r *updateRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(testWaitTimeout):
		t.Fatal("Timed out waiting for job to finish")
	}
}

func (r *updateRecorder) snapshot() ([]model.Phase, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Phase(nil), r.phases...), append([]int(nil), r.percents...)
}

func writeTestAudio(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func successPayload() model.SeparationResult {
	return model.SeparationResult{
		ID:           "job1",
		Original:     "/outputs/job1/original.mp3",
		Vocals:       "/outputs/job1/htdemucs/track/vocals.wav",
		Instrumental: "/outputs/job1/htdemucs/track/instrumental.wav",
		Drums:        "/outputs/job1/htdemucs/track/drums.wav",
		Bass:         "/outputs/job1/htdemucs/track/bass.wav",
		Other:        "/outputs/job1/htdemucs/track/other.wav",
	}
}

func TestNewService(t *testing.T) {
	service := NewService("http://localhost:8000", 0)

	if service.serverURL != "http://localhost:8000" {
		t.Errorf("Expected serverURL 'http://localhost:8000', got '%s'", service.serverURL)
	}
	if service.client.Timeout != DefaultUploadTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultUploadTimeout, service.client.Timeout)
	}
	if len(service.jobs) != 0 {
		t.Errorf("Expected empty jobs map, got %d items", len(service.jobs))
	}
}

func TestSubmit_Success(t *testing.T) {
	audio := []byte("ID3\x03\x00fake mp3 payload for upload test")
	path := writeTestAudio(t, "song.mp3", audio)

	var gotField []byte
	var gotName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != UploadRoute {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile(UploadField)
		if err != nil {
			t.Errorf("Expected form field '%s': %v", UploadField, err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotName = header.Filename
		gotField, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(successPayload())
	}))
	defer server.Close()

	service := NewService(server.URL, time.Minute)
	recorder := newUpdateRecorder()
	service.SetUpdateCallback(recorder.callback)

	job, err := service.Submit(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	recorder.wait(t)

	if job.Phase != model.PhaseCompleted {
		t.Errorf("Expected phase Completed, got %s (lastError=%s)", job.Phase, job.LastError)
	}
	if job.Result == nil {
		t.Fatal("Expected result to be attached")
	}
	if job.Result.Vocals != "/outputs/job1/htdemucs/track/vocals.wav" {
		t.Errorf("Unexpected vocals URL: %s", job.Result.Vocals)
	}
	if gotName != "song.mp3" {
		t.Errorf("Expected uploaded filename 'song.mp3', got '%s'", gotName)
	}
	if !bytes.Equal(gotField, audio) {
		t.Errorf("Uploaded bytes differ from selected file (%d vs %d bytes)", len(gotField), len(audio))
	}

	phases, percents := recorder.snapshot()

	// First update resets the display, second applies the upload floor
	if len(percents) < 3 {
		t.Fatalf("Expected at least 3 updates, got %d", len(percents))
	}
	if phases[0] != model.PhaseIdle || percents[0] != 0 {
		t.Errorf("Expected first update Idle/0, got %s/%d", phases[0], percents[0])
	}
	if phases[1] != model.PhaseUploading || percents[1] != model.UploadFloorPercent {
		t.Errorf("Expected second update Uploading/%d, got %s/%d",
			model.UploadFloorPercent, phases[1], percents[1])
	}

	// Percent is monotonically non-decreasing and never below the floor
	// once the upload started
	for i := 2; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Errorf("Percent regressed at update %d: %d -> %d", i, percents[i-1], percents[i])
		}
		if percents[i] < model.UploadFloorPercent {
			t.Errorf("Percent %d below floor at update %d", percents[i], i)
		}
	}
	if percents[len(percents)-1] != 100 {
		t.Errorf("Expected final percent 100, got %d", percents[len(percents)-1])
	}
}

func TestSubmit_ServerErrorWithDetail(t *testing.T) {
	path := writeTestAudio(t, "song.wav", []byte("RIFFxxxxWAVE"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"detail":"too large"}`)
	}))
	defer server.Close()

	service := NewService(server.URL, time.Minute)
	recorder := newUpdateRecorder()
	service.SetUpdateCallback(recorder.callback)

	job, err := service.Submit(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	recorder.wait(t)

	if job.Phase != model.PhaseError {
		t.Errorf("Expected phase Error, got %s", job.Phase)
	}
	if job.LastError != "too large" {
		t.Errorf("Expected LastError 'too large', got '%s'", job.LastError)
	}
}

func TestSubmit_ServerErrorWithoutDetail(t *testing.T) {
	path := writeTestAudio(t, "song.wav", []byte("RIFFxxxxWAVE"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	service := NewService(server.URL, time.Minute)
	recorder := newUpdateRecorder()
	service.SetUpdateCallback(recorder.callback)

	job, err := service.Submit(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	recorder.wait(t)

	if job.LastError != GenericUploadError {
		t.Errorf("Expected LastError '%s', got '%s'", GenericUploadError, job.LastError)
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	path := writeTestAudio(t, "song.flac", []byte("fLaCdata"))

	// A server that is already gone produces a transport-level failure
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	service := NewService(serverURL, time.Minute)
	recorder := newUpdateRecorder()
	service.SetUpdateCallback(recorder.callback)

	job, err := service.Submit(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	recorder.wait(t)

	if job.Phase != model.PhaseError {
		t.Errorf("Expected phase Error, got %s", job.Phase)
	}
	if job.Phase == model.PhaseCompleted {
		t.Error("Transport failure must not advance to Completed")
	}
	if job.LastError == "" {
		t.Error("Expected LastError to carry the transport error message")
	}
}

func TestSubmit_MalformedSuccess(t *testing.T) {
	path := writeTestAudio(t, "song.ogg", []byte("OggSdata"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 2xx but missing stem URLs: a server contract violation
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"job2","original":"/outputs/job2/original.ogg"}`)
	}))
	defer server.Close()

	service := NewService(server.URL, time.Minute)
	recorder := newUpdateRecorder()
	service.SetUpdateCallback(recorder.callback)

	job, err := service.Submit(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	recorder.wait(t)

	if job.Phase != model.PhaseError {
		t.Errorf("Expected phase Error for incomplete payload, got %s", job.Phase)
	}
	if job.LastError == "" {
		t.Error("Expected LastError describing the incomplete result")
	}
}

func TestSubmit_RejectsUnsupportedExtension(t *testing.T) {
	path := writeTestAudio(t, "notes.txt", []byte("not audio"))

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	service := NewService(server.URL, time.Minute)

	_, err := service.Submit(path)
	if err == nil {
		t.Fatal("Expected error for unsupported extension, got nil")
	}
	if requests != 0 {
		t.Errorf("Expected no request for rejected file, got %d", requests)
	}
}

func TestSubmit_SingleFlight(t *testing.T) {
	path := writeTestAudio(t, "song.m4a", []byte("ftypM4A fake"))

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		<-release
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(successPayload())
	}))
	defer server.Close()

	service := NewService(server.URL, time.Minute)
	recorder := newUpdateRecorder()
	service.SetUpdateCallback(recorder.callback)

	first, err := service.Submit(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Wait until the first job is actually in flight
	deadline := time.Now().Add(testWaitTimeout)
	for {
		if _, active := service.GetActiveJob(); active {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for job to become active")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, err := service.Submit(path); err == nil {
		t.Error("Expected error for overlapping submit, got nil")
	}

	close(release)
	recorder.wait(t)

	if first.Phase != model.PhaseCompleted {
		t.Errorf("Expected first job Completed, got %s", first.Phase)
	}

	// Completed job released the slot; a new submit is accepted again
	if _, err := service.Submit(path); err != nil {
		t.Errorf("Expected submit after completion to succeed, got %v", err)
	}
}

func TestGetJob(t *testing.T) {
	path := writeTestAudio(t, "song.aac", []byte("aac data"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(successPayload())
	}))
	defer server.Close()

	service := NewService(server.URL, time.Minute)
	recorder := newUpdateRecorder()
	service.SetUpdateCallback(recorder.callback)

	job, err := service.Submit(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, exists := service.GetJob(job.ID)
	if !exists {
		t.Fatal("Expected job to exist")
	}
	if got.ID != job.ID {
		t.Errorf("Expected job ID '%s', got '%s'", job.ID, got.ID)
	}

	if _, exists := service.GetJob("missing"); exists {
		t.Error("Expected missing job to not exist")
	}

	recorder.wait(t)
}

func TestResolveStemURL(t *testing.T) {
	service := NewService("http://localhost:8000", time.Minute)

	tests := []struct {
		stemPath string
		expected string
	}{
		{"/outputs/abc/htdemucs/track/vocals.wav", "http://localhost:8000/outputs/abc/htdemucs/track/vocals.wav"},
		{"/outputs/abc/original.mp3", "http://localhost:8000/outputs/abc/original.mp3"},
		{"http://other:9000/outputs/x.wav", "http://other:9000/outputs/x.wav"},
	}

	for _, test := range tests {
		result, err := service.ResolveStemURL(test.stemPath)
		if err != nil {
			t.Errorf("ResolveStemURL(%s) returned error: %v", test.stemPath, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ResolveStemURL(%s) = '%s', expected '%s'", test.stemPath, result, test.expected)
		}
	}
}

func TestFetchStem(t *testing.T) {
	stemData := []byte("RIFFxxxxWAVE stem bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/outputs/abc/vocals.wav" {
			w.Write(stemData)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	service := NewService(server.URL, time.Minute)
	dest := filepath.Join(t.TempDir(), "stems", "vocals.wav")

	err := service.FetchStem(context.Background(), server.URL+"/outputs/abc/vocals.wav", dest)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	saved, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Expected saved stem, got %v", err)
	}
	if !bytes.Equal(saved, stemData) {
		t.Error("Saved stem bytes differ from served bytes")
	}

	// Missing stem propagates as an error
	err = service.FetchStem(context.Background(), server.URL+"/outputs/abc/missing.wav", dest)
	if err == nil {
		t.Error("Expected error for missing stem, got nil")
	}
}

func TestCheckHealth(t *testing.T) {
	failures := 2
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != HealthRoute {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if failures > 0 {
			failures--
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok","demucs":true,"ffmpeg":true}`)
	}))
	defer server.Close()

	service := NewService(server.URL, time.Minute)

	health, err := service.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("Expected probe to recover, got %v", err)
	}
	if !health.IsReady() {
		t.Errorf("Expected healthy server, got %+v", health)
	}
}

func TestCheckHealth_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	service := NewService(server.URL, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.CheckHealth(ctx); err == nil {
		t.Error("Expected error for cancelled context, got nil")
	}
}
