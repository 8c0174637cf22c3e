package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/dgallion1/docoutline/internal/session"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{
		APIKey:       "test-key",
		WorkerCount:  1,
		MaxQueueSize: 4,
		JobTTL:       time.Hour,
		SessionTTL:   time.Hour,
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	orch := pipeline.NewOrchestrator(cfg, session.NewStore(cfg.SessionTTL), log)
	return NewServer(orch, log, cfg)
}

func TestHandleFormats(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/formats", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Formats []string `json:"formats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	want := []string{".docx", ".htm", ".html", ".markdown", ".md", ".pdf", ".xml"}
	if len(body.Formats) != len(want) {
		t.Fatalf("expected %d formats, got %v", len(want), body.Formats)
	}
	for i, ext := range want {
		if body.Formats[i] != ext {
			t.Errorf("formats[%d]: expected %q, got %q", i, ext, body.Formats[i])
		}
	}
}

func TestFormatsIsPublic(t *testing.T) {
	srv := testServer(t)

	// No Authorization header: public endpoints must still respond.
	for _, path := range []string{"/health", "/formats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200 without auth, got %d", path, rec.Code)
		}
	}
}

func TestAPIRoutesRequireAuth(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without auth, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer test-key")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with valid key, got %d", rec.Code)
	}
}
