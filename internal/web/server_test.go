package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kozaktomas/slide-sheets/internal/config"
	"github.com/kozaktomas/slide-sheets/internal/raster"
)

func testServer() *Server {
	cfg := &config.Config{
		Render:   config.RenderConfig{DPI: 150, Workers: 1},
		Web:      config.WebConfig{Host: "127.0.0.1", Port: 0, MaxUploadMB: 1, RenderTTL: time.Minute},
		Defaults: config.DefaultGroupSettings(),
	}
	return NewServer(cfg, raster.FileDecoder{})
}

func TestServer_Routes(t *testing.T) {
	s := testServer()
	defer s.renders.Stop()

	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		contentType string
	}{
		{"health", http.MethodGet, "/api/v1/health", http.StatusOK, "application/json"},
		{"defaults", http.MethodGet, "/api/v1/defaults", http.StatusOK, "application/json"},
		{"unknown render", http.MethodGet, "/api/v1/renders/missing", http.StatusNotFound, "application/json"},
		{"unknown pdf", http.MethodGet, "/api/v1/renders/missing/pdf", http.StatusNotFound, "application/json"},
		{"delete unknown", http.MethodDelete, "/api/v1/renders/missing", http.StatusNotFound, "application/json"},
		{"plan without form", http.MethodPost, "/api/v1/plan", http.StatusBadRequest, "application/json"},
		{"index", http.MethodGet, "/", http.StatusOK, "text/html; charset=utf-8"},
		{"spa fallback", http.MethodGet, "/renders/123", http.StatusOK, "text/html; charset=utf-8"},
		{"unknown api", http.MethodGet, "/api/v2/anything", http.StatusNotFound, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			s.Router().ServeHTTP(recorder, httptest.NewRequest(tc.method, tc.path, nil))

			if recorder.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d\nBody: %s", tc.wantStatus, recorder.Code, recorder.Body.String())
			}
			if tc.contentType != "" && recorder.Header().Get("Content-Type") != tc.contentType {
				t.Errorf("expected Content-Type %q, got %q", tc.contentType, recorder.Header().Get("Content-Type"))
			}
		})
	}
}

func TestServer_IndexHasUploadForm(t *testing.T) {
	s := testServer()
	defer s.renders.Stop()

	recorder := httptest.NewRecorder()
	s.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(recorder.Body.String(), `action="/api/v1/renders"`) {
		t.Error("expected the upload form to post to the renders endpoint")
	}
	if recorder.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected security headers")
	}
}

func TestServer_Addr(t *testing.T) {
	s := testServer()
	defer s.renders.Stop()
	if s.httpServer.Addr != "127.0.0.1:0" {
		t.Errorf("unexpected addr %s", s.httpServer.Addr)
	}
}
