package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewHTTPServer_DefaultPort(t *testing.T) {
	srv := NewHTTPServer("localhost", 0)
	if srv.Addr != "localhost:9091" {
		t.Errorf("Addr = %q, want localhost:9091", srv.Addr)
	}
}

func TestNewHTTPServer_ExplicitPort(t *testing.T) {
	srv := NewHTTPServer("0.0.0.0", 2112)
	if srv.Addr != "0.0.0.0:2112" {
		t.Errorf("Addr = %q, want 0.0.0.0:2112", srv.Addr)
	}
}

func TestNewHTTPServer_MetricsEndpoint(t *testing.T) {
	srv := NewHTTPServer("localhost", 2112)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("Expected default collectors in scrape output")
	}
}

func TestNewHTTPServer_OnlyMetricsRoute(t *testing.T) {
	srv := NewHTTPServer("localhost", 2112)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /: expected 404, got %d", rec.Code)
	}
}
