package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/metric/global"
)

func TestRecorderMiddlewarePassesThrough(t *testing.T) {
	rc, err := NewRecorder(global.Meter("test"))
	if err != nil {
		t.Fatalf("NewRecorder() error: %v", err)
	}

	r := chi.NewRouter()
	r.Use(rc.Middleware)
	r.Get("/teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, w.Code)
	}
}

func TestExporterServesMetrics(t *testing.T) {
	exporter, err := NewExporter()
	if err != nil {
		t.Fatalf("NewExporter() error: %v", err)
	}

	rc, err := NewRecorder(global.Meter("test"))
	if err != nil {
		t.Fatalf("NewRecorder() error: %v", err)
	}

	h := rc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	w := httptest.NewRecorder()
	exporter.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}
