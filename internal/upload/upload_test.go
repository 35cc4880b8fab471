package upload

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fileHeader builds a parsed multipart file header for name with content.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", name)
	if err != nil {
		t.Fatalf("CreateFormFile() error: %v", err)
	}
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm() error: %v", err)
	}

	return req.MultipartForm.File["image"][0]
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, 1<<20)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	name, err := s.Save(fileHeader(t, "cover.PNG", []byte("png bytes")))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("expected lower-cased .png suffix, got %q", name)
	}
	if strings.Contains(name, "cover") {
		t.Errorf("expected a generated name, got %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "png bytes" {
		t.Errorf("unexpected content %q", data)
	}

	other, err := s.Save(fileHeader(t, "cover.png", []byte("again")))
	if err != nil {
		t.Fatalf("second Save() error: %v", err)
	}
	if other == name {
		t.Error("expected distinct names for two uploads")
	}
}

func TestSaveRejects(t *testing.T) {
	s, err := New(t.TempDir(), 4)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, err := s.Save(fileHeader(t, "script.sh", []byte("x"))); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
	if _, err := s.Save(fileHeader(t, "noext", []byte("x"))); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
	if _, err := s.Save(fileHeader(t, "big.gif", []byte("too large"))); err == nil {
		t.Error("expected an error for an oversized file")
	}
}

func TestFileServer(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	r := chi.NewRouter()
	FileServer(r, "/static/uploads", http.Dir(dir))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/uploads/a.jpg", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	body, _ := io.ReadAll(w.Body)
	if string(body) != "jpeg" {
		t.Errorf("unexpected body %q", body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/uploads/missing.jpg", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestFileServerRejectsParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a path with URL parameters")
		}
	}()

	FileServer(chi.NewRouter(), "/static/{id}", http.Dir("."))
}
