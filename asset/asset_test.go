package asset

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"http://example.com/a.png", true},
		{"https://example.com/a.png", true},
		{"/tmp/a.png", false},
		{"a.png", false},
		{"httpserver/a.png", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.source); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestResolveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, pngBytes(t, 16, 12), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Fatalf("unexpected natural dimensions %v", b)
	}
}

func TestResolveMissingFile(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestResolveUndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(path); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestResolveURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t, 8, 8))
	}))
	defer srv.Close()

	img, err := Resolve(srv.URL + "/a.png")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("unexpected dimensions %v", b)
	}
}

func TestResolveURLStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := Resolve(srv.URL + "/a.png"); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}
