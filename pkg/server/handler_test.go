package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fterenzani/simph/pkg/middleware"
	"github.com/fterenzani/simph/pkg/router"
)

func writePage(t *testing.T, dir, identifier, body string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(identifier))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	dir := t.TempDir()
	writePage(t, dir, "index.html", "<h1>home</h1>")
	writePage(t, dir, "posts/index.html", "<h1>posts page {{.Value \"page\"}}</h1>")
	writePage(t, dir, "about.html", "<h1>about</h1>")
	writePage(t, dir, "users/show.html", "<h1>user {{.Value \"name\"}}</h1>")

	r := router.New(router.Config{})
	r.Route("/posts(/page-:page)", "posts/index.html").Def("page", `\d+`, "1")
	r.Route("/users/:name", "users/show.html").Def("name", `[^/]+`, "")

	return NewHandler(middleware.Routes(r), NewDiskPages(dir, false), nil)
}

func TestHandlerRendersPage(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"home", "/", "<h1>home</h1>"},
		{"explicit route with default", "/posts", "<h1>posts page 1</h1>"},
		{"explicit route with param", "/posts/page-3", "<h1>posts page 3</h1>"},
		{"fallback derivation", "/about", "<h1>about</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if got := rec.Body.String(); !strings.Contains(got, tt.want) {
				t.Errorf("body = %q, want contains %q", got, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("content type = %q, want text/html", ct)
			}
		})
	}
}

func TestHandlerQueryFallbackInTemplates(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts?page=9", nil))

	// Route parameters shadow the query string, so the default wins.
	if got := rec.Body.String(); !strings.Contains(got, "posts page 1") {
		t.Errorf("body = %q, want default page 1", got)
	}
}

func TestHandlerDecodesEscapedPaths(t *testing.T) {
	h := newTestHandler(t)

	// An escaped character must not keep the explicit route from matching,
	// and the parameter reaches the page already decoded.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/a%20b", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); !strings.Contains(got, "user a b") {
		t.Errorf("body = %q, want decoded parameter", got)
	}
}

func TestHandlerRedirects(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name     string
		path     string
		location string
	}{
		{"canonicalization", "/posts/index.html", "/posts"},
		{"index suffix", "/posts/index", "/posts"},
		{"query carried", "/posts/index.html?x=1", "/posts?x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusMovedPermanently {
				t.Fatalf("status = %d, want 301", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != tt.location {
				t.Errorf("Location = %q, want %q", got, tt.location)
			}
		})
	}
}

func TestHandlerErrors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"private segment", "/_layouts/base", http.StatusBadRequest},
		{"traversal", "/..%2Fetc/passwd", http.StatusBadRequest},
		{"encoded traversal", "/%2e%2e/etc/passwd", http.StatusBadRequest},
		{"missing page", "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
