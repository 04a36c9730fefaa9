package integration_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fterenzani/simph"
)

func newTestApp(t *testing.T, cfg simph.Config) *simph.App {
	t.Helper()

	dir := t.TempDir()
	pages := map[string]string{
		"index.html":       "<h1>home</h1>",
		"posts/index.html": `<h1>posts page {{.Value "page"}}</h1>`,
		"about.html":       "<h1>about</h1>",
	}
	for name, body := range pages {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg.PagesDir = dir
	app := simph.New(cfg)
	app.Route("/posts(/page-:page)", "posts/index.html").Def("page", `\d+`, "1")
	if err := app.Err(); err != nil {
		t.Fatal(err)
	}
	return app
}

// TestChiRouterIntegration tests that simph mounts under a Chi router.
func TestChiRouterIntegration(t *testing.T) {
	app := newTestApp(t, simph.Config{})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Traditional API routes keep working next to the page server.
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/*", app.Handler())

	t.Run("API health endpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

		if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
			t.Errorf("health = %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("pages resolve through the mount", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/posts/page-3", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "posts page 3") {
			t.Errorf("body = %q", rec.Body.String())
		}
	})

	t.Run("canonicalization survives the mount", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/posts/index.html", nil))

		if rec.Code != http.StatusMovedPermanently {
			t.Fatalf("status = %d, want 301", rec.Code)
		}
		if got := rec.Header().Get("Location"); got != "/posts" {
			t.Errorf("Location = %q, want /posts", got)
		}
	})

	t.Run("middleware chain executes", func(t *testing.T) {
		middlewareExecuted := false

		trackingRouter := chi.NewRouter()
		trackingRouter.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				middlewareExecuted = true
				next.ServeHTTP(w, r)
			})
		})
		trackingRouter.Handle("/*", app.Handler())

		rec := httptest.NewRecorder()
		trackingRouter.ServeHTTP(rec, httptest.NewRequest("GET", "/about", nil))

		if !middlewareExecuted {
			t.Error("expected middleware to execute before simph handler")
		}
	})
}

// TestMetricsThroughTheStack verifies the instrumented resolver counts
// requests arriving through a Chi mount.
func TestMetricsThroughTheStack(t *testing.T) {
	reg := prometheus.NewRegistry()
	app := newTestApp(t, simph.Config{Metrics: true, Registry: reg})

	r := chi.NewRouter()
	r.Handle("/*", app.Handler())

	for _, path := range []string{"/posts", "/about", "/posts/index.html"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}

	var resolutions float64
	for _, mf := range families {
		if mf.GetName() == "simph_resolutions_total" {
			for _, m := range mf.GetMetric() {
				resolutions += m.GetCounter().GetValue()
			}
		}
	}
	if resolutions != 3 {
		t.Errorf("resolutions counted = %v, want 3", resolutions)
	}
}

// TestStdlibMuxIntegration tests with stdlib ServeMux.
func TestStdlibMuxIntegration(t *testing.T) {
	app := newTestApp(t, simph.Config{})

	mux := http.NewServeMux()
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("api"))
	})
	mux.Handle("/", app.Handler())

	t.Run("API route works", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/test", nil))

		if rec.Body.String() != "api" {
			t.Errorf("expected api, got %s", rec.Body.String())
		}
	})

	t.Run("pages mounted at root", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "home") {
			t.Errorf("root = %d %q", rec.Code, rec.Body.String())
		}
	})
}
