package server

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/fterenzani/simph/pkg/middleware"
	"github.com/fterenzani/simph/pkg/router"
)

// Handler is the front controller. Every request is resolved to a page
// identifier, a canonicalization redirect, or an error status, and
// resolved pages are rendered through the configured PageSource.
type Handler struct {
	resolver middleware.Resolver
	pages    PageSource
	logger   *slog.Logger
}

// NewHandler creates a front controller over the given resolver and
// page source. A nil logger falls back to slog.Default.
func NewHandler(resolver middleware.Resolver, pages PageSource, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		resolver: resolver,
		pages:    pages,
		logger:   logger.With("component", "server"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The resolver expects the percent-decoded path; URL.Path is already
	// decoded while the query stays raw for the redirect carry-over.
	raw := r.URL.Path
	if r.URL.RawQuery != "" {
		raw += "?" + r.URL.RawQuery
	}
	res, err := h.resolver.Resolve(r.Context(), raw)
	if err != nil {
		var rerr *router.Error
		if errors.As(err, &rerr) {
			http.Error(w, http.StatusText(rerr.HTTPStatus()), rerr.HTTPStatus())
			return
		}
		h.logger.Error("resolve failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if res.Redirect() {
		http.Redirect(w, r, res.Location, res.Status)
		return
	}

	data := PageData{
		Path:       r.URL.Path,
		Identifier: res.Identifier,
		Params:     res.Params,
		Query:      r.URL.Query(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages.Render(r.Context(), w, res.Identifier, data); err != nil {
		if errors.Is(err, ErrPageNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("render failed", "identifier", res.Identifier, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// PageData is the template context for a rendered page.
type PageData struct {
	// Path is the request path as received, before canonicalization.
	Path string

	// Identifier names the page being rendered.
	Identifier string

	// Params holds the route parameters extracted during resolution.
	Params router.Params

	// Query holds the request query string values.
	Query url.Values
}

// Value returns the named route parameter, falling back to the query
// string. Route parameters shadow query values of the same name.
func (d PageData) Value(name string) string {
	if v, ok := d.Params[name]; ok {
		return v
	}
	return d.Query.Get(name)
}
