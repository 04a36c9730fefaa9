package simph

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fterenzani/simph/pkg/middleware"
	"github.com/fterenzani/simph/pkg/router"
	"github.com/fterenzani/simph/pkg/server"
)

// Config configures a simph application.
type Config struct {
	// WebRoot is the path prefix the application is mounted under,
	// e.g. "/blog". Empty when mounted at the root.
	WebRoot string

	// FrontController is the script segment stripped after the web
	// root, e.g. "index.cgi". Usually empty behind a rewriting server.
	FrontController string

	// Ext is the page file extension appended during fallback
	// derivation (default ".html").
	Ext string

	// Host is the authority used by generated absolute URLs.
	Host string

	// PagesDir serves pages from this directory when Pages is nil.
	PagesDir string

	// CachePages enables template caching for the built-in disk page
	// source. Leave false in development.
	CachePages bool

	// Pages overrides the page source entirely. Takes precedence over
	// PagesDir.
	Pages server.PageSource

	// Logger receives resolution and serving logs. Nil falls back to
	// slog.Default.
	Logger *slog.Logger

	// Metrics enables Prometheus instrumentation of the resolver.
	Metrics bool

	// Registry receives the metrics when set; otherwise the default
	// registerer is used.
	Registry prometheus.Registerer

	// Tracing enables OpenTelemetry spans around each resolution.
	Tracing bool

	// DevMode mounts the live-reload WebSocket endpoint.
	DevMode bool
}

// buildResolver assembles the middleware chain around the router.
func buildResolver(r *router.Router, cfg Config) middleware.Resolver {
	var resolver middleware.Resolver = middleware.Routes(r)

	if cfg.Tracing {
		resolver = middleware.OpenTelemetry(resolver)
	}
	if cfg.Metrics {
		opts := []middleware.MetricsOption{}
		if cfg.Registry != nil {
			opts = append(opts, middleware.WithRegistry(cfg.Registry))
		}
		resolver = middleware.Prometheus(resolver, opts...)
	}
	resolver = middleware.Logging(resolver, cfg.Logger)

	return resolver
}
