package simph

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/fterenzani/simph/internal/config"
	"github.com/fterenzani/simph/internal/errors"
	"github.com/fterenzani/simph/pkg/middleware"
	"github.com/fterenzani/simph/pkg/router"
	"github.com/fterenzani/simph/pkg/server"
)

// App is the main simph application entry point. It wraps the router,
// the middleware chain, and the front controller into a single
// http.Handler.
//
// Create an App with simph.New():
//
//	app := simph.New(simph.Config{
//	    PagesDir: "pages",
//	    Metrics:  true,
//	    DevMode:  os.Getenv("ENV") != "production",
//	})
//
//	app.Route("/posts(/page-:page)", "posts/index.html").Def("page", `\d+`, "1")
//	http.ListenAndServe(":8080", app)
type App struct {
	router   *router.Router
	resolver middleware.Resolver
	handler  *server.Handler
	reload   *server.ReloadServer

	config Config
	logger *slog.Logger
}

// New creates a new simph application with the given configuration.
func New(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Logger = logger

	pages := cfg.Pages
	if pages == nil {
		dir := cfg.PagesDir
		if dir == "" {
			dir = config.DefaultPagesDir
		}
		pages = server.NewDiskPages(dir, cfg.CachePages)
	}
	if cfg.DevMode {
		pages = server.NewDevPages(pages)
	}

	r := router.New(router.Config{
		WebRoot:         cfg.WebRoot,
		FrontController: cfg.FrontController,
		Ext:             cfg.Ext,
		Host:            cfg.Host,
	})

	app := &App{
		router:   r,
		resolver: buildResolver(r, cfg),
		config:   cfg,
		logger:   logger,
	}
	app.handler = server.NewHandler(app.resolver, pages, logger)

	if cfg.DevMode {
		app.reload = server.NewReloadServer()
	}

	return app
}

// FromConfig builds an application from a loaded simph.json, including
// its declared route table. Ambient fields of opts (Pages, Logger,
// Metrics, Registry, Tracing) are carried over; routing fields come
// from the file.
func FromConfig(cfg *config.Config, opts Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if opts.Pages == nil {
		if cfg.UseS3() {
			// The S3 client carries credentials, so it cannot be built
			// from simph.json alone.
			return nil, errors.New("E003").
				WithDetail("Pages are configured for S3; pass a server.S3Pages source built from your AWS client")
		}
		opts.Pages = server.NewDiskPages(cfg.PagesPath(), cfg.Pages.Cache)
	}

	opts.WebRoot = cfg.WebRoot
	opts.FrontController = cfg.FrontController
	opts.Ext = cfg.Ext
	opts.Host = cfg.Host
	opts.CachePages = cfg.Pages.Cache
	opts.DevMode = opts.DevMode || cfg.Dev.LiveReload

	app := New(opts)

	for _, def := range cfg.Defaults {
		app.Def(def.Name, def.Expr, def.Value)
	}
	for _, rt := range cfg.Routes {
		route := app.Route(rt.Pattern, rt.Identifier)
		for _, p := range rt.Params {
			route.Def(p.Name, p.Expr, p.Value)
		}
	}
	if err := app.router.Err(); err != nil {
		return nil, err
	}

	return app, nil
}

// ServeHTTP implements http.Handler. Requests under the reserved
// "/_simph/" prefix go to development endpoints; everything else is
// resolved as a page request.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if a.reload != nil && strings.HasPrefix(r.URL.Path, server.ReloadPath) {
		a.reload.ServeHTTP(w, r)
		return
	}
	a.handler.ServeHTTP(w, r)
}

// Handler returns the App as an http.Handler. This is useful for
// explicit type conversion or middleware wrapping.
func (a *App) Handler() http.Handler {
	return a
}

// Route declares an explicit route mapping pattern to identifier.
// Routes are tried in declaration order; redeclaring an identifier
// replaces the earlier route in place.
func (a *App) Route(pattern, identifier string) *router.Route {
	return a.router.Route(pattern, identifier)
}

// Def declares an application-wide parameter definition applied to
// routes declared after it.
func (a *App) Def(name, expr, value string) {
	a.router.Def(name, expr, value)
}

// PathFor generates the path for an identifier with the given values.
func (a *App) PathFor(identifier string, values any) (string, error) {
	return a.router.PathFor(identifier, values)
}

// URLFor generates an absolute URL for an identifier.
func (a *App) URLFor(identifier string, values any, scheme string) (string, error) {
	return a.router.URLFor(identifier, values, scheme)
}

// Router exposes the underlying router, mostly for tests and tooling.
func (a *App) Router() *router.Router {
	return a.router
}

// Resolver exposes the instrumented resolver chain.
func (a *App) Resolver() middleware.Resolver {
	return a.resolver
}

// Reload returns the live-reload server, or nil outside dev mode.
func (a *App) Reload() *server.ReloadServer {
	return a.reload
}

// Err returns the first configuration error recorded on any declared
// route, or nil. Check it after route registration.
func (a *App) Err() error {
	return a.router.Err()
}
