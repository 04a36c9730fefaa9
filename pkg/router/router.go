package router

import (
	"net/http"
	"strings"

	"github.com/fterenzani/simph/pkg/routepath"
)

// Home is the reserved identifier shorthand for the site root.
const Home = "home"

// DefaultExt is the handler-file extension used when Config.Ext is empty.
const DefaultExt = ".html"

// Config holds the deployment-specific strings the router needs for
// resolution and link building. None of them take part in pattern matching.
type Config struct {
	// WebRoot is the path prefix the application is mounted under. It is
	// stripped from incoming requests and prepended to generated paths.
	WebRoot string

	// FrontController is the dispatcher script name ("index.cgi") that may
	// appear after the web root in raw requests; it is stripped as well.
	FrontController string

	// Ext is the handler-file extension appended during fallback
	// derivation. Defaults to DefaultExt.
	Ext string

	// Host is the host[:port] used by URLFor.
	Host string
}

type paramDef struct {
	name  string
	expr  string
	value string
}

// Router owns the ordered route table and the global parameter definitions
// applied to every newly declared route. Declare routes during setup, then
// treat the router as read-only: Resolve, PathFor and URLFor are pure and
// reentrant.
type Router struct {
	cfg Config

	routes       []*Route
	byIdentifier map[string]*Route
	globals      []paramDef
}

// New creates an empty Router.
func New(cfg Config) *Router {
	if cfg.Ext == "" {
		cfg.Ext = DefaultExt
	}
	cfg.WebRoot = strings.TrimSuffix(cfg.WebRoot, "/")
	return &Router{
		cfg:          cfg,
		byIdentifier: make(map[string]*Route),
	}
}

// Config returns the router's configuration.
func (r *Router) Config() Config {
	return r.cfg
}

// Route declares a pattern for a page identifier and returns the Route for
// chained Def calls. Declaration order is the tie-breaker when several
// patterns could match the same request: first declared wins. Declaring the
// same identifier again replaces the earlier route in place.
func (r *Router) Route(pattern, identifier string) *Route {
	rt := newRoute(pattern, identifier, r.globals)
	if prev, ok := r.byIdentifier[identifier]; ok {
		for i, existing := range r.routes {
			if existing == prev {
				r.routes[i] = rt
				break
			}
		}
	} else {
		r.routes = append(r.routes, rt)
	}
	r.byIdentifier[identifier] = rt
	return rt
}

// Def registers a global parameter definition applied to every route
// declared afterward. Already-declared routes keep the globals they were
// declared with.
func (r *Router) Def(name, expr, value string) *Router {
	r.globals = append(r.globals, paramDef{name: name, expr: expr, value: value})
	return r
}

// Routes returns the route table in declaration order.
func (r *Router) Routes() []*Route {
	return append([]*Route(nil), r.routes...)
}

// Lookup returns the declared route for an identifier.
func (r *Router) Lookup(identifier string) (*Route, bool) {
	rt, ok := r.byIdentifier[identifier]
	return rt, ok
}

// Err returns the first configuration error recorded across the route
// table. Call it once after the setup phase; a non-nil result means a
// pattern or definition is ill-formed and the table must not be served.
func (r *Router) Err() error {
	for _, rt := range r.routes {
		if rt.err != nil {
			return rt.err
		}
	}
	return nil
}

// Resolve maps a raw request string (path plus optional query) to a
// terminal outcome: a Resolution carrying either the page identifier with
// its parameters or a canonicalization redirect, or an *Error with kind
// BadRequest or NotFound.
//
// Resolution is a pure, single-attempt computation: no state survives the
// call and concurrent calls on one Router are safe.
func (r *Router) Resolve(raw string) (Resolution, error) {
	path, query := routepath.SplitPathAndQuery(raw)
	path = routepath.StripPrefix(path, r.cfg.WebRoot)
	if r.cfg.FrontController != "" {
		path = routepath.StripPrefix(path, r.cfg.FrontController)
	}

	path, err := routepath.Sanitize(path)
	if err != nil {
		return Resolution{}, &Error{Kind: KindBadRequest, Path: raw, Err: err}
	}

	// Explicit routes, in declaration order: first match wins.
	for _, rt := range r.routes {
		if params, ok := rt.Match(path); ok {
			return Resolution{Identifier: rt.identifier, Params: params}, nil
		}
	}

	// Fallback: the path itself names the handler file. A bare trailing
	// "index" segment is the non-canonical spelling of its directory.
	candidate := routepath.Derive(path, r.cfg.Ext)
	if routepath.EndsWithIndex(path) {
		return r.redirect(candidate, query, path)
	}

	// A candidate that collides with a declared route is only reachable
	// through its pretty URL; send the client there.
	if _, declared := r.byIdentifier[candidate]; declared {
		return r.redirect(candidate, query, path)
	}

	return Resolution{Identifier: candidate}, nil
}

// redirect builds a 301 to the canonical URL of an identifier, carrying the
// current query string. A canonical URL that cannot be generated because
// the route requires parameters is a routing inconsistency, answered as
// NotFound rather than propagated to the client.
func (r *Router) redirect(identifier, query, path string) (Resolution, error) {
	location, err := r.PathFor(identifier, nil)
	if err != nil {
		// Most commonly a *MissingParameterError: the rewrite target needs
		// a parameter the bare candidate cannot supply.
		return Resolution{}, &Error{Kind: KindNotFound, Path: path, Err: err}
	}
	if query != "" {
		location += "?" + query
	}
	return Resolution{Location: location, Status: http.StatusMovedPermanently}, nil
}

// PathFor returns the site-relative path for a page identifier. A declared
// route generates its pretty form from the given values; the reserved Home
// identifier yields the web root; any other identifier is mapped back
// through the filesystem-style derivation.
func (r *Router) PathFor(identifier string, values any) (string, error) {
	if identifier == Home {
		return r.cfg.WebRoot + "/", nil
	}
	if rt, ok := r.byIdentifier[identifier]; ok {
		p, err := rt.Generate(values)
		if err != nil {
			return "", err
		}
		return r.cfg.WebRoot + p, nil
	}
	return r.cfg.WebRoot + routepath.Pretty(identifier, r.cfg.Ext), nil
}

// URLFor returns the absolute URL for a page identifier using the
// configured host. An empty scheme means "http".
func (r *Router) URLFor(identifier string, values any, scheme string) (string, error) {
	if scheme == "" {
		scheme = "http"
	}
	p, err := r.PathFor(identifier, values)
	if err != nil {
		return "", err
	}
	return scheme + "://" + r.cfg.Host + p, nil
}
