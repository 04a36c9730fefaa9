// Package router implements bidirectional, pattern-based routing for
// file-path-style web applications.
//
// The router provides:
//   - Route patterns with named placeholders (/users/:id)
//   - Optional parenthesized sub-segments (/posts(/page-:page))
//   - Per-parameter regex overrides and default values
//   - Reverse generation: parameters back to a canonical path
//   - Fallback derivation from request path to page identifier
//   - Automatic canonicalization redirects for pretty URLs
//
// # Patterns
//
// A pattern always begins with "/". A ":name" token captures one parameter;
// by default it matches one or more word or hyphen characters. A
// parenthesized span containing exactly one placeholder is optional: it may
// be absent from the request and is dropped from generated paths when no
// value is supplied.
//
//	/posts                  static
//	/users/:id              one required parameter
//	/posts(/page-:page)     optional pagination suffix
//	/archive/:year(/:month) required year, optional month
//
// # Usage
//
//	r := router.New(router.Config{Ext: ".html", Host: "example.org"})
//	r.Route("/users/:id", "users/show.html").Def("id", `\d+`, "")
//	r.Route("/posts(/page-:page)", "posts/index.html").Def("page", `\d+`, "1")
//
//	res, err := r.Resolve("/posts/page-3?lang=en")
//	// res.Identifier == "posts/index.html", res.Params["page"] == "3"
//
//	path, err := r.PathFor("users/show.html", router.Params{"id": "42"})
//	// path == "/users/42"
//
// Declaration is a setup-phase operation; once declared, the route table is
// read-only and a single Router may serve concurrent Resolve and PathFor
// calls without synchronization.
package router
