// Package simph provides the public API for the simph micro framework.
//
// simph maps request paths to page files through a two-phase resolver:
// explicit route patterns are tried first, then a filesystem-style
// fallback derives a page identifier from the path itself. Canonical
// URLs are enforced with permanent redirects.
//
// This is the recommended import for most applications:
//
//	import "github.com/fterenzani/simph"
//
// Usage:
//
//	app := simph.New(simph.Config{PagesDir: "pages"})
//	app.Route("/posts(/page-:page)", "posts/index.html").Def("page", `\d+`, "1")
//	http.ListenAndServe(":8080", app)
package simph

import (
	"github.com/fterenzani/simph/pkg/router"
	"github.com/fterenzani/simph/pkg/server"
)

// Params holds the parameters extracted from a matched route.
type Params = router.Params

// Route is a single declared route.
type Route = router.Route

// Resolution is the terminal outcome of resolving a request path.
type Resolution = router.Resolution

// PageSource renders pages by identifier.
type PageSource = server.PageSource

// PageData is the template context passed to rendered pages.
type PageData = server.PageData

// Home is the reserved identifier for the site root.
const Home = router.Home
