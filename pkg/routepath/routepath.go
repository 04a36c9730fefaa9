// Package routepath implements the path handling rules shared by the router
// and the front controller: query splitting, request sanitization, and the
// two-way mapping between request paths and page identifiers.
//
// A page identifier is the relative file name of the handler that serves a
// request ("posts/index.html"), never a URL. Derive turns a request path into
// an identifier; Pretty is its inverse and produces the canonical URL form.
package routepath

import (
	"errors"
	"strings"
)

// PrivateMarker prefixes path segments that are reserved for partial or
// otherwise non-routable files and must never be reachable from a request.
const PrivateMarker = "_"

// IndexName is the segment appended to directory-style requests.
const IndexName = "index"

// Sanitization errors.
var (
	ErrNotRooted       = errors.New("routepath: empty or non-rooted path")
	ErrPathEscapesRoot = errors.New("routepath: path contains traversal sequence")
	ErrPrivateSegment  = errors.New("routepath: path addresses a private segment")
)

// SplitPathAndQuery splits a raw request string into path and query
// components. The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// Sanitize validates a request path before any route matching happens.
//
// NUL bytes are stripped unconditionally. The result must be rooted at "/".
// Two classes of path are rejected outright:
//   - any ".." traversal sequence, and
//   - any segment starting with the private-file marker ("/_partial/x").
//
// The returned path is otherwise unchanged; percent-decoding is the
// caller's responsibility.
func Sanitize(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")

	if path == "" || path[0] != '/' {
		return "", ErrNotRooted
	}

	// SECURITY: reject traversal anywhere in the path, not only as a whole
	// segment, so "..%2F"-style smuggling never reaches the filesystem.
	if strings.Contains(path, "..") {
		return "", ErrPathEscapesRoot
	}

	// SECURITY: segments starting with the private marker name partials and
	// other non-routable files.
	for _, seg := range strings.Split(path[1:], "/") {
		if strings.HasPrefix(seg, PrivateMarker) {
			return "", ErrPrivateSegment
		}
	}

	return path, nil
}

// StripPrefix removes a configured prefix (web root or front-controller
// script) from the start of path. It returns the path unchanged when the
// prefix is empty or absent. A fully consumed path becomes "/".
func StripPrefix(path, prefix string) string {
	if prefix == "" || prefix == "/" {
		return path
	}
	prefix = "/" + strings.Trim(prefix, "/")
	if path == prefix {
		return "/"
	}
	if strings.HasPrefix(path, prefix+"/") {
		return path[len(prefix):]
	}
	return path
}

// EndsWithIndex reports whether the final segment of path is the literal
// index name. Such requests are non-canonical: "/posts/index" must redirect
// to "/posts/".
func EndsWithIndex(path string) bool {
	return path == "/"+IndexName || strings.HasSuffix(path, "/"+IndexName)
}

// Derive maps a sanitized request path to its candidate page identifier.
// A path already carrying the handler extension is taken as-is; otherwise
// directory-style paths gain the index segment, the extension is appended
// and the leading separator dropped:
//
//	Derive("/posts/", ".html")           = "posts/index.html"
//	Derive("/about", ".html")            = "about.html"
//	Derive("/posts/index.html", ".html") = "posts/index.html"
func Derive(path, ext string) string {
	if strings.HasSuffix(path, ext) {
		return strings.TrimPrefix(path, "/")
	}
	if strings.HasSuffix(path, "/") {
		path += IndexName
	}
	return strings.TrimPrefix(path, "/") + ext
}

// Pretty is the inverse of Derive: it maps a page identifier to the
// canonical request path that resolves to it.
//
//	Pretty("posts/index.html", ".html") = "/posts/"
//	Pretty("about.html", ".html")       = "/about"
func Pretty(identifier, ext string) string {
	p := "/" + strings.TrimSuffix(identifier, ext)
	if p == "/"+IndexName {
		return "/"
	}
	if strings.HasSuffix(p, "/"+IndexName) {
		return strings.TrimSuffix(p, IndexName)
	}
	return p
}
