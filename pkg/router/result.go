package router

import (
	"fmt"
	"net/http"
)

// Resolution is the terminal outcome of resolving a request path: either a
// resolved page identifier with its parameters, or a canonicalization
// redirect the HTTP layer must emit and then stop.
type Resolution struct {
	// Identifier names the page handler that should process the request.
	// Empty on redirects.
	Identifier string

	// Params holds route parameters for an explicit route match: defaults
	// merged with captured values. Nil for fallback-derived identifiers.
	Params Params

	// Location and Status describe a redirect. Status is zero when the
	// request resolved to a page.
	Location string
	Status   int
}

// Redirect reports whether the resolution is a redirect instruction.
func (r Resolution) Redirect() bool {
	return r.Status != 0
}

// ErrorKind classifies terminal resolution failures.
type ErrorKind int

const (
	// KindBadRequest marks a malformed or unsafe request path.
	KindBadRequest ErrorKind = iota + 1

	// KindNotFound marks an unresolvable canonicalization target.
	KindNotFound
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is a resolution failure carrying the HTTP status the front
// controller must answer with.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("router: %s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("router: %s: %s", e.Kind, e.Path)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code for the error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// MissingParameterError reports a required placeholder that had no supplied
// value, no default, and no accessor during generation. It is a caller or
// configuration bug and is surfaced immediately, never silently defaulted.
type MissingParameterError struct {
	// Name is the placeholder missing a value.
	Name string

	// Pattern is the route pattern being generated.
	Pattern string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("router: pattern %q: no value for required parameter %q", e.Pattern, e.Name)
}

// InvalidParameterError reports a supplied value that does not satisfy the
// placeholder's matching fragment. A path generated from such a value would
// not resolve back to its own route.
type InvalidParameterError struct {
	// Name is the placeholder the value was supplied for.
	Name string

	// Value is the rejected value.
	Value string

	// Pattern is the route pattern being generated.
	Pattern string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("router: pattern %q: value %q does not match parameter %q", e.Pattern, e.Value, e.Name)
}
