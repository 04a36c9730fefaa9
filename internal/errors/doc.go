// Package errors provides structured, actionable error messages for simph.
//
// Each registered error has a unique code (e.g. "E101") that maps to a
// short message, a detailed explanation, and optionally a fix
// suggestion. Errors render as a single line through the error
// interface, or as a formatted terminal block through Format().
//
// # Error Categories
//
//   - config: configuration file errors (missing file, bad JSON, bad values)
//   - routing: route declaration errors (malformed patterns, bad overrides)
//   - page: page source errors (missing page files, template failures)
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("E101").
//	    Wrap(compileErr).
//	    WithSuggestion("Check that every '(' in the pattern has a matching ')'")
//
//	fmt.Println(err.Format())
package errors
