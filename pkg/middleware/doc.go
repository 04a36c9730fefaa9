// Package middleware provides observability wrappers for the resolver.
//
// Each wrapper takes a Resolver and returns a Resolver, so they compose in
// any order:
//
//	var res middleware.Resolver = middleware.Routes(r)
//	res = middleware.Prometheus(res, middleware.WithNamespace("myapp"))
//	res = middleware.OpenTelemetry(res)
//	res = middleware.Logging(res, slog.Default())
//
// These wrappers instrument resolution; they are not a request dispatch
// pipeline. The router core itself stays free of logging and metrics.
package middleware
