package middleware

import (
	"context"
	"errors"

	"github.com/fterenzani/simph/pkg/router"
)

// Resolver resolves a raw request string to a terminal routing outcome.
// The context carries request-scoped telemetry (trace parents, deadlines);
// the router core itself never blocks on it.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (router.Resolution, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, raw string) (router.Resolution, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, raw string) (router.Resolution, error) {
	return f(ctx, raw)
}

// Routes adapts a *router.Router to the Resolver interface.
func Routes(r *router.Router) Resolver {
	return ResolverFunc(func(_ context.Context, raw string) (router.Resolution, error) {
		return r.Resolve(raw)
	})
}

// Outcome labels used by the metrics, tracing and logging wrappers.
const (
	outcomePage       = "page"
	outcomeRedirect   = "redirect"
	outcomeBadRequest = "bad_request"
	outcomeNotFound   = "not_found"
	outcomeError      = "error"
)

// outcomeLabel classifies a resolution result for instrumentation.
func outcomeLabel(res router.Resolution, err error) string {
	if err != nil {
		var rerr *router.Error
		if errors.As(err, &rerr) {
			switch rerr.Kind {
			case router.KindBadRequest:
				return outcomeBadRequest
			case router.KindNotFound:
				return outcomeNotFound
			}
		}
		return outcomeError
	}
	if res.Redirect() {
		return outcomeRedirect
	}
	return outcomePage
}
