package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/fterenzani/simph/pkg/router"
)

// Logging wraps a Resolver with structured request logging. Successful
// resolutions log at Debug, redirects at Info, failures at Warn. A nil
// logger falls back to slog.Default.
func Logging(next Resolver, logger *slog.Logger) Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "router")

	return ResolverFunc(func(ctx context.Context, raw string) (router.Resolution, error) {
		start := time.Now()
		res, err := next.Resolve(ctx, raw)
		elapsed := time.Since(start)

		switch {
		case err != nil:
			logger.Warn("resolve failed",
				"path", raw,
				"outcome", outcomeLabel(res, err),
				"error", err,
				"elapsed", elapsed,
			)
		case res.Redirect():
			logger.Info("resolve redirect",
				"path", raw,
				"location", res.Location,
				"status", res.Status,
				"elapsed", elapsed,
			)
		default:
			logger.Debug("resolve",
				"path", raw,
				"identifier", res.Identifier,
				"elapsed", elapsed,
			)
		}
		return res, err
	})
}
