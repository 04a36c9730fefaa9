package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fterenzani/simph/pkg/router"
)

// MetricsConfig configures the Prometheus metrics wrapper.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "simph").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for resolve duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics wrapper.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "simph",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors for one wrapped resolver.
type metrics struct {
	resolutionsTotal *prometheus.CounterVec
	resolveDuration  prometheus.Histogram
	redirectsTotal   prometheus.Counter
}

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		resolutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolutions_total",
			Help:        "Total number of resolved requests by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		resolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolve_duration_seconds",
			Help:        "Resolution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		redirectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "canonicalization_redirects_total",
			Help:        "Total number of canonicalization redirects issued",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus wraps a Resolver with Prometheus metrics.
//
// Metrics collected:
//   - simph_resolutions_total: counter of resolutions by outcome
//     (page, redirect, bad_request, not_found)
//   - simph_resolve_duration_seconds: histogram of resolution duration
//   - simph_canonicalization_redirects_total: counter of 301s issued
//
// Example:
//
//	res := middleware.Prometheus(
//	    middleware.Routes(r),
//	    middleware.WithNamespace("myapp"),
//	)
func Prometheus(next Resolver, opts ...MetricsOption) Resolver {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := initMetrics(config)

	return ResolverFunc(func(ctx context.Context, raw string) (router.Resolution, error) {
		start := time.Now()
		res, err := next.Resolve(ctx, raw)
		m.resolveDuration.Observe(time.Since(start).Seconds())
		m.resolutionsTotal.WithLabelValues(outcomeLabel(res, err)).Inc()
		if err == nil && res.Redirect() {
			m.redirectsTotal.Inc()
		}
		return res, err
	})
}
