package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fterenzani/simph/pkg/router"
)

// Default tracer name for simph applications.
const defaultTracerName = "simph"

// OTelConfig configures the OpenTelemetry wrapper.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "simph").
	TracerName string

	// IncludeIdentifier includes the resolved page identifier in spans.
	// Enabled by default.
	IncludeIdentifier bool

	// Filter determines which requests to trace. Return true to trace,
	// false to skip. If nil, all requests are traced.
	Filter func(raw string) bool

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry wrapper.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeIdentifier enables or disables the identifier span attribute.
func WithIncludeIdentifier(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeIdentifier = include
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(raw string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:        defaultTracerName,
		IncludeIdentifier: true,
	}
}

// OpenTelemetry wraps a Resolver so every resolution runs inside a span.
//
// The span records the raw request path, the outcome, and (when enabled)
// the resolved identifier or redirect target. BadRequest and NotFound
// resolutions set the span status to Error.
//
// The tracer comes from the global OpenTelemetry tracer provider; configure
// it in main() before serving:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(next Resolver, opts ...OTelOption) Resolver {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	config.tracer = otel.Tracer(config.TracerName)

	return ResolverFunc(func(ctx context.Context, raw string) (router.Resolution, error) {
		if config.Filter != nil && !config.Filter(raw) {
			return next.Resolve(ctx, raw)
		}

		ctx, span := config.tracer.Start(ctx, "router.resolve",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attribute.String("simph.request", raw)),
		)
		defer span.End()

		res, err := next.Resolve(ctx, raw)

		span.SetAttributes(attribute.String("simph.outcome", outcomeLabel(res, err)))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return res, err
		}

		if config.IncludeIdentifier {
			if res.Redirect() {
				span.SetAttributes(attribute.String("simph.location", res.Location))
			} else {
				span.SetAttributes(attribute.String("simph.identifier", res.Identifier))
			}
		}
		span.SetStatus(codes.Ok, "")
		return res, nil
	})
}
