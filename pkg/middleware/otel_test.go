package middleware

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"github.com/fterenzani/simph/pkg/router"
)

func TestOpenTelemetryPassesResultThrough(t *testing.T) {
	res := OpenTelemetry(testResolver())

	got, err := res.Resolve(context.Background(), "/users/9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Identifier != "users/show.html" || got.Params["id"] != "9" {
		t.Errorf("resolution = %+v, want users/show.html with id=9", got)
	}
}

func TestOpenTelemetryErrorPropagates(t *testing.T) {
	wantErr := &router.Error{Kind: router.KindNotFound, Path: "/missing"}
	res := OpenTelemetry(ResolverFunc(func(ctx context.Context, raw string) (router.Resolution, error) {
		return router.Resolution{}, wantErr
	}))

	_, err := res.Resolve(context.Background(), "/missing")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected error %v, got %v", wantErr, err)
	}
}

func TestOpenTelemetryFilterSkipsTracing(t *testing.T) {
	nextCalled := false
	res := OpenTelemetry(
		ResolverFunc(func(ctx context.Context, raw string) (router.Resolution, error) {
			nextCalled = true
			if trace.SpanContextFromContext(ctx).IsValid() {
				t.Fatal("expected no span when filter skips tracing")
			}
			return router.Resolution{Identifier: "index.html"}, nil
		}),
		WithRequestFilter(func(raw string) bool { return raw != "/healthz" }),
	)

	if _, err := res.Resolve(context.Background(), "/healthz"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nextCalled {
		t.Fatal("expected next to be called")
	}
}
