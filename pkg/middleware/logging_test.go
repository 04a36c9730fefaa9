package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggingEmitsPerOutcome(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "page hit at debug",
			raw:  "/posts",
			want: []string{"level=DEBUG", "msg=resolve", "identifier=posts/index.html"},
		},
		{
			name: "redirect at info",
			raw:  "/posts/index.html",
			want: []string{"level=INFO", "msg=\"resolve redirect\"", "location=/posts"},
		},
		{
			name: "rejection at warn",
			raw:  "/_private/x",
			want: []string{"level=WARN", "msg=\"resolve failed\"", "path=/_private/x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			res := Logging(testResolver(), logger)
			res.Resolve(context.Background(), tt.raw)

			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("log output missing %q:\n%s", want, out)
				}
			}
			if !strings.Contains(out, "component=router") {
				t.Errorf("log output missing component attr:\n%s", out)
			}
		})
	}
}

func TestLoggingPassesResultThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	res := Logging(testResolver(), logger)

	got, err := res.Resolve(context.Background(), "/users/7")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.Identifier != "users/show.html" {
		t.Errorf("identifier = %q, want users/show.html", got.Identifier)
	}
}
