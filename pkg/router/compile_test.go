package router

import (
	"strings"
	"testing"
)

func TestCompileStatic(t *testing.T) {
	c, err := compilePattern("/about", nil)
	if err != nil {
		t.Fatalf("compilePattern(/about) error: %v", err)
	}
	if !c.static {
		t.Error("expected static pattern")
	}
	if c.re != nil {
		t.Error("static pattern must not build a regex")
	}
	if len(c.variables) != 0 {
		t.Errorf("variables = %v, want none", c.variables)
	}
}

func TestCompileVariableOrder(t *testing.T) {
	c, err := compilePattern("/archive/:year/:month(/:day)", nil)
	if err != nil {
		t.Fatalf("compilePattern error: %v", err)
	}
	want := []string{"year", "month", "day"}
	if len(c.variables) != len(want) {
		t.Fatalf("variables = %v, want %v", c.variables, want)
	}
	for i, name := range want {
		if c.variables[i] != name {
			t.Errorf("variables[%d] = %q, want %q", i, c.variables[i], name)
		}
	}
	if _, ok := c.optional["day"]; !ok {
		t.Error("expected day to be recorded as optional")
	}
	if _, ok := c.optional["year"]; ok {
		t.Error("year must not be optional")
	}
}

func TestCompileEscapesLiterals(t *testing.T) {
	c, err := compilePattern("/v1.0/:id", nil)
	if err != nil {
		t.Fatalf("compilePattern error: %v", err)
	}
	if _, ok := c.match("/v1x0/42", nil); ok {
		t.Error("dot in literal text must not match any character")
	}
	if _, ok := c.match("/v1.0/42", nil); !ok {
		t.Error("expected literal match")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		definitions map[string]string
		reason      string
	}{
		{name: "not rooted", pattern: "posts/:id", reason: "must begin"},
		{name: "empty", pattern: "", reason: "must begin"},
		{name: "unbalanced open", pattern: "/posts(/page-:page", reason: "unbalanced"},
		{name: "unbalanced close", pattern: "/posts/page-:page)", reason: "unbalanced"},
		{name: "nested spans", pattern: "/a((/:b))", reason: "nested"},
		{name: "span without placeholder", pattern: "/posts(/all)", reason: "exactly one placeholder"},
		{name: "span with two placeholders", pattern: "/a(/:b/:c)", reason: "exactly one placeholder"},
		{name: "static with parens", pattern: "/posts()", reason: "without a placeholder"},
		{
			name:    "duplicate optional span",
			pattern: "/a(/:p)(/x-:p)",
			reason:  "more than one optional span",
		},
		{
			name:        "bad definition regex",
			pattern:     "/users/:id",
			definitions: map[string]string{"id": `[`},
			reason:      "definition",
		},
		{
			name:        "capturing group in definition",
			pattern:     "/users/:id",
			definitions: map[string]string{"id": `(\d+)`},
			reason:      "capturing groups",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := compilePattern(tc.pattern, tc.definitions)
			if err == nil {
				t.Fatalf("compilePattern(%q) succeeded, want error", tc.pattern)
			}
			cfgErr, ok := err.(*ConfigurationError)
			if !ok {
				t.Fatalf("error type = %T, want *ConfigurationError", err)
			}
			if !strings.Contains(cfgErr.Reason, tc.reason) {
				t.Errorf("reason = %q, want substring %q", cfgErr.Reason, tc.reason)
			}
		})
	}
}

func TestCompileNonGreedyAdjacentCaptures(t *testing.T) {
	// The numeric id must not swallow the optional suffix.
	c, err := compilePattern("/posts/:id(-page-:page)", nil)
	if err != nil {
		t.Fatalf("compilePattern error: %v", err)
	}
	params, ok := c.match("/posts/hello-page-3", nil)
	if !ok {
		t.Fatal("expected match")
	}
	if params["id"] != "hello" {
		t.Errorf("id = %q, want %q", params["id"], "hello")
	}
	if params["page"] != "3" {
		t.Errorf("page = %q, want %q", params["page"], "3")
	}
}
