package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E001",
			wantMsg: "Configuration file not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "routing error",
			code:    "E101",
			wantMsg: "Malformed route pattern",
			wantCat: CategoryRouting,
		},
		{
			name:    "page error",
			code:    "E201",
			wantMsg: "Page not found",
			wantCat: CategoryPage,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "simph.json")
	if err.Message != `file "simph.json" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "simph.json" not found`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestSimphError_Error(t *testing.T) {
	err := New("E001")
	got := err.Error()
	want := "E001: Configuration file not found"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Without code
	err2 := &SimphError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestSimphError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := New("E002").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var se *SimphError
	if !stderrors.As(err, &se) || se.Code != "E002" {
		t.Errorf("errors.As = %v, want *SimphError with code E002", se)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil) should return nil")
	}

	se := New("E101")
	if got := FromError(se, "E002"); got != se {
		t.Error("FromError should pass *SimphError through unchanged")
	}

	cause := stderrors.New("read failed")
	wrapped := FromError(cause, "E002")
	if wrapped.Code != "E002" || !stderrors.Is(wrapped, cause) {
		t.Errorf("FromError = %+v, want E002 wrapping cause", wrapped)
	}
}

func TestRegister(t *testing.T) {
	Register("E900", ErrorTemplate{
		Category: CategoryCLI,
		Message:  "Custom error",
	})
	defer delete(registry, "E900")

	err := New("E900")
	if err.Message != "Custom error" || err.Category != CategoryCLI {
		t.Errorf("New(E900) = %+v, want registered template", err)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E101").
		Wrap(stderrors.New("unbalanced parentheses")).
		WithSuggestion("Check that every '(' has a matching ')'").
		WithExample(`r.Route("/archive/:year(/:month)", "archive.html")`)

	out := err.Format()
	for _, want := range []string{
		"ERROR E101: Malformed route pattern",
		"Cause: unbalanced parentheses",
		"Hint: Check that every '(' has a matching ')'",
		"Example:",
		`r.Route("/archive/:year(/:month)", "archive.html")`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E002").Wrap(stderrors.New("unexpected comma"))
	got := err.FormatCompact()
	want := "E002: Configuration file is not valid JSON: unexpected comma"
	if got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if strings.Join(lines, " ") != "one two three four five" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
