package router

import (
	"fmt"
	"regexp"
	"strings"
)

// defaultFragment is the matching body of a placeholder without a regex
// override: one or more word or hyphen characters. It is lazy so that when
// two adjacent captures could both expand, the earlier one takes the
// shortest text consistent with matching the rest of the pattern.
const defaultFragment = `[\w-]+?`

// placeholderRe matches a ":name" token inside a pattern.
var placeholderRe = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// ConfigurationError reports an ill-formed route pattern or parameter
// definition. It is raised at route-declaration time, never per request.
type ConfigurationError struct {
	// Pattern is the offending pattern string.
	Pattern string

	// Reason describes what is wrong with it.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("router: pattern %q: %s", e.Pattern, e.Reason)
}

// compiled is the immutable result of compiling a route pattern. It is
// built once per (pattern, definitions) combination by a pure function;
// there is no compile-on-first-use state.
type compiled struct {
	pattern string

	// static patterns match by string equality, no regex is built.
	static bool

	// variables lists placeholder names in capture-group order. This order
	// is the contract used to zip regex match groups back to names.
	variables []string

	// optional maps a placeholder name to the full text of its optional
	// span, parentheses included.
	optional map[string]string

	// checks holds each placeholder's fragment anchored to the full
	// string, used to validate supplied values during generation.
	checks map[string]*regexp.Regexp

	re *regexp.Regexp
}

// compilePattern turns a pattern string into a compiled matcher
// specification.
func compilePattern(pattern string, definitions map[string]string) (*compiled, error) {
	if pattern == "" || pattern[0] != '/' {
		return nil, &ConfigurationError{Pattern: pattern, Reason: `must begin with "/"`}
	}

	if !strings.Contains(pattern, ":") {
		if strings.ContainsAny(pattern, "()") {
			return nil, &ConfigurationError{Pattern: pattern, Reason: "optional span without a placeholder"}
		}
		return &compiled{pattern: pattern, static: true}, nil
	}

	c := &compiled{
		pattern:  pattern,
		optional: make(map[string]string),
		checks:   make(map[string]*regexp.Regexp),
	}

	var sb strings.Builder
	sb.WriteByte('^')

	for i := 0; i < len(pattern); {
		switch pattern[i] {
		case '(':
			end := strings.IndexByte(pattern[i+1:], ')')
			if end < 0 {
				return nil, &ConfigurationError{Pattern: pattern, Reason: "unbalanced parenthesis"}
			}
			span := pattern[i : i+end+2]
			inner := span[1 : len(span)-1]
			if strings.Contains(inner, "(") {
				return nil, &ConfigurationError{Pattern: pattern, Reason: "nested optional spans are not supported"}
			}
			names := placeholderRe.FindAllStringSubmatch(inner, -1)
			if len(names) != 1 {
				return nil, &ConfigurationError{Pattern: pattern, Reason: "optional span must contain exactly one placeholder"}
			}
			name := names[0][1]
			if _, dup := c.optional[name]; dup {
				return nil, &ConfigurationError{Pattern: pattern, Reason: fmt.Sprintf("placeholder %q has more than one optional span", name)}
			}
			c.optional[name] = span

			sb.WriteString("(?:")
			if err := c.writeChunk(&sb, inner, definitions); err != nil {
				return nil, err
			}
			sb.WriteString(")?")
			i += len(span)

		case ')':
			return nil, &ConfigurationError{Pattern: pattern, Reason: "unbalanced parenthesis"}

		default:
			end := strings.IndexAny(pattern[i:], "()")
			if end < 0 {
				end = len(pattern) - i
			}
			if err := c.writeChunk(&sb, pattern[i:i+end], definitions); err != nil {
				return nil, err
			}
			i += end
		}
	}

	sb.WriteByte('$')

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, &ConfigurationError{Pattern: pattern, Reason: err.Error()}
	}
	if re.NumSubexp() != len(c.variables) {
		return nil, &ConfigurationError{Pattern: pattern, Reason: "parameter definition contains capturing groups"}
	}
	c.re = re

	return c, nil
}

// writeChunk appends the regex form of a span-free pattern chunk: literal
// text is escaped, every placeholder becomes a capturing group whose body is
// the definition override when present, the default fragment otherwise.
func (c *compiled) writeChunk(sb *strings.Builder, chunk string, definitions map[string]string) error {
	last := 0
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(chunk, -1) {
		sb.WriteString(regexp.QuoteMeta(chunk[last:m[0]]))
		name := chunk[m[2]:m[3]]
		fragment := defaultFragment
		if override, ok := definitions[name]; ok {
			if err := checkFragment(c.pattern, name, override); err != nil {
				return err
			}
			fragment = override
		}
		sb.WriteByte('(')
		sb.WriteString(fragment)
		sb.WriteByte(')')
		c.variables = append(c.variables, name)
		c.checks[name] = regexp.MustCompile("^(?:" + fragment + ")$")
		last = m[1]
	}
	sb.WriteString(regexp.QuoteMeta(chunk[last:]))
	return nil
}

// checkFragment rejects definition overrides that would break the
// capture-order contract. Only non-capturing groups may appear in an
// override: e.g. (?:a|b) instead of (a|b).
func checkFragment(pattern, name, fragment string) error {
	re, err := regexp.Compile("(?:" + fragment + ")")
	if err != nil {
		return &ConfigurationError{Pattern: pattern, Reason: fmt.Sprintf("definition for %q: %v", name, err)}
	}
	if re.NumSubexp() != 0 {
		return &ConfigurationError{Pattern: pattern, Reason: fmt.Sprintf("definition for %q contains capturing groups", name)}
	}
	return nil
}

// match runs the compiled specification against a request path. Captured
// values win over defaults; a capture group that did not participate (an
// absent optional span) keeps the default instead of overwriting it with an
// empty string.
func (c *compiled) match(path string, defaults map[string]string) (Params, bool) {
	if c.static {
		if path != c.pattern {
			return nil, false
		}
		return copyParams(defaults), true
	}

	m := c.re.FindStringSubmatchIndex(path)
	if m == nil {
		return nil, false
	}

	params := copyParams(defaults)
	for i, name := range c.variables {
		lo, hi := m[2*(i+1)], m[2*(i+1)+1]
		if lo < 0 {
			continue
		}
		params[name] = path[lo:hi]
	}
	return params, true
}

// generate substitutes values into the pattern, producing a literal path.
//
// Each optional span is resolved first: with a value it is emitted without
// its parenthesis delimiters, without one it is dropped entirely. A supplied
// value equal to the placeholder's default also drops the span, keeping
// generate the exact inverse of match. Remaining placeholders take the
// supplied value, then the default; a required placeholder with neither
// fails with MissingParameterError.
//
// Every substituted supplied value must satisfy its placeholder's fragment,
// otherwise generation fails with InvalidParameterError: a path built from
// a non-matching value would not resolve back to its own route. Dropped
// spans and declared defaults are not re-checked.
func (c *compiled) generate(values any, defaults map[string]string) (string, error) {
	if c.static {
		return c.pattern, nil
	}

	out := c.pattern
	for name, span := range c.optional {
		v, ok := lookupParam(values, name)
		if !ok || v == defaults[name] {
			out = strings.Replace(out, span, "", 1)
			continue
		}
		if err := c.checkValue(name, v); err != nil {
			return "", err
		}
		filled := placeholderRe.ReplaceAllLiteralString(span[1:len(span)-1], v)
		out = strings.Replace(out, span, filled, 1)
	}

	var failed error
	out = placeholderRe.ReplaceAllStringFunc(out, func(tok string) string {
		name := tok[1:]
		if v, ok := lookupParam(values, name); ok {
			if err := c.checkValue(name, v); err != nil && failed == nil {
				failed = err
			}
			return v
		}
		if d, ok := defaults[name]; ok {
			return d
		}
		if failed == nil {
			failed = &MissingParameterError{Name: name, Pattern: c.pattern}
		}
		return tok
	})
	if failed != nil {
		return "", failed
	}
	return out, nil
}

// checkValue validates a supplied value against the placeholder's anchored
// fragment.
func (c *compiled) checkValue(name, value string) error {
	check, ok := c.checks[name]
	if !ok || check.MatchString(value) {
		return nil
	}
	return &InvalidParameterError{Name: name, Value: value, Pattern: c.pattern}
}

func copyParams(src map[string]string) Params {
	params := make(Params, len(src))
	for k, v := range src {
		params[k] = v
	}
	return params
}
