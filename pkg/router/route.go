package router

// Route owns one compiled pattern together with its parameter regex
// overrides and default values. Routes are created through Router.Route and
// configured with chained Def calls during the setup phase; afterwards they
// are read-only and safe for concurrent use.
type Route struct {
	pattern     string
	identifier  string
	definitions map[string]string
	defaults    map[string]string

	compiled *compiled
	err      error
}

func newRoute(pattern, identifier string, globals []paramDef) *Route {
	rt := &Route{
		pattern:     pattern,
		identifier:  identifier,
		definitions: make(map[string]string),
		defaults:    make(map[string]string),
	}
	// Global definitions are applied as a snapshot: the route sees the
	// globals declared before it, never ones added later.
	for _, g := range globals {
		rt.apply(g)
	}
	rt.recompile()
	return rt
}

func (rt *Route) apply(d paramDef) {
	if d.expr != "" {
		rt.definitions[d.name] = d.expr
	}
	if d.value != "" {
		rt.defaults[d.name] = d.value
	}
}

// Def adds a definition for one placeholder. A non-empty expr overrides the
// default matching fragment; a non-empty value becomes the placeholder's
// default. Def is chainable; an invalid expr is recorded and reported by
// Err, Match and Generate rather than interrupting the chain.
func (rt *Route) Def(name, expr, value string) *Route {
	rt.apply(paramDef{name: name, expr: expr, value: value})
	rt.recompile()
	return rt
}

// recompile rebuilds the immutable compiled value. Compilation is pure and
// happens eagerly at declaration time; there is no first-use cost at
// request time.
func (rt *Route) recompile() {
	rt.compiled, rt.err = compilePattern(rt.pattern, rt.definitions)
}

// Pattern returns the literal pattern string.
func (rt *Route) Pattern() string {
	return rt.pattern
}

// Identifier returns the page identifier the route maps to.
func (rt *Route) Identifier() string {
	return rt.identifier
}

// Defaults returns a copy of the route's default parameter values.
func (rt *Route) Defaults() Params {
	return copyParams(rt.defaults)
}

// Err returns the configuration error recorded during declaration, if any.
func (rt *Route) Err() error {
	return rt.err
}

// Match tests a request path against the route. The path must be rooted,
// query-stripped and percent-decoded by the caller. On a hit it returns the
// defaults merged with the captured values; captured values win. Match
// never mutates the route.
func (rt *Route) Match(path string) (Params, bool) {
	if rt.err != nil {
		return nil, false
	}
	return rt.compiled.match(path, rt.defaults)
}

// Generate builds the literal path for the route from the given values: a
// Params map, any map[string]string, or a value implementing ParamSource or
// ParamAccessor. A required placeholder without a value, default or
// accessor fails with *MissingParameterError; a supplied value that does
// not satisfy the placeholder's fragment fails with
// *InvalidParameterError.
func (rt *Route) Generate(values any) (string, error) {
	if rt.err != nil {
		return "", rt.err
	}
	return rt.compiled.generate(values, rt.defaults)
}
