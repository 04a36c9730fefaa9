package router

// Params holds named route parameters, as extracted by Match or supplied to
// Generate and PathFor.
type Params map[string]string

// Param implements ParamSource.
func (p Params) Param(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// ParamSource supplies parameter values by direct key lookup. Params and
// plain map[string]string values satisfy it implicitly.
type ParamSource interface {
	Param(name string) (value string, ok bool)
}

// ParamAccessor supplies parameter values through a naming-convention
// accessor on a domain object. Generation tries direct key lookup first and
// falls back to the accessor, so a value object lacking an "id" key but able
// to answer AccessParam("id") generates identically to Params{"id": ...}.
type ParamAccessor interface {
	AccessParam(name string) (value string, ok bool)
}

// lookupParam resolves a single parameter from a value container: direct
// key lookup first, accessor capability second.
func lookupParam(values any, name string) (string, bool) {
	switch v := values.(type) {
	case nil:
		return "", false
	case Params:
		if val, ok := v[name]; ok {
			return val, true
		}
	case map[string]string:
		if val, ok := v[name]; ok {
			return val, true
		}
	default:
		if src, ok := values.(ParamSource); ok {
			if val, ok := src.Param(name); ok {
				return val, true
			}
		}
	}
	if acc, ok := values.(ParamAccessor); ok {
		return acc.AccessParam(name)
	}
	return "", false
}
