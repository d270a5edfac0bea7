package filters

// Params carries decode parameters lifted from a stream dictionary and
// reduced to Go primitives. Keys are stored without the leading slash.
// A nil Params is valid and yields fallbacks everywhere.
type Params map[string]any

// intOr returns the integer under key, or fallback when the key is
// absent or not numeric. Dictionaries occasionally carry integer
// parameters as reals, so floats are truncated rather than rejected.
func (p Params) intOr(key string, fallback int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

// boolOr returns the boolean under key, or fallback when the key is
// absent or not a boolean.
func (p Params) boolOr(key string, fallback bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return fallback
}
