// Package value converts decoded configuration values to Go types.
// TOML decoding yields int64, float64, bool, string and []any; values set
// programmatically may use the native Go types instead. Both are accepted.
package value

// String returns v as a string, or "" if it is not one.
func String(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Int returns v as an int. Floats are truncated. Anything else is 0.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Float returns v as a float64. Integers are converted. Anything else is 0.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

// Bool returns v as a bool, or false if it is not one.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// StringSlice returns v as a []string. Non-string items of a []any are
// skipped. Anything else is nil.
func StringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}
