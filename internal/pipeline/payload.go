package pipeline

// Payload is the free-form mapping an action returns: output name → value.
// By convention a numeric "cost" entry carries the step's spend in USD;
// nothing in the orchestrator enforces that.
type Payload map[string]any

// String returns the value under key as a string, or "" when the key is
// absent or holds a non-string.
func (p Payload) String(key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

// Float returns the value under key as a float64, widening integer values.
// Anything else yields 0.
func (p Payload) Float(key string) float64 {
	switch n := p[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// Int returns the value under key as an int, narrowing float values.
func (p Payload) Int(key string) int {
	switch n := p[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Bool returns the value under key as a bool, or false.
func (p Payload) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Slice returns the value under key as a []any, or nil.
func (p Payload) Slice(key string) []any {
	s, _ := p[key].([]any)
	return s
}

// Strings returns the value under key as a []string. A []any holding
// strings is converted element by element; non-string elements are skipped.
func (p Payload) Strings(key string) []string {
	switch s := p[key].(type) {
	case []string:
		return s
	case []any:
		var out []string
		for _, v := range s {
			if str, ok := v.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Map returns the value under key as a nested mapping, or nil.
func (p Payload) Map(key string) map[string]any {
	switch m := p[key].(type) {
	case map[string]any:
		return m
	case Payload:
		return m
	}
	return nil
}
