package pipeline

import (
	"fmt"
	"strings"
)

// refPrefix marks a string input as a reference into the run context.
const refPrefix = "$"

// Binding is one declared step input. It is either a literal value, passed
// through untouched, or a reference that resolves against the run context:
// "$fetch" names a whole step result, "$fetch.total" one key inside it.
type Binding struct {
	literal any
	step    string
	key     string
	isRef   bool
	hasKey  bool
}

// Lit builds a literal binding. The value is handed to the action as-is,
// even when it is a string that happens to start with "$".
func Lit(v any) Binding {
	return Binding{literal: v}
}

// Ref builds a reference to an entire context entry.
func Ref(step string) Binding {
	return Binding{step: step, isRef: true}
}

// RefKey builds a reference to a single key inside a context entry.
func RefKey(step, key string) Binding {
	return Binding{step: step, key: key, isRef: true, hasKey: true}
}

// ParseBinding interprets a raw input value the way pipeline definitions
// spell it: strings starting with "$" become references, split on the first
// "." only, so "$a.y.z" targets step "a", key "y.z". Everything else is a
// literal.
func ParseBinding(v any) Binding {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, refPrefix) {
		return Lit(v)
	}
	ref := strings.TrimPrefix(s, refPrefix)
	if step, key, found := strings.Cut(ref, "."); found {
		return RefKey(step, key)
	}
	return Ref(ref)
}

// IsRef reports whether the binding resolves against the context rather
// than carrying a literal.
func (b Binding) IsRef() bool {
	return b.isRef
}

// Target returns the referenced step name and key. keyed is false when the
// binding names a whole step result. For literals all results are zero.
func (b Binding) Target() (step, key string, keyed bool) {
	if !b.isRef {
		return "", "", false
	}
	return b.step, b.key, b.hasKey
}

// Resolve produces the concrete value for this binding. Missing steps and
// missing keys yield nil rather than an error; actions decide how to treat
// absent inputs.
func (b Binding) Resolve(ctx Context) any {
	if !b.isRef {
		return b.literal
	}
	v, ok := ctx[b.step]
	if !ok {
		return nil
	}
	if !b.hasKey {
		return v
	}
	switch m := v.(type) {
	case Payload:
		return m[b.key]
	case map[string]any:
		return m[b.key]
	}
	return nil
}

// String renders the binding in definition syntax, mostly for logs and
// validation errors.
func (b Binding) String() string {
	if !b.isRef {
		return fmt.Sprintf("%v", b.literal)
	}
	if b.hasKey {
		return refPrefix + b.step + "." + b.key
	}
	return refPrefix + b.step
}

// Inputs maps action parameter names to their bindings.
type Inputs map[string]Binding

// ParseInputs converts a raw definition mapping into bindings via
// ParseBinding.
func ParseInputs(raw map[string]any) Inputs {
	if raw == nil {
		return nil
	}
	in := make(Inputs, len(raw))
	for name, v := range raw {
		in[name] = ParseBinding(v)
	}
	return in
}
