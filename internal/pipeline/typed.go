package pipeline

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Typed adapts a function over concrete input and output structs into an
// Action. Resolved inputs are decoded into I by field name (mapstructure
// tags apply); the returned O is encoded back into a payload the same way.
// Decode failures fail the step.
func Typed[I, O any](fn func(ctx context.Context, in I) (O, error)) Action {
	return func(ctx context.Context, inputs Payload) (Payload, error) {
		var in I
		if err := mapstructure.Decode(map[string]any(inputs), &in); err != nil {
			return nil, fmt.Errorf("decoding inputs: %w", err)
		}
		out, err := fn(ctx, in)
		if err != nil {
			return nil, err
		}
		var p Payload
		if err := mapstructure.Decode(out, &p); err != nil {
			return nil, fmt.Errorf("encoding outputs: %w", err)
		}
		return p, nil
	}
}
