package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// Action is the work a step performs. Inputs arrive fully resolved; the
// returned payload becomes the step's result in both the results map and
// the run context.
type Action func(ctx context.Context, inputs Payload) (Payload, error)

// Step is one named unit of work in a pipeline.
type Step struct {
	// Name keys the step's result. Names starting with "_" collide with
	// the orchestrator's reserved context entries.
	Name string

	// Action does the work. A nil action fails the step at run time.
	Action Action

	// Inputs declares what the action receives, by parameter name.
	Inputs Inputs

	// Outputs documents the keys the action is expected to produce. The
	// orchestrator does not enforce it; definition loaders and doctors use
	// it for reporting.
	Outputs []string
}

// ActionError wraps a failure from a step's action with the step name.
type ActionError struct {
	Step string
	Err  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("step %q: %v", e.Step, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Run resolves the step's inputs against the run context and invokes the
// action. Failures come back as *ActionError.
func (s *Step) Run(ctx context.Context, pctx Context) (Payload, error) {
	if s.Action == nil {
		return nil, &ActionError{Step: s.Name, Err: errors.New("no action configured")}
	}
	in := make(Payload, len(s.Inputs))
	for name, b := range s.Inputs {
		in[name] = b.Resolve(pctx)
	}
	out, err := s.Action(ctx, in)
	if err != nil {
		return nil, &ActionError{Step: s.Name, Err: err}
	}
	return out, nil
}
