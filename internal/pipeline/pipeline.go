// Package pipeline runs named steps in order, threading each step's output
// into a shared context that later steps reference with $-bindings. A step
// failure stops the run; everything produced up to that point survives in
// the returned results.
package pipeline

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Reserved context keys. The orchestrator owns every key starting with "_";
// step names must not collide with them.
const (
	KeyPipeline  = "_pipeline"
	KeyRunID     = "_run_id"
	KeyStarted   = "_started"
	KeyCompleted = "_completed"
	KeyError     = "_error"
	KeyContext   = "_context"
)

// Context is the run's accumulating state: seed values, one entry per
// completed step, and the orchestrator's reserved bookkeeping keys.
type Context map[string]any

// Results maps step names to their payloads. Failed steps hold a single
// "error" entry. The reserved KeyContext entry carries the final run
// context.
type Results map[string]Payload

// Context returns the final run context recorded under KeyContext.
func (r Results) Context() Context {
	c := r[KeyContext]
	if c == nil {
		return nil
	}
	return Context(c)
}

// Failed reports the run's error message, if any step failed.
func (r Results) Failed() (string, bool) {
	ctx := r.Context()
	if ctx == nil {
		return "", false
	}
	msg, ok := ctx[KeyError].(string)
	return msg, ok
}

// Pipeline is an ordered sequence of steps.
type Pipeline struct {
	Name        string
	Description string

	// Display receives progress callbacks during Run. Nil is fine.
	Display *Display

	Steps []Step
}

// New builds an empty pipeline.
func New(name, description string) *Pipeline {
	return &Pipeline{Name: name, Description: description}
}

// AddStep appends a step and returns the pipeline for chaining.
func (p *Pipeline) AddStep(s Step) *Pipeline {
	p.Steps = append(p.Steps, s)
	return p
}

// Run executes the steps in order against a fresh context seeded from
// initial. The first failing step records its error and stops the run;
// Run itself never fails. The caller's initial map is not mutated.
func (p *Pipeline) Run(ctx context.Context, initial Context) Results {
	pctx := make(Context, len(initial)+len(p.Steps)+4)
	maps.Copy(pctx, initial)
	pctx[KeyPipeline] = p.Name
	pctx[KeyRunID] = uuid.NewString()
	pctx[KeyStarted] = time.Now().Format(time.RFC3339)

	results := make(Results, len(p.Steps)+1)
	total := len(p.Steps)
	for i := range p.Steps {
		step := &p.Steps[i]
		if err := ctx.Err(); err != nil {
			msg := err.Error()
			results[step.Name] = Payload{"error": msg}
			pctx[KeyError] = msg
			p.Display.StepFailed(step.Name, msg)
			break
		}
		p.Display.StepStart(i+1, total, step.Name)
		started := time.Now()
		out, err := step.Run(ctx, pctx)
		if err != nil {
			msg := errMessage(err)
			results[step.Name] = Payload{"error": msg}
			pctx[KeyError] = msg
			p.Display.StepFailed(step.Name, msg)
			break
		}
		results[step.Name] = out
		pctx[step.Name] = out
		p.Display.StepDone(step.Name, out.Float("cost"), time.Since(started))
	}

	pctx[KeyCompleted] = time.Now().Format(time.RFC3339)
	results[KeyContext] = Payload(pctx)
	return results
}

// errMessage unwraps the step prefix so recorded errors carry only the
// action's own message.
func errMessage(err error) string {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Err.Error()
	}
	return err.Error()
}

// Validate checks the pipeline's shape before a run: step names must be
// unique and must not claim the reserved "_" prefix, and every reference
// must target an earlier step or one of the named initial context keys.
func (p *Pipeline) Validate(initial ...string) error {
	known := make(map[string]bool, len(p.Steps)+len(initial))
	for _, k := range initial {
		known[k] = true
	}
	for i := range p.Steps {
		step := &p.Steps[i]
		if step.Name == "" {
			return &ValidationError{Pipeline: p.Name, Reason: "unnamed step"}
		}
		if step.Name[0] == '_' {
			return &ValidationError{Pipeline: p.Name, Step: step.Name, Reason: "step names must not start with \"_\""}
		}
		if known[step.Name] {
			return &ValidationError{Pipeline: p.Name, Step: step.Name, Reason: "duplicate step name"}
		}
		for name, b := range step.Inputs {
			target, _, _ := b.Target()
			if target == "" {
				continue
			}
			if !known[target] {
				return &ValidationError{
					Pipeline: p.Name,
					Step:     step.Name,
					Reason:   "input " + name + " references unknown step " + target,
				}
			}
		}
		known[step.Name] = true
	}
	return nil
}

// ValidationError describes a structural problem found by Validate.
type ValidationError struct {
	Pipeline string
	Step     string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Step == "" {
		return "pipeline " + e.Pipeline + ": " + e.Reason
	}
	return "pipeline " + e.Pipeline + ", step " + e.Step + ": " + e.Reason
}
