package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Display handles terminal progress output for a pipeline run. A nil
// Display is valid and silent, so library callers can run pipelines
// without any terminal plumbing.
type Display struct {
	w io.Writer
}

// NewDisplay creates a display writing to w.
func NewDisplay(w io.Writer) *Display {
	return &Display{w: w}
}

// ruleWidth is the width of the horizontal rules framing a run.
const ruleWidth = 60

// Header prints the pipeline header.
func (d *Display) Header(name, description string) {
	if d == nil {
		return
	}
	fmt.Fprintf(d.w, "\n🚀 %s", name)
	if description != "" {
		fmt.Fprintf(d.w, " — %s", description)
	}
	fmt.Fprintln(d.w)
	fmt.Fprintln(d.w, strings.Repeat("─", ruleWidth))
}

// StepStart prints a step-in-progress line.
func (d *Display) StepStart(i, total int, name string) {
	if d == nil {
		return
	}
	fmt.Fprintf(d.w, "[%d/%d] Running: %s\n", i, total, name)
}

// StepDone prints a completed step line with its cost and duration.
func (d *Display) StepDone(name string, cost float64, duration time.Duration) {
	if d == nil {
		return
	}
	costStr := "—"
	if cost > 0 {
		costStr = fmt.Sprintf("$%.4f", cost)
	}
	fmt.Fprintf(d.w, "    ✓ %-20s %-10s %.1fs\n", name, costStr, duration.Seconds())
}

// StepFailed prints a failed step line.
func (d *Display) StepFailed(name, msg string) {
	if d == nil {
		return
	}
	fmt.Fprintf(d.w, "    ✗ %-20s %s\n", name, msg)
}

// Summary prints the final run summary.
func (d *Display) Summary(totalCost float64, totalDuration time.Duration) {
	if d == nil {
		return
	}
	fmt.Fprintln(d.w, strings.Repeat("─", ruleWidth))
	fmt.Fprintf(d.w, "✅ Done  $%.4f  %.0fs\n\n", totalCost, totalDuration.Seconds())
}

// Failed prints a failure summary.
func (d *Display) Failed(msg string) {
	if d == nil {
		return
	}
	fmt.Fprintln(d.w, strings.Repeat("─", ruleWidth))
	fmt.Fprintf(d.w, "❌ Failed: %s\n\n", msg)
}
