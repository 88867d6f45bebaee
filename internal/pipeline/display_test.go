package pipeline

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestStepStart_Format(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	d.StepStart(2, 5, "summarize")
	out := buf.String()
	if !strings.Contains(out, "[2/5] Running: summarize") {
		t.Errorf("StepStart output = %q, want progress line", out)
	}
}

func TestStepDone_ContainsCost(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	d.StepDone("summarize", 0.0012, 3*time.Second)
	out := buf.String()
	if !strings.Contains(out, "$0.0012") {
		t.Errorf("StepDone output missing cost: %q", out)
	}
	if !strings.Contains(out, "summarize") {
		t.Errorf("StepDone output missing step name: %q", out)
	}
}

func TestStepDone_ZeroCostShowsDash(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	d.StepDone("fetch", 0, time.Second)
	out := buf.String()
	if !strings.Contains(out, "—") {
		t.Errorf("StepDone expected dash for zero cost, got: %q", out)
	}
}

func TestStepFailed_ContainsError(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	d.StepFailed("send", "timed out")
	out := buf.String()
	if !strings.Contains(out, "send") || !strings.Contains(out, "timed out") {
		t.Errorf("StepFailed output = %q, want name and error", out)
	}
}

func TestHeader_IncludesDescription(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	d.Header("content", "research, write, send")
	out := buf.String()
	if !strings.Contains(out, "content") || !strings.Contains(out, "research, write, send") {
		t.Errorf("Header output = %q", out)
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	d.Summary(0.25, 90*time.Second)
	out := buf.String()
	if !strings.Contains(out, "$0.2500") {
		t.Errorf("Summary output missing total cost: %q", out)
	}
}

func TestNilDisplayIsSilent(t *testing.T) {
	var d *Display
	d.Header("x", "")
	d.StepStart(1, 1, "a")
	d.StepDone("a", 0, time.Second)
	d.StepFailed("a", "boom")
	d.Summary(0, time.Second)
	d.Failed("boom")
}
