// Package claude provides the Claude assistant stack in two flavors: a
// client that shells out to the claude CLI and one that talks to the
// Anthropic API directly. Pipelines depend on the Assistant interface and
// stay agnostic of which backend answers.
package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Short model names accepted by AskModel. The CLI resolves them itself;
// the API client maps them through the configured aliases.
const (
	ModelHaiku  = "haiku"
	ModelSonnet = "sonnet"
	ModelOpus   = "opus"
)

// Reply is one assistant answer with its cost in USD. Cost is zero when
// the backend cannot report it.
type Reply struct {
	Text string
	Cost float64
}

// Assistant answers prompts. Both clients implement it.
type Assistant interface {
	Ask(ctx context.Context, prompt string) (*Reply, error)
	AskModel(ctx context.Context, prompt, model string) (*Reply, error)
}

// Client shells out to the claude CLI.
type Client struct {
	// Command is the binary to invoke. Empty means "claude".
	Command string

	// Timeout bounds a single invocation. Zero means five minutes.
	Timeout time.Duration
}

// NewClient builds a CLI-backed client.
func NewClient(command string, timeout time.Duration) *Client {
	return &Client{Command: command, Timeout: timeout}
}

// cliOutput is the JSON envelope claude -p --output-format json prints.
type cliOutput struct {
	Result    string  `json:"result"`
	TotalCost float64 `json:"total_cost_usd"`
	IsError   bool    `json:"is_error"`
}

// Ask sends a single prompt using the CLI's default model.
func (c *Client) Ask(ctx context.Context, prompt string) (*Reply, error) {
	return c.AskModel(ctx, prompt, "")
}

// AskModel sends a single prompt to the named model. An empty model keeps
// the CLI's default.
func (c *Client) AskModel(ctx context.Context, prompt, model string) (*Reply, error) {
	args := []string{"-p", prompt, "--output-format", "json"}
	if model != "" {
		args = append(args, "--model", model)
	}
	return c.run(ctx, args)
}

// AgentOptions configures an agentic run with tool access.
type AgentOptions struct {
	// Tools whitelists tool names via --allowedTools, one flag per tool.
	Tools []string

	// MaxTurns caps agent iterations. Zero means 10.
	MaxTurns int
}

// RunAgent lets the CLI use tools to complete the prompt. The run skips
// interactive permission prompts, so tools should be whitelisted narrowly.
func (c *Client) RunAgent(ctx context.Context, prompt string, opts AgentOptions) (*Reply, error) {
	maxTurns := opts.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 10
	}
	args := []string{
		"-p", prompt,
		"--output-format", "json",
		"--dangerously-skip-permissions",
		"--max-turns", strconv.Itoa(maxTurns),
	}
	for _, tool := range opts.Tools {
		args = append(args, "--allowedTools", tool)
	}
	return c.run(ctx, args)
}

func (c *Client) run(ctx context.Context, args []string) (*Reply, error) {
	command := c.Command
	if command == "" {
		command = "claude"
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("claude cli: %w\nstderr: %s", err, stderr.String())
	}

	// Older CLI versions ignore --output-format and print plain text.
	var parsed cliOutput
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		return &Reply{Text: strings.TrimSpace(stdout.String())}, nil
	}
	if parsed.IsError {
		return nil, fmt.Errorf("claude cli: %s", strings.TrimSpace(parsed.Result))
	}
	return &Reply{
		Text: strings.TrimSpace(parsed.Result),
		Cost: parsed.TotalCost,
	}, nil
}
