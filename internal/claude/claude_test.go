package claude

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCLI writes an executable shell script standing in for the claude
// binary and returns its path.
func fakeCLI(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claude")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestClientAsk(t *testing.T) {
	bin := fakeCLI(t, `printf '{"result":"hello there","total_cost_usd":0.0042,"is_error":false}'`)
	c := NewClient(bin, time.Minute)

	reply, err := c.Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello there", reply.Text)
	assert.InDelta(t, 0.0042, reply.Cost, 1e-9)
}

func TestClientAskModelPassesFlags(t *testing.T) {
	bin := fakeCLI(t, `printf '{"result":"%s","total_cost_usd":0,"is_error":false}' "$*"`)
	c := NewClient(bin, time.Minute)

	reply, err := c.AskModel(context.Background(), "hi", ModelSonnet)
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "-p hi")
	assert.Contains(t, reply.Text, "--output-format json")
	assert.Contains(t, reply.Text, "--model sonnet")
}

func TestClientPlainTextFallback(t *testing.T) {
	bin := fakeCLI(t, `printf 'plain text answer'`)
	c := NewClient(bin, time.Minute)

	reply, err := c.Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "plain text answer", reply.Text)
	assert.Zero(t, reply.Cost)
}

func TestClientErrorFlag(t *testing.T) {
	bin := fakeCLI(t, `printf '{"result":"credit exhausted","is_error":true}'`)
	c := NewClient(bin, time.Minute)

	_, err := c.Ask(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credit exhausted")
}

func TestClientCommandFailure(t *testing.T) {
	bin := fakeCLI(t, `echo "bad auth" >&2; exit 1`)
	c := NewClient(bin, time.Minute)

	_, err := c.Ask(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad auth")
}

func TestClientTimeout(t *testing.T) {
	bin := fakeCLI(t, `sleep 5; printf '{}'`)
	c := NewClient(bin, 50*time.Millisecond)

	_, err := c.Ask(context.Background(), "hi")
	require.Error(t, err)
}

func TestRunAgentFlags(t *testing.T) {
	bin := fakeCLI(t, `printf '{"result":"%s","total_cost_usd":0,"is_error":false}' "$*"`)
	c := NewClient(bin, time.Minute)

	reply, err := c.RunAgent(context.Background(), "do it", AgentOptions{
		Tools: []string{"Read", "Bash"},
	})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "--dangerously-skip-permissions")
	assert.Contains(t, reply.Text, "--max-turns 10")
	assert.Contains(t, reply.Text, "--allowedTools Read")
	assert.Contains(t, reply.Text, "--allowedTools Bash")
}

func TestRunAgentCustomTurns(t *testing.T) {
	bin := fakeCLI(t, `printf '{"result":"%s","total_cost_usd":0,"is_error":false}' "$*"`)
	c := NewClient(bin, time.Minute)

	reply, err := c.RunAgent(context.Background(), "do it", AgentOptions{MaxTurns: 3})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "--max-turns 3")
}
