package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/epmk/stackflow/internal/claude"
	"github.com/epmk/stackflow/internal/config"
	"github.com/epmk/stackflow/internal/cost"
	"github.com/epmk/stackflow/internal/googleai"
	"github.com/epmk/stackflow/internal/log"
	"github.com/epmk/stackflow/internal/pipeline"
	"github.com/epmk/stackflow/internal/pipelines"
	"github.com/epmk/stackflow/internal/workspace"
)

// setup loads and validates config, then initializes logging from it.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log.Setup(log.ParseLevel(cfg.LogLevel), nil)
	return cfg, nil
}

// buildStacks assembles the backends the config selects. The cli backend
// doubles as the agent; the api backend cannot run tools, so Agent stays
// nil there.
func buildStacks(cfg *config.Config) (pipelines.Stacks, error) {
	var stacks pipelines.Stacks

	switch cfg.Claude.Backend {
	case "api":
		key := cfg.ClaudeAPIKey()
		if key == "" {
			return stacks, fmt.Errorf("the api backend needs an API key; set %s", apiKeyEnvName(cfg))
		}
		stacks.Claude = claude.NewAPIClient(cfg.Claude, key)
	default:
		cli := claude.NewClient(cfg.Claude.Command, cfg.ClaudeTimeout())
		stacks.Claude = cli
		stacks.Agent = cli
	}

	stacks.Media = googleai.New(cfg.GoogleAI.StackDir, cfg.GoogleAI.Node, cfg.GoogleAITimeout())
	stacks.Workspace = workspace.NewStack(cfg.Workspace)
	return stacks, nil
}

func apiKeyEnvName(cfg *config.Config) string {
	if cfg.Claude.APIKeyEnv != "" {
		return cfg.Claude.APIKeyEnv
	}
	return "ANTHROPIC_API_KEY"
}

// executePipeline validates and runs p with progress on stdout. It returns
// an error when any step failed so commands exit non-zero.
func executePipeline(ctx context.Context, p *pipeline.Pipeline, initial pipeline.Context) error {
	keys := make([]string, 0, len(initial))
	for k := range initial {
		keys = append(keys, k)
	}
	if err := p.Validate(keys...); err != nil {
		return err
	}

	disp := pipeline.NewDisplay(os.Stdout)
	p.Display = disp
	disp.Header(p.Name, p.Description)

	started := time.Now()
	results := p.Run(ctx, initial)

	if msg, failed := results.Failed(); failed {
		disp.Failed(msg)
		return fmt.Errorf("pipeline %q did not complete", p.Name)
	}
	disp.Summary(cost.Total(results), time.Since(started))
	return nil
}
