package claude

import (
	"context"
	"fmt"
	"strings"
	"sync"

	claudemodel "github.com/cloudwego/eino-ext/components/model/claude"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/epmk/stackflow/internal/config"
	"github.com/epmk/stackflow/internal/cost"
)

// APIClient talks to the Anthropic API directly. Chat models are built
// lazily, one per distinct model ID, and reused across calls.
type APIClient struct {
	cfg    config.ClaudeConfig
	apiKey string

	mu     sync.Mutex
	models map[string]einomodel.ToolCallingChatModel
}

// NewAPIClient builds an API-backed client. The key comes from the caller,
// never from config files.
func NewAPIClient(cfg config.ClaudeConfig, apiKey string) *APIClient {
	return &APIClient{
		cfg:    cfg,
		apiKey: apiKey,
		models: make(map[string]einomodel.ToolCallingChatModel),
	}
}

// Ask sends a single prompt to the default model, sonnet.
func (c *APIClient) Ask(ctx context.Context, prompt string) (*Reply, error) {
	return c.AskModel(ctx, prompt, ModelSonnet)
}

// AskModel sends a single prompt to the named model. Short aliases resolve
// through the configured model table; full IDs pass through.
func (c *APIClient) AskModel(ctx context.Context, prompt, model string) (*Reply, error) {
	if model == "" {
		model = ModelSonnet
	}
	id := c.cfg.Models.Resolve(model)

	cm, err := c.chatModel(ctx, id)
	if err != nil {
		return nil, err
	}

	resp, err := cm.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return nil, fmt.Errorf("claude api: %w", err)
	}

	reply := &Reply{Text: strings.TrimSpace(resp.Content)}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		u := resp.ResponseMeta.Usage
		reply.Cost = cost.FromUsage(id, cost.Usage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
		})
	}
	return reply, nil
}

func (c *APIClient) chatModel(ctx context.Context, id string) (einomodel.ToolCallingChatModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cm, ok := c.models[id]; ok {
		return cm, nil
	}

	maxTokens := c.cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	conf := &claudemodel.Config{
		APIKey:    c.apiKey,
		Model:     id,
		MaxTokens: maxTokens,
	}
	if c.cfg.BaseURL != "" {
		conf.BaseURL = &c.cfg.BaseURL
	}

	cm, err := claudemodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("building claude model %s: %w", id, err)
	}
	c.models[id] = cm
	return cm, nil
}
