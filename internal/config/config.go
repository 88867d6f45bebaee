package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure.
type Config struct {
	DefaultPipeline string          `yaml:"default_pipeline"`
	PipelinesDir    string          `yaml:"pipelines_dir"`
	LogLevel        string          `yaml:"log_level"`
	Claude          ClaudeConfig    `yaml:"claude"`
	GoogleAI        GoogleAIConfig  `yaml:"google_ai"`
	Workspace       WorkspaceConfig `yaml:"workspace"`
}

// ClaudeConfig selects and configures the Claude backend. The cli backend
// shells out to the claude binary; the api backend talks to the Anthropic
// API directly.
type ClaudeConfig struct {
	Backend   string       `yaml:"backend"`
	Command   string       `yaml:"command"`
	Timeout   string       `yaml:"timeout"`
	APIKeyEnv string       `yaml:"api_key_env"`
	BaseURL   string       `yaml:"base_url"`
	MaxTokens int          `yaml:"max_tokens"`
	Models    ModelAliases `yaml:"models"`
}

// ModelAliases maps the short model names pipelines use to full model IDs.
type ModelAliases struct {
	Haiku  string `yaml:"haiku"`
	Sonnet string `yaml:"sonnet"`
	Opus   string `yaml:"opus"`
}

// Resolve maps an alias to its model ID. Unknown names pass through, so
// pipelines can name a full model ID directly.
func (m ModelAliases) Resolve(name string) string {
	switch name {
	case "haiku":
		return m.Haiku
	case "sonnet":
		return m.Sonnet
	case "opus":
		return m.Opus
	}
	return name
}

// GoogleAIConfig locates the Node-based Google AI Studio scripts.
type GoogleAIConfig struct {
	StackDir string `yaml:"stack_dir"`
	Node     string `yaml:"node"`
	Timeout  string `yaml:"timeout"`
}

// WorkspaceConfig holds Google Workspace OAuth file locations and defaults.
type WorkspaceConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	CalendarID      string `yaml:"calendar_id"`
	Timezone        string `yaml:"timezone"`
}

// Validate checks that required fields are present and well-formed.
func (c *Config) Validate() error {
	if c.DefaultPipeline == "" {
		return fmt.Errorf("default_pipeline is required")
	}
	switch c.Claude.Backend {
	case "cli", "api":
	default:
		return fmt.Errorf("claude.backend must be \"cli\" or \"api\", got %q", c.Claude.Backend)
	}
	if c.Claude.Backend == "cli" && c.Claude.Command == "" {
		return fmt.Errorf("claude.command is required for the cli backend")
	}
	for name, v := range map[string]string{
		"claude.timeout":    c.Claude.Timeout,
		"google_ai.timeout": c.GoogleAI.Timeout,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ClaudeAPIKey returns the resolved Anthropic API key.
func (c *Config) ClaudeAPIKey() string {
	if c.Claude.APIKeyEnv == "" {
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return os.Getenv(c.Claude.APIKeyEnv)
}

// ClaudeTimeout returns the parsed claude timeout, or the default when
// unset or unparseable.
func (c *Config) ClaudeTimeout() time.Duration {
	return parseTimeout(c.Claude.Timeout, 5*time.Minute)
}

// GoogleAITimeout returns the parsed google_ai timeout. Video generation
// is slow, so the default is generous.
func (c *Config) GoogleAITimeout() time.Duration {
	return parseTimeout(c.GoogleAI.Timeout, 10*time.Minute)
}

func parseTimeout(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// Load resolves config from project → user → defaults.
func Load() (*Config, error) {
	cfg := defaults()

	// user-level config
	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, ".stackflow", "config.yaml")
		if err := mergeFile(cfg, userPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	// project-level config (highest priority)
	projectPath := filepath.Join(".stackflow", "config.yaml")
	if err := mergeFile(cfg, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return cfg, nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Keys must come from the environment, never from config files.
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err == nil {
		if cl, ok := raw["claude"].(map[string]interface{}); ok {
			if _, hasKey := cl["api_key"]; hasKey {
				return fmt.Errorf("configuration field 'claude.api_key' is not supported. "+
					"Remove it from %s and set the key via the environment variable named in "+
					"'claude.api_key_env' instead.", path)
			}
		}
	}
	return yaml.Unmarshal(data, dst)
}

// ExpandHome resolves a leading "~" against the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func defaults() *Config {
	return &Config{
		DefaultPipeline: "content",
		LogLevel:        "info",
		Claude: ClaudeConfig{
			Backend:   "cli",
			Command:   "claude",
			Timeout:   "300s",
			APIKeyEnv: "ANTHROPIC_API_KEY",
			MaxTokens: 4096,
			Models: ModelAliases{
				Haiku:  "claude-3-5-haiku-20241022",
				Sonnet: "claude-sonnet-4-20250514",
				Opus:   "claude-opus-4-20250514",
			},
		},
		GoogleAI: GoogleAIConfig{
			Node:    "node",
			Timeout: "600s",
		},
		Workspace: WorkspaceConfig{
			CredentialsFile: "~/.stackflow/credentials.json",
			TokenFile:       "~/.stackflow/token.json",
			CalendarID:      "primary",
			Timezone:        "America/New_York",
		},
	}
}
