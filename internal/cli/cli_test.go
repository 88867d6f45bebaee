package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/epmk/stackflow/internal/config"
	"github.com/epmk/stackflow/internal/pipeline"
)

func TestInitCreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	configPath := filepath.Join(tmpDir, ".stackflow", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if len(data) == 0 {
		t.Error("config file is empty")
	}
}

func TestInitSkipsWhenFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".stackflow")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(configDir, "config.yaml")
	original := []byte("original content")
	if err := os.WriteFile(configPath, original, 0644); err != nil {
		t.Fatal(err)
	}

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(original) {
		t.Errorf("runInit overwrote existing config: got %q, want %q", data, original)
	}
}

func TestInitTemplateIsValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, ".stackflow", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("template is not valid YAML: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("template does not validate: %v", err)
	}
	if cfg.Claude.Models.Sonnet == "" {
		t.Error("template missing model aliases")
	}
}

func TestParseVars(t *testing.T) {
	tests := []struct {
		name    string
		vars    []string
		want    pipeline.Context
		wantErr bool
	}{
		{
			name: "none",
			vars: nil,
			want: nil,
		},
		{
			name: "simple",
			vars: []string{"topic=solar"},
			want: pipeline.Context{"topic": "solar"},
		},
		{
			name: "value with equals",
			vars: []string{"query=a=b"},
			want: pipeline.Context{"query": "a=b"},
		},
		{
			name:    "missing equals",
			vars:    []string{"topic"},
			wantErr: true,
		},
		{
			name:    "empty key",
			vars:    []string{"=v"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVars(tt.vars)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVars() = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseVars() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildStacksCLIBackend(t *testing.T) {
	cfg := &config.Config{Claude: config.ClaudeConfig{Backend: "cli", Command: "claude"}}
	stacks, err := buildStacks(cfg)
	if err != nil {
		t.Fatalf("buildStacks: %v", err)
	}
	if stacks.Claude == nil {
		t.Error("Claude backend not set")
	}
	if stacks.Agent == nil {
		t.Error("cli backend should support agent runs")
	}
	if stacks.Media == nil || stacks.Workspace == nil {
		t.Error("media/workspace stacks not set")
	}
}

func TestBuildStacksAPIBackend(t *testing.T) {
	t.Setenv("STACKFLOW_TEST_KEY", "sk-test")
	cfg := &config.Config{Claude: config.ClaudeConfig{Backend: "api", APIKeyEnv: "STACKFLOW_TEST_KEY"}}
	stacks, err := buildStacks(cfg)
	if err != nil {
		t.Fatalf("buildStacks: %v", err)
	}
	if stacks.Claude == nil {
		t.Error("Claude backend not set")
	}
	if stacks.Agent != nil {
		t.Error("api backend must not claim agent support")
	}
}

func TestBuildStacksAPIBackendNeedsKey(t *testing.T) {
	t.Setenv("STACKFLOW_TEST_KEY", "")
	cfg := &config.Config{Claude: config.ClaudeConfig{Backend: "api", APIKeyEnv: "STACKFLOW_TEST_KEY"}}
	_, err := buildStacks(cfg)
	if err == nil || !strings.Contains(err.Error(), "STACKFLOW_TEST_KEY") {
		t.Errorf("err = %v, want missing key error naming the variable", err)
	}
}

func TestResolvePipelineFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	pipelinesDir := filepath.Join(tmpDir, "pipelines")
	if err := os.MkdirAll(pipelinesDir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(pipelinesDir, "digest.yaml")
	def := "name: digest\nsteps:\n  - name: a\n    action: claude.ask\n"
	if err := os.WriteFile(path, []byte(def), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{PipelinesDir: pipelinesDir}

	t.Run("by path", func(t *testing.T) {
		got, err := resolvePipelineFile(cfg, path)
		if err != nil {
			t.Fatalf("resolvePipelineFile: %v", err)
		}
		if got.Name != "digest" {
			t.Errorf("Name = %q", got.Name)
		}
	})

	t.Run("by name", func(t *testing.T) {
		got, err := resolvePipelineFile(cfg, "digest")
		if err != nil {
			t.Fatalf("resolvePipelineFile: %v", err)
		}
		if got.Name != "digest" {
			t.Errorf("Name = %q", got.Name)
		}
	})

	t.Run("unknown name lists available", func(t *testing.T) {
		_, err := resolvePipelineFile(cfg, "nope")
		if err == nil || !strings.Contains(err.Error(), "digest") {
			t.Errorf("err = %v, want available pipelines listed", err)
		}
	})
}
