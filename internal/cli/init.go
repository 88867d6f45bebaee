package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize stackflow configuration",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home dir: %w", err)
	}

	configDir := filepath.Join(home, ".stackflow")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists: %s\n", configPath)
		return nil
	}

	defaultConfig := `# stackflow configuration
default_pipeline: content
log_level: info

# Extra directory to scan for *.yaml pipeline files (optional).
# pipelines_dir: ~/pipelines

claude:
  backend: cli               # cli (claude binary) or api (Anthropic API)
  command: claude
  timeout: 300s
  api_key_env: ANTHROPIC_API_KEY
  max_tokens: 4096
  models:
    haiku: claude-3-5-haiku-20241022
    sonnet: claude-sonnet-4-20250514
    opus: claude-opus-4-20250514

google_ai:
  # Directory holding the Google AI Studio Node scripts.
  stack_dir: ""
  node: node
  timeout: 600s

workspace:
  credentials_file: ~/.stackflow/credentials.json
  token_file: ~/.stackflow/token.json
  calendar_id: primary
  timezone: America/New_York
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println("Edit the file to point at your stacks, then:")
	fmt.Println("  - put Google OAuth credentials at workspace.credentials_file")
	fmt.Println("  - run `stackflow auth` to authorize Workspace access")
	fmt.Println("  - run `stackflow doctor` to verify the setup")
	return nil
}
