package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/epmk/stackflow/internal/config"
	"github.com/epmk/stackflow/internal/workspace"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stackflow prerequisites and configuration",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	allOK := true

	check := func(label string, ok bool, hint string) {
		if ok {
			fmt.Printf("✅ %s\n", label)
		} else {
			fmt.Printf("❌ %s — %s\n", label, hint)
			allOK = false
		}
	}

	// 1. config
	cfg, cfgErr := config.Load()
	check("config loadable", cfgErr == nil, fmt.Sprintf("fix config: %v", cfgErr))
	if cfgErr != nil {
		fmt.Println("\nFix the config before the remaining checks can run.")
		return nil
	}
	validateErr := cfg.Validate()
	check("config valid", validateErr == nil, fmt.Sprintf("%v", validateErr))

	// 2. claude backend
	switch cfg.Claude.Backend {
	case "api":
		keyEnv := apiKeyEnvName(cfg)
		check(keyEnv+" set", cfg.ClaudeAPIKey() != "", "set environment variable "+keyEnv)
	default:
		command := cfg.Claude.Command
		if command == "" {
			command = "claude"
		}
		_, err := exec.LookPath(command)
		check("claude CLI installed", err == nil, "install claude: https://claude.ai/claude-code")
	}

	// 3. google ai stack
	node := cfg.GoogleAI.Node
	if node == "" {
		node = "node"
	}
	_, nodeErr := exec.LookPath(node)
	check("node installed", nodeErr == nil, "install Node.js for image/video steps")
	if cfg.GoogleAI.StackDir != "" {
		_, statErr := os.Stat(config.ExpandHome(cfg.GoogleAI.StackDir))
		check("google_ai.stack_dir exists", statErr == nil, fmt.Sprintf("check path %s", cfg.GoogleAI.StackDir))
	} else {
		check("google_ai.stack_dir set", false, "set google_ai.stack_dir to the Google AI Studio scripts")
	}

	// 4. workspace credentials
	credsPath := config.ExpandHome(cfg.Workspace.CredentialsFile)
	_, credsErr := os.Stat(credsPath)
	check("workspace credentials present", credsErr == nil,
		fmt.Sprintf("download OAuth credentials to %s", credsPath))

	auth := workspace.NewStack(cfg.Workspace).Auth()
	check("workspace token present", auth.HasToken(), "run `stackflow auth`")

	fmt.Println()
	if allOK {
		fmt.Println("All checks passed. stackflow is ready.")
	} else {
		fmt.Println("Some checks failed. Fix the issues above before running pipelines.")
	}
	return nil
}
