package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/epmk/stackflow/internal/config"
	"github.com/epmk/stackflow/internal/pipelines"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available pipelines",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	fmt.Printf("\n📋 Available Pipelines:\n\n")
	for _, info := range pipelines.All() {
		fmt.Printf("  %s\n", info.Name)
		fmt.Printf("    %s\n", info.Description)
		fmt.Printf("    Args: %s\n", strings.Join(info.Args, ", "))
		if len(info.Optional) > 0 {
			fmt.Printf("    Optional: %s\n", strings.Join(info.Optional, ", "))
		}
		fmt.Println()
	}

	cfg, err := config.Load()
	if err != nil {
		// Built-ins are listed; file discovery needs a readable config.
		return nil
	}
	found := pipelines.Discover(pipelineDirs(cfg)...)
	if len(found) == 0 {
		return nil
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("📁 Pipeline Files:\n\n")
	for _, name := range names {
		fmt.Printf("  %s  (%s)\n", name, found[name])
	}
	fmt.Println()
	return nil
}
