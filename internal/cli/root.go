package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epmk/stackflow/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "stackflow",
	Short: "Chain AI stacks into sequential pipelines",
	Long: `stackflow chains AI stacks (Claude, Google AI Studio, Google Workspace)
into sequential pipelines: each step's outputs land in a shared context that
later steps reference with $step.key bindings.`,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stackflow %s\n", version.Version)
	},
}
