package cli

import (
	"github.com/spf13/cobra"

	"github.com/epmk/stackflow/internal/pipelines"
)

var contentType string

var contentCmd = &cobra.Command{
	Use:   "content <topic>",
	Short: "Research a topic, write content, and save it to Google Docs",
	Example: `  stackflow content "AI in Healthcare"
  stackflow content "Startup Tips" --type article`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		stacks, err := buildStacks(cfg)
		if err != nil {
			return err
		}
		p := pipelines.Content(stacks, pipelines.ContentOptions{
			Topic:       args[0],
			ContentType: contentType,
		})
		return executePipeline(cmd.Context(), p, nil)
	},
}

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.Flags().StringVar(&contentType, "type", "blog post", "Content type to write")
}
