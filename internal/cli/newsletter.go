package cli

import (
	"github.com/spf13/cobra"

	"github.com/epmk/stackflow/internal/pipelines"
)

var (
	newsletterSheet string
	newsletterRange string
	newsletterTo    string
)

var newsletterCmd = &cobra.Command{
	Use:   "newsletter <topic>",
	Short: "Analyze data or research a topic, then draft a newsletter",
	Example: `  stackflow newsletter "Weekly Update" --to team@example.com
  stackflow newsletter "Sales Report" --spreadsheet abc123 --to sales@example.com`,
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
		p := pipelines.Newsletter(stacks, pipelines.NewsletterOptions{
			Topic:         args[0],
			SpreadsheetID: newsletterSheet,
			SheetRange:    newsletterRange,
			Recipient:     newsletterTo,
		})
		return executePipeline(cmd.Context(), p, nil)
	},
}

func init() {
	rootCmd.AddCommand(newsletterCmd)
	newsletterCmd.Flags().StringVar(&newsletterSheet, "spreadsheet", "", "Google Sheets ID to analyze")
	newsletterCmd.Flags().StringVar(&newsletterRange, "range", "Sheet1!A1:Z100", "Sheet range to read")
	newsletterCmd.Flags().StringVar(&newsletterTo, "to", "", "Recipient for the Gmail draft")
}
