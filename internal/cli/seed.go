package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/epmk/stackflow/internal/seed"
	"github.com/epmk/stackflow/internal/workspace"
)

var (
	seedCount    int
	seedDaysBack int
	seedDays     int
	seedYes      bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Manage synthetic therapy sessions in Google Calendar",
	Long: `seed fills a calendar with deterministic test data for exercising
workspace pipelines: fake therapy sessions for a rotating client roster,
spread over the past weeks. list and clean only touch events whose titles
look like sessions.`,
}

var seedCreateCmd = &cobra.Command{
	Use:          "create",
	Short:        "Create test sessions spread over the past weeks",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		seeder, err := newSeeder()
		if err != nil {
			return err
		}
		sessions := seed.Plan(time.Now(), seedCount, seedDaysBack)
		fmt.Printf("\n🧪 Creating %d test therapy sessions...\n", len(sessions))
		ids, err := seeder.Create(cmd.Context(), sessions)
		for i, id := range ids {
			s := sessions[i]
			fmt.Printf("  ✅ %s - %s (%dmin) - %s  [%s]\n",
				s.Client, s.Start.Format("2006-01-02 03:04 PM"),
				int(s.Duration.Minutes()), s.Location, id)
		}
		if err != nil {
			return err
		}
		fmt.Printf("\n✨ Created %d therapy sessions!\n", len(ids))
		return nil
	},
}

var seedWeekCmd = &cobra.Command{
	Use:          "week",
	Short:        "Create one session per weekday of the current week",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		seeder, err := newSeeder()
		if err != nil {
			return err
		}
		sessions := seed.PlanWeek(time.Now())
		fmt.Printf("\n🧪 Creating %d sessions for this week...\n", len(sessions))
		ids, err := seeder.Create(cmd.Context(), sessions)
		for i, id := range ids {
			s := sessions[i]
			fmt.Printf("  ✅ %s - %s  [%s]\n", s.Client, s.Start.Format("2006-01-02 03:04 PM"), id)
		}
		if err != nil {
			return err
		}
		fmt.Printf("\n✨ Created %d sessions for this week!\n", len(ids))
		return nil
	},
}

var seedListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List recent session-like events",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		seeder, err := newSeeder()
		if err != nil {
			return err
		}
		events, err := seeder.ListRecent(cmd.Context(), time.Now(), seedDays)
		if err != nil {
			return err
		}
		fmt.Printf("\n📋 Recent therapy sessions (last %d days):\n", seedDays)
		if len(events) == 0 {
			fmt.Println("  No events found")
			return nil
		}
		for _, ev := range events {
			fmt.Printf("  - %s @ %s | %s\n", ev.Summary, ev.Start.Format("2006-01-02 15:04"), ev.Location)
		}
		fmt.Printf("\nFound %d therapy-like events\n", len(events))
		return nil
	},
}

var seedCleanCmd = &cobra.Command{
	Use:          "clean",
	Short:        "Delete recent session-like events",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		seeder, err := newSeeder()
		if err != nil {
			return err
		}
		events, err := seeder.ListRecent(cmd.Context(), time.Now(), seedDays)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No session-like events to delete.")
			return nil
		}
		for _, ev := range events {
			fmt.Printf("  - %s @ %s\n", ev.Summary, ev.Start.Format("2006-01-02 15:04"))
		}
		if !seedYes && !confirm(fmt.Sprintf("Delete these %d events?", len(events))) {
			fmt.Println("Aborted.")
			return nil
		}

		ids := make([]string, len(events))
		for i, ev := range events {
			ids[i] = ev.ID
		}
		fmt.Printf("\n🗑️  Deleting %d test events...\n", len(ids))
		n, err := seeder.Delete(cmd.Context(), ids)
		if err != nil {
			return fmt.Errorf("deleted %d of %d: %w", n, len(ids), err)
		}
		fmt.Printf("✨ Deleted %d events\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedCreateCmd, seedWeekCmd, seedListCmd, seedCleanCmd)

	seedCreateCmd.Flags().IntVar(&seedCount, "count", 10, "Number of sessions to create")
	seedCreateCmd.Flags().IntVar(&seedDaysBack, "days-back", 30, "Spread sessions over this many past days")
	seedListCmd.Flags().IntVar(&seedDays, "days", 60, "How many days back to search")
	seedCleanCmd.Flags().IntVar(&seedDays, "days", 60, "How many days back to search")
	seedCleanCmd.Flags().BoolVar(&seedYes, "yes", false, "Skip the confirmation prompt")
}

func newSeeder() (*seed.Seeder, error) {
	cfg, err := setup()
	if err != nil {
		return nil, err
	}
	return &seed.Seeder{Calendar: workspace.NewStack(cfg.Workspace)}, nil
}

func confirm(question string) bool {
	fmt.Printf("%s (yes/no): ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(strings.ToLower(line)) == "yes"
}
