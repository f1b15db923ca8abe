package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mounacademy/ninth/internal/daemon"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Backfill journal data from a directive file",
	Long: `Backfill votes, entries, actions, goals, and habits from a
line-directive file, one record per line:

  VOTE 2025-07-01 yes
  ENTRY 2025-07-01 presence=8 sets=4
  ACTION 2025-07-01 social
  GOAL daily "Ship the report"
  HABIT "Meditate"`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	stats, err := d.Tracker.Import(user, f)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d vote(s), %d entr(y/ies), %d action(s), %d goal(s), %d habit(s).\n",
		stats.Votes, stats.Entries, stats.Actions, stats.Goals, stats.Habits)
	return nil
}
