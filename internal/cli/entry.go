package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mounacademy/ninth/internal/daemon"
	"github.com/mounacademy/ninth/internal/domain"
)

func init() {
	entryCmd.Flags().StringVar(&entryDate, "date", "", "Day to log (YYYY-MM-DD, default today)")
	entryCmd.Flags().IntVar(&entryPresence, "presence", -1, "Presence score 1-10")
	entryCmd.Flags().IntVar(&entryProductivity, "productivity", -1, "Productivity score 1-10")
	entryCmd.Flags().IntVar(&entrySets, "sets", -1, "Deep work sets completed")
	entryCmd.Flags().IntVar(&entryWaster, "waster", -1, "Time-waster minutes")
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(actionCmd)
}

var (
	entryDate         string
	entryPresence     int
	entryProductivity int
	entrySets         int
	entryWaster       int
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Log today's measurements",
	Long: `Log any subset of the day's measurements. Fields you omit keep
their existing values, so you can log through the day as you go:

  ninth entry --sets 4
  ninth entry --presence 8 --productivity 7 --waster 25`,
	RunE: runEntry,
}

func runEntry(cmd *cobra.Command, args []string) error {
	update := domain.DailyEntry{Date: entryDate}
	if entryPresence >= 0 {
		update.PresenceScore = domain.IntPtr(entryPresence)
	}
	if entryProductivity >= 0 {
		update.ProductivityScore = domain.IntPtr(entryProductivity)
	}
	if entrySets >= 0 {
		update.DeepWorkSets = domain.IntPtr(entrySets)
	}
	if entryWaster >= 0 {
		update.TimeWasterMinutes = domain.IntPtr(entryWaster)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entry, err := d.Tracker.LogEntry(user, update)
	if err != nil {
		return err
	}

	refresh, err := d.Tracker.Refresh(user)
	if err != nil {
		return err
	}

	fmt.Printf("Entry for %s:\n", entry.Date)
	printField := func(name string, v *int) {
		if v == nil {
			fmt.Printf("  %-20s -\n", name)
			return
		}
		fmt.Printf("  %-20s %d\n", name, *v)
	}
	printField("Presence", entry.PresenceScore)
	printField("Productivity", entry.ProductivityScore)
	printField("Deep work sets", entry.DeepWorkSets)
	printField("Time-waster min", entry.TimeWasterMinutes)

	if refresh.PresenceLeveledUp {
		fmt.Printf("Presence level up! Now level %d.\n", refresh.State.PresenceLevel)
	}
	if refresh.ProductivityLeveledUp {
		fmt.Printf("Character 9 level up! Now level %d.\n", refresh.State.ProductivityLevel)
	}
	return nil
}

var actionCmd = &cobra.Command{
	Use:   "action <social|productivity|presence>",
	Short: "Log a 5-second-rule action",
	Args:  cobra.ExactArgs(1),
	RunE:  runAction,
}

func runAction(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	action, err := d.Tracker.LogAction(user, domain.ActionCategory(args[0]), "")
	if err != nil {
		return err
	}

	counts, err := d.Tracker.ActionCounts(user, action.Date)
	if err != nil {
		return err
	}

	fmt.Printf("Action logged: %s\n", action.Category)
	fmt.Printf("Today: social %d, productivity %d, presence %d\n",
		counts.Social, counts.Productivity, counts.Presence)
	return nil
}
