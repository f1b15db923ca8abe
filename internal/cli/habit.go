package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mounacademy/ninth/internal/daemon"
)

func init() {
	habitAddCmd.Flags().StringVar(&habitCategory, "category", "", "Optional habit category")
	habitToggleCmd.Flags().StringVar(&habitDate, "date", "", "Day to toggle (YYYY-MM-DD, default today)")
	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitToggleCmd)
	habitCmd.AddCommand(habitRmCmd)
	rootCmd.AddCommand(habitCmd)
}

var (
	habitCategory string
	habitDate     string
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage recurring habits",
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitAdd,
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	habit, err := d.Tracker.CreateHabit(user, args[0], habitCategory)
	if err != nil {
		return err
	}

	fmt.Printf("Habit created: %s\n", habit.Name)
	fmt.Printf("  id: %s\n", habit.ID)
	return nil
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active habits",
	RunE:  runHabitList,
}

func runHabitList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	habits, err := d.Tracker.ListHabits(user)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits. Run 'ninth habit add <name>' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tID")
	for _, h := range habits {
		fmt.Fprintf(w, "%s\t%s\t%s\n", h.Name, h.Category, h.ID)
	}
	return w.Flush()
}

var habitToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a habit's completion for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitToggle,
}

func runHabitToggle(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	completion, err := d.Tracker.ToggleHabit(user, args[0], habitDate)
	if err != nil {
		return err
	}

	state := "not done"
	if completion.Completed {
		state = "done"
	}
	fmt.Printf("Habit %s for %s.\n", state, completion.Date)
	return nil
}

var habitRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Archive a habit",
	Long:  `Archive a habit. Past completions are kept.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitRm,
}

func runHabitRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Tracker.ArchiveHabit(user, args[0]); err != nil {
		return err
	}
	fmt.Println("Habit archived.")
	return nil
}
