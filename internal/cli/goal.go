package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mounacademy/ninth/internal/daemon"
	"github.com/mounacademy/ninth/internal/domain"
)

func init() {
	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalDoneCmd)
	goalCmd.AddCommand(goalRmCmd)
	rootCmd.AddCommand(goalCmd)
}

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily, weekly, and monthly goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <daily|weekly|monthly> <title>",
	Short: "Create a goal for the current period",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalAdd,
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goal, err := d.Tracker.CreateGoal(user, domain.GoalType(args[0]), args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Goal created: %s (%s, %s)\n", goal.Title, goal.Type, goal.Date)
	fmt.Printf("  id: %s\n", goal.ID)
	return nil
}

var goalListCmd = &cobra.Command{
	Use:   "list <daily|weekly|monthly>",
	Short: "List goals of one type",
	RunE:  runGoalList,
	Args:  cobra.ExactArgs(1),
}

func runGoalList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goals, err := d.Tracker.ListGoals(user, domain.GoalType(args[0]))
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		fmt.Println("No goals. Run 'ninth goal add' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DONE\tPERIOD\tTITLE\tID")
	for _, g := range goals {
		done := " "
		if g.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "[%s]\t%s\t%s\t%s\n", done, g.Date, g.Title, g.ID)
	}
	return w.Flush()
}

var goalDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a goal's completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDone,
}

func runGoalDone(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goal, err := d.Tracker.ToggleGoal(user, args[0])
	if err != nil {
		return err
	}

	refresh, err := d.Tracker.Refresh(user)
	if err != nil {
		return err
	}

	state := "open"
	if goal.Completed {
		state = "completed"
	}
	fmt.Printf("Goal %s: %s\n", state, goal.Title)
	if refresh.ProductivityLeveledUp {
		fmt.Printf("Character 9 level up! Now level %d.\n", refresh.State.ProductivityLevel)
	}
	return nil
}

var goalRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalRm,
}

func runGoalRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Tracker.DeleteGoal(user, args[0]); err != nil {
		return err
	}
	fmt.Println("Goal deleted.")
	return nil
}
