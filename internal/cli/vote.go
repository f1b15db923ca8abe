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
	voteCmd.Flags().StringVar(&voteNote, "note", "", "Optional note to attach to the vote")
	voteCmd.AddCommand(voteHistoryCmd)
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(streakCmd)
}

var voteNote string

var voteCmd = &cobra.Command{
	Use:   "vote <yes|no>",
	Short: "Cast today's identity vote",
	Long: `Cast your daily vote: did you show up as the person you want to be?
Either answer counts toward the streak. Voting twice on the same day
overwrites the earlier vote.`,
	Args: cobra.ExactArgs(1),
	RunE: runVote,
}

func runVote(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	vote, err := d.Tracker.CastVote(user, domain.VoteValue(args[0]), voteNote)
	if err != nil {
		return err
	}

	streak, err := d.Tracker.Streak(user)
	if err != nil {
		return err
	}

	fmt.Printf("Vote recorded: %s (%s)\n", vote.Vote, vote.Date)
	fmt.Printf("Streak: %d day(s), longest %d, %d total votes\n",
		streak.CurrentStreak, streak.LongestStreak, streak.TotalVotes)
	return nil
}

var voteHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List all recorded votes",
	RunE:  runVoteHistory,
}

func runVoteHistory(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	votes, err := d.Tracker.VoteHistory(user)
	if err != nil {
		return err
	}

	if len(votes) == 0 {
		fmt.Println("No votes yet. Run 'ninth vote yes' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tVOTE\tNOTE")
	for _, v := range votes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.Date, v.Vote, v.Note)
	}
	return w.Flush()
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current vote streak",
	RunE:  runStreak,
}

func runStreak(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	streak, err := d.Tracker.Streak(user)
	if err != nil {
		return err
	}

	fmt.Printf("Current streak: %d day(s)\n", streak.CurrentStreak)
	fmt.Printf("Longest streak: %d day(s)\n", streak.LongestStreak)
	fmt.Printf("Total votes:    %d\n", streak.TotalVotes)
	return nil
}
