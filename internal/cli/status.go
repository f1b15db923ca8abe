package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mounacademy/ninth/internal/daemon"
)

func init() {
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(statusCmd)
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show level progress for both games",
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	refresh, err := d.Tracker.Refresh(user)
	if err != nil {
		return err
	}

	p := refresh.Presence
	fmt.Printf("Presence: level %d (%d day(s) in)\n", p.CurrentLevel, p.DaysAtCurrentLevel)
	fmt.Printf("  average score %.1f — next tier needs %d day(s) at avg >= %.1f\n",
		p.AverageScore, p.RequiredDays, p.RequiredScore)

	pr := refresh.Productivity
	req := pr.Requirements
	fmt.Printf("Character 9: level %d (%d day(s) in)\n", pr.CurrentLevel, pr.DaysAtCurrentLevel)
	fmt.Printf("  averages: productivity %.1f, presence %.1f, sets/day %.1f, waster %d min\n",
		pr.AverageProductivityScore, pr.AveragePresenceScore,
		pr.AverageSetsPerDay, pr.AverageTimeWasterMinutes)
	fmt.Printf("  next tier: %d day(s), productivity >= %.1f, presence >= %.1f, sets >= %.1f\n",
		pr.RequiredDays, req.MinProductivityScore, req.MinPresenceScore, req.MinSetsPerDay)
	if req.MaxTimeWasterMinutes != nil {
		fmt.Printf("  time-waster ceiling: %d min/day\n", *req.MaxTimeWasterMinutes)
	}
	if req.DailyGoals || req.WeeklyGoals || req.MonthlyGoals {
		fmt.Printf("  goal gates:")
		if req.DailyGoals {
			fmt.Printf(" daily (%d%%)", pr.DailyGoalsAchievedRate)
		}
		if req.WeeklyGoals {
			fmt.Printf(" weekly (%d%%)", pr.WeeklyGoalsAchievedRate)
		}
		if req.MonthlyGoals {
			fmt.Printf(" monthly (%d%%)", pr.MonthlyGoalsAchievedRate)
		}
		fmt.Println()
	}

	if refresh.PresenceLeveledUp {
		fmt.Printf("Presence level up! Now level %d.\n", refresh.State.PresenceLevel)
	}
	if refresh.ProductivityLeveledUp {
		fmt.Printf("Character 9 level up! Now level %d.\n", refresh.State.ProductivityLevel)
	}
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's snapshot",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	snap := d.Tracker.LoadSnapshot(user)

	fmt.Printf("Today: %s\n", snap.Date)
	if snap.Vote != nil {
		fmt.Printf("  Vote: %s\n", snap.Vote.Vote)
	} else {
		fmt.Println("  Vote: not cast yet")
	}
	if snap.Entry != nil {
		fmt.Printf("  Entry: logged\n")
	} else {
		fmt.Println("  Entry: nothing logged")
	}
	fmt.Printf("  Actions: social %d, productivity %d, presence %d\n",
		snap.ActionCounts.Social, snap.ActionCounts.Productivity, snap.ActionCounts.Presence)

	done := 0
	for _, c := range snap.Completions {
		if c.Completed {
			done++
		}
	}
	fmt.Printf("  Habits: %d/%d done\n", done, len(snap.Habits))
	fmt.Printf("  Goals today: %d daily, %d weekly, %d monthly\n",
		len(snap.DailyGoals), len(snap.WeeklyGoals), len(snap.MonthlyGoals))
	fmt.Printf("  Streak: %d day(s)\n", snap.Streak.CurrentStreak)
	fmt.Printf("  Levels: presence %d, Character 9 %d\n",
		snap.State.PresenceLevel, snap.State.ProductivityLevel)
	return nil
}
