package progression_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/mounacademy/ninth/internal/app/progression"
	"github.com/mounacademy/ninth/internal/domain"
)

// fullDays builds n consecutive fully-measured days starting 2025-07-01:
// productivity 5, presence 5, 12 deep-work sets, 10 time-waster minutes.
func fullDays(n int) []domain.DailyEntry {
	entries := make([]domain.DailyEntry, n)
	for i := 0; i < n; i++ {
		date := fmt.Sprintf("2025-07-%02d", i+1)
		entries[i] = entry(date, 5, 5, 12, 10)
	}
	return entries
}

func dailyGoal(date string, completed bool) domain.Goal {
	return domain.Goal{ID: date, Type: domain.GoalDaily, Title: "ship", Completed: completed, Date: date}
}

func weeklyGoal(week string, completed bool) domain.Goal {
	return domain.Goal{ID: week, Type: domain.GoalWeekly, Title: "review", Completed: completed, Date: week}
}

func monthlyGoal(month string, completed bool) domain.Goal {
	return domain.Goal{ID: month, Type: domain.GoalMonthly, Title: "plan", Completed: completed, Date: month}
}

const start = "2025-07-01"

func TestProductivityLevelUp_MeetsAllRequirements(t *testing.T) {
	entries := fullDays(7)
	daily := []domain.Goal{dailyGoal("2025-07-02", true)}
	if !progression.CheckProductivityLevelUp(entries, daily, nil, nil, 1, start) {
		t.Error("seven full days meeting every minimum should level up from 1")
	}
}

func TestProductivityLevelUp_PartialDataDays(t *testing.T) {
	// Seven window entries, but two are missing deep-work sets. They count
	// for the progress display, never for the level-up quota.
	entries := fullDays(7)
	entries[2].DeepWorkSets = nil
	entries[5].DeepWorkSets = nil
	daily := []domain.Goal{dailyGoal("2025-07-02", true)}

	if progression.CheckProductivityLevelUp(entries, daily, nil, nil, 1, start) {
		t.Error("partial-data days must not satisfy the level-up day quota")
	}

	p := progression.ProductivityLevelProgress(entries, daily, nil, nil, 1, start)
	if p.DaysAtCurrentLevel != 7 {
		t.Errorf("progress counts all window entries: expected 7, got %d", p.DaysAtCurrentLevel)
	}
}

func TestProductivityLevelUp_TimeWasterFieldQuota(t *testing.T) {
	// All three scores present every day, but only five days logged
	// time-waster minutes — the ceiling tier needs the full quota.
	entries := fullDays(7)
	entries[1].TimeWasterMinutes = nil
	entries[4].TimeWasterMinutes = nil
	daily := []domain.Goal{dailyGoal("2025-07-02", true)}

	if progression.CheckProductivityLevelUp(entries, daily, nil, nil, 1, start) {
		t.Error("missing time-waster days must block a ceiling-gated tier")
	}
}

func TestProductivityLevelUp_TimeWasterCeiling(t *testing.T) {
	entries := fullDays(7)
	for i := range entries {
		entries[i].TimeWasterMinutes = domain.IntPtr(45) // over the 30-minute cap
	}
	daily := []domain.Goal{dailyGoal("2025-07-02", true)}

	if progression.CheckProductivityLevelUp(entries, daily, nil, nil, 1, start) {
		t.Error("average time waster above the ceiling should block")
	}
}

func TestProductivityLevelUp_SetsBelowMinimum(t *testing.T) {
	entries := fullDays(7)
	for i := range entries {
		entries[i].DeepWorkSets = domain.IntPtr(8)
	}
	daily := []domain.Goal{dailyGoal("2025-07-02", true)}

	if progression.CheckProductivityLevelUp(entries, daily, nil, nil, 1, start) {
		t.Error("sets average below 12 should block")
	}
}

func TestProductivityLevelUp_DailyGoalGate(t *testing.T) {
	entries := fullDays(7)

	// No daily goals in the window at all.
	if progression.CheckProductivityLevelUp(entries, nil, nil, nil, 1, start) {
		t.Error("an empty daily-goal window must block the gate")
	}

	// One incomplete daily goal.
	daily := []domain.Goal{dailyGoal("2025-07-02", true), dailyGoal("2025-07-03", false)}
	if progression.CheckProductivityLevelUp(entries, daily, nil, nil, 1, start) {
		t.Error("a single incomplete daily goal must block the gate")
	}

	// Goals before the window are invisible to the gate.
	old := []domain.Goal{dailyGoal("2025-06-20", false), dailyGoal("2025-07-02", true)}
	if !progression.CheckProductivityLevelUp(entries, old, nil, nil, 1, start) {
		t.Error("goals before the level start date must not block")
	}
}

func TestProductivityLevelUp_WeeklyGoalGate(t *testing.T) {
	entries := fullDays(14)
	daily := []domain.Goal{dailyGoal("2025-07-02", true)}

	// The tier out of level 2 requires weekly goals; none exist.
	if progression.CheckProductivityLevelUp(entries, daily, nil, nil, 2, start) {
		t.Error("zero weekly goals must block the weekly gate")
	}

	incomplete := []domain.Goal{weeklyGoal("2025-W28", false)}
	if progression.CheckProductivityLevelUp(entries, daily, incomplete, nil, 2, start) {
		t.Error("an incomplete weekly goal must block the weekly gate")
	}

	weekly := []domain.Goal{weeklyGoal("2025-W28", true), weeklyGoal("2025-W29", true)}
	if !progression.CheckProductivityLevelUp(entries, daily, weekly, nil, 2, start) {
		t.Error("all weekly and daily goals completed plus metrics met should level up")
	}
}

func TestProductivityLevelUp_MonthlyGoalGate(t *testing.T) {
	entries := fullDays(28)
	daily := []domain.Goal{dailyGoal("2025-07-02", true)}
	weekly := []domain.Goal{weeklyGoal("2025-W28", true)}

	if progression.CheckProductivityLevelUp(entries, daily, weekly, nil, 3, start) {
		t.Error("the tier out of level 3 requires monthly goals")
	}

	monthly := []domain.Goal{monthlyGoal("2025-07", true)}
	if !progression.CheckProductivityLevelUp(entries, daily, weekly, monthly, 3, start) {
		t.Error("all gates satisfied should level up from 3")
	}
}

func TestProductivityLevelUp_FinalTierRaisesMinimums(t *testing.T) {
	// Out of level 4 the score minimums rise to 3.
	entries := fullDays(28)
	for i := range entries {
		entries[i].ProductivityScore = domain.IntPtr(2)
		entries[i].PresenceScore = domain.IntPtr(2)
	}
	daily := []domain.Goal{dailyGoal("2025-07-02", true)}
	weekly := []domain.Goal{weeklyGoal("2025-W28", true)}
	monthly := []domain.Goal{monthlyGoal("2025-07", true)}

	if progression.CheckProductivityLevelUp(entries, daily, weekly, monthly, 4, start) {
		t.Error("averages of 2 must not satisfy the final tier's minimum of 3")
	}
}

func TestProductivityLevelUp_TerminalLevel(t *testing.T) {
	if progression.CheckProductivityLevelUp(fullDays(28), nil, nil, nil, 5, start) {
		t.Error("level 5 is terminal")
	}
}

func TestProductivityProgress_IndependentDenominators(t *testing.T) {
	// One day has only a productivity score, the other only time-waster
	// minutes. Each average uses its own denominator.
	entries := []domain.DailyEntry{
		entry("2025-07-01", -1, 10, -1, -1),
		entry("2025-07-02", -1, -1, -1, 30),
	}
	p := progression.ProductivityLevelProgress(entries, nil, nil, nil, 1, start)
	if p.DaysAtCurrentLevel != 2 {
		t.Errorf("expected 2 window days, got %d", p.DaysAtCurrentLevel)
	}
	if p.AverageProductivityScore != 10 {
		t.Errorf("expected productivity average 10, got %v", p.AverageProductivityScore)
	}
	if p.AverageTimeWasterMinutes != 30 {
		t.Errorf("expected time-waster average 30, got %v", p.AverageTimeWasterMinutes)
	}
	if p.AveragePresenceScore != 0 {
		t.Errorf("no presence measurements: expected 0, got %v", p.AveragePresenceScore)
	}
}

func TestProductivityProgress_GoalRates(t *testing.T) {
	daily := []domain.Goal{
		dailyGoal("2025-07-01", true),
		dailyGoal("2025-07-02", false),
	}
	p := progression.ProductivityLevelProgress(nil, daily, nil, nil, 1, start)
	if p.DailyGoalsAchievedRate != 50 {
		t.Errorf("expected 50%% daily rate, got %d", p.DailyGoalsAchievedRate)
	}
	if p.WeeklyGoalsAchievedRate != 0 {
		t.Errorf("no weekly goals: expected 0, got %d", p.WeeklyGoalsAchievedRate)
	}
}

func TestProductivityProgress_Level5Clamp(t *testing.T) {
	p := progression.ProductivityLevelProgress(nil, nil, nil, nil, 5, start)
	if p.RequiredDays != 28 {
		t.Errorf("expected clamped 28 days, got %d", p.RequiredDays)
	}
	if p.Requirements.MinProductivityScore != 3 {
		t.Errorf("expected clamped minimum 3, got %v", p.Requirements.MinProductivityScore)
	}
	if !p.Requirements.MonthlyGoals {
		t.Error("final tier requires monthly goals")
	}
}

func TestProductivityProgress_Idempotent(t *testing.T) {
	entries := fullDays(10)
	daily := []domain.Goal{dailyGoal("2025-07-02", true)}
	a := progression.ProductivityLevelProgress(entries, daily, nil, nil, 2, start)
	b := progression.ProductivityLevelProgress(entries, daily, nil, nil, 2, start)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("progress must be pure: %+v vs %+v", a, b)
	}
}
