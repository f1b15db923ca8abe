package tracker

import (
	"log"

	"github.com/mounacademy/ninth/internal/app/progression"
	"github.com/mounacademy/ninth/internal/domain"
)

// Snapshot is the home-screen document: everything the client needs for
// one day in a single read.
type Snapshot struct {
	Date         string                      `json:"date"`
	Vote         *domain.DailyVote           `json:"vote,omitempty"`
	Entry        *domain.DailyEntry          `json:"entry,omitempty"`
	ActionCounts domain.ActionCounts         `json:"action_counts"`
	DailyGoals   []domain.Goal               `json:"daily_goals"`
	WeeklyGoals  []domain.Goal               `json:"weekly_goals"`
	MonthlyGoals []domain.Goal               `json:"monthly_goals"`
	Habits       []domain.Habit              `json:"habits"`
	Completions  []domain.HabitCompletion    `json:"completions"`
	Streak       domain.StreakInfo           `json:"streak"`
	Settings     domain.UserSettings         `json:"settings"`
	State        domain.LevelsGameState      `json:"state"`
	Presence     domain.PresenceProgress     `json:"presence"`
	Productivity domain.ProductivityProgress `json:"productivity"`
}

// LoadSnapshot assembles the day's snapshot. Each query fails
// independently: a broken table costs its own section, never the whole
// screen. Errors are logged and the section stays at its zero value.
func (s *Service) LoadSnapshot(userID string) Snapshot {
	today := s.today()
	now := s.now()
	snap := Snapshot{Date: today}

	var err error
	if snap.Vote, err = s.db.GetVote(userID, today); err != nil {
		log.Printf("[tracker] snapshot vote: %v", err)
	}
	if snap.Entry, err = s.db.GetEntry(userID, today); err != nil {
		log.Printf("[tracker] snapshot entry: %v", err)
	}
	if actions, err := s.db.ListActionsByDate(userID, today); err != nil {
		log.Printf("[tracker] snapshot actions: %v", err)
	} else {
		snap.ActionCounts = domain.CountActions(actions)
	}

	daily := s.snapshotGoals(userID, domain.GoalDaily)
	weekly := s.snapshotGoals(userID, domain.GoalWeekly)
	monthly := s.snapshotGoals(userID, domain.GoalMonthly)
	snap.DailyGoals = goalsForPeriod(daily, today)
	snap.WeeklyGoals = goalsForPeriod(weekly, domain.WeekKey(now))
	snap.MonthlyGoals = goalsForPeriod(monthly, domain.MonthKey(now))

	if snap.Habits, err = s.db.ListHabits(userID, false); err != nil {
		log.Printf("[tracker] snapshot habits: %v", err)
	}
	if snap.Completions, err = s.db.ListCompletionsByDate(userID, today); err != nil {
		log.Printf("[tracker] snapshot completions: %v", err)
	}

	if votes, err := s.db.ListVotes(userID); err != nil {
		log.Printf("[tracker] snapshot votes: %v", err)
	} else {
		snap.Streak = progression.ComputeStreak(votes, today)
	}
	if snap.Settings, err = s.db.GetSettings(userID); err != nil {
		log.Printf("[tracker] snapshot settings: %v", err)
		snap.Settings = domain.DefaultSettings()
	}

	// Read-only progress: a snapshot never advances levels.
	st, err := s.db.GetGameState(userID)
	if err != nil {
		log.Printf("[tracker] snapshot game state: %v", err)
	}
	if st == nil {
		fresh := domain.NewLevelsGameState(today)
		st = &fresh
	}
	snap.State = *st

	entries, err := s.db.ListEntries(userID)
	if err != nil {
		log.Printf("[tracker] snapshot entries: %v", err)
	}
	snap.Presence = progression.PresenceLevelProgress(entries, st.PresenceLevel, st.PresenceLevelStartDate)
	snap.Productivity = progression.ProductivityLevelProgress(entries, daily, weekly, monthly, st.ProductivityLevel, st.ProductivityLevelStartDate)

	return snap
}

func (s *Service) snapshotGoals(userID string, t domain.GoalType) []domain.Goal {
	goals, err := s.db.ListGoals(userID, t)
	if err != nil {
		log.Printf("[tracker] snapshot %s goals: %v", t, err)
		return nil
	}
	return goals
}

// goalsForPeriod filters a goal list to a single period key.
func goalsForPeriod(goals []domain.Goal, period string) []domain.Goal {
	var out []domain.Goal
	for _, g := range goals {
		if g.Date == period {
			out = append(out, g)
		}
	}
	return out
}
