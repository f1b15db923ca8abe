package tracker

import (
	"fmt"

	"github.com/mounacademy/ninth/internal/app/progression"
	"github.com/mounacademy/ninth/internal/domain"
	"github.com/mounacademy/ninth/internal/infra/metrics"
)

// RefreshResult is the outcome of one level refresh pass: the (possibly
// advanced) state plus the progress snapshots computed against it.
type RefreshResult struct {
	State                 domain.LevelsGameState      `json:"state"`
	Presence              domain.PresenceProgress     `json:"presence"`
	Productivity          domain.ProductivityProgress `json:"productivity"`
	PresenceLeveledUp     bool                        `json:"presence_leveled_up"`
	ProductivityLeveledUp bool                        `json:"productivity_leveled_up"`
}

// GameState returns the user's levels game state, initializing a level-1
// state on first use.
func (s *Service) GameState(userID string) (domain.LevelsGameState, error) {
	st, err := s.db.GetGameState(userID)
	if err != nil {
		return domain.LevelsGameState{}, fmt.Errorf("get game state: %w", err)
	}
	if st != nil {
		return *st, nil
	}

	fresh := domain.NewLevelsGameState(s.today())
	if err := s.db.PutGameState(userID, fresh); err != nil {
		return domain.LevelsGameState{}, fmt.Errorf("init game state: %w", err)
	}
	return fresh, nil
}

// Streak computes the vote streak summary from the full history.
func (s *Service) Streak(userID string) (domain.StreakInfo, error) {
	votes, err := s.db.ListVotes(userID)
	if err != nil {
		return domain.StreakInfo{}, fmt.Errorf("list votes: %w", err)
	}
	return progression.ComputeStreak(votes, s.today()), nil
}

// Refresh runs both level-up checks against the current history and
// persists any advancement. A level-up bumps the level (capped at 5) and
// resets that game's start date to today, so the new tier's window opens
// empty. Refresh runs on demand — after journal writes and on levels
// reads — rather than on a timer.
func (s *Service) Refresh(userID string) (RefreshResult, error) {
	timer := s.now()
	defer func() { metrics.RefreshDuration.Observe(s.now().Sub(timer).Seconds()) }()

	st, err := s.GameState(userID)
	if err != nil {
		return RefreshResult{}, err
	}

	entries, err := s.db.ListEntries(userID)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("list entries: %w", err)
	}
	daily, err := s.db.ListGoals(userID, domain.GoalDaily)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("list daily goals: %w", err)
	}
	weekly, err := s.db.ListGoals(userID, domain.GoalWeekly)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("list weekly goals: %w", err)
	}
	monthly, err := s.db.ListGoals(userID, domain.GoalMonthly)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("list monthly goals: %w", err)
	}

	today := s.today()
	result := RefreshResult{}

	if progression.CheckPresenceLevelUp(entries, st.PresenceLevel, st.PresenceLevelStartDate) {
		st.PresenceLevel++
		if st.PresenceLevel > domain.MaxLevel {
			st.PresenceLevel = domain.MaxLevel
		}
		st.PresenceLevelStartDate = today
		result.PresenceLeveledUp = true
		metrics.LevelUps.WithLabelValues("presence").Inc()
	}

	if progression.CheckProductivityLevelUp(entries, daily, weekly, monthly, st.ProductivityLevel, st.ProductivityLevelStartDate) {
		st.ProductivityLevel++
		if st.ProductivityLevel > domain.MaxLevel {
			st.ProductivityLevel = domain.MaxLevel
		}
		st.ProductivityLevelStartDate = today
		result.ProductivityLeveledUp = true
		metrics.LevelUps.WithLabelValues("productivity").Inc()
	}

	if result.PresenceLeveledUp || result.ProductivityLeveledUp {
		if err := s.db.PutGameState(userID, st); err != nil {
			return RefreshResult{}, fmt.Errorf("put game state: %w", err)
		}
		s.queueLevelUpReminders(userID, result, st)
	}

	metrics.PresenceLevel.WithLabelValues(userID).Set(float64(st.PresenceLevel))
	metrics.ProductivityLevel.WithLabelValues(userID).Set(float64(st.ProductivityLevel))

	result.State = st
	result.Presence = progression.PresenceLevelProgress(entries, st.PresenceLevel, st.PresenceLevelStartDate)
	result.Productivity = progression.ProductivityLevelProgress(entries, daily, weekly, monthly, st.ProductivityLevel, st.ProductivityLevelStartDate)
	return result, nil
}

// queueLevelUpReminders writes a level-up celebration into the reminder
// log. Failures are non-fatal: the advancement is already persisted.
func (s *Service) queueLevelUpReminders(userID string, result RefreshResult, st domain.LevelsGameState) {
	now := s.now().Unix()
	if result.PresenceLeveledUp {
		s.db.InsertReminder(domain.Reminder{
			UserID:    userID,
			Kind:      domain.ReminderLevelUp,
			Title:     "Presence level up!",
			Body:      fmt.Sprintf("You reached presence level %d.", st.PresenceLevel),
			CreatedAt: now,
		})
	}
	if result.ProductivityLeveledUp {
		s.db.InsertReminder(domain.Reminder{
			UserID:    userID,
			Kind:      domain.ReminderLevelUp,
			Title:     "Character 9 level up!",
			Body:      fmt.Sprintf("You reached productivity level %d.", st.ProductivityLevel),
			CreatedAt: now,
		})
	}
}
