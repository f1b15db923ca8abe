package tracker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mounacademy/ninth/internal/domain"
	"github.com/mounacademy/ninth/internal/infra/metrics"
)

// ─── Goals ──────────────────────────────────────────────────────────────────

// CreateGoal adds a goal for the current period of its type.
func (s *Service) CreateGoal(userID string, t domain.GoalType, title string) (domain.Goal, error) {
	if !t.Valid() {
		return domain.Goal{}, domain.ErrInvalidGoal
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Goal{}, domain.ErrEmptyTitle
	}

	g := domain.Goal{
		ID:        uuid.NewString(),
		Type:      t,
		Title:     title,
		Date:      t.PeriodKey(s.now()),
		CreatedAt: s.now(),
	}
	if err := s.db.PutGoal(userID, g); err != nil {
		return domain.Goal{}, fmt.Errorf("put goal: %w", err)
	}
	return g, nil
}

// ToggleGoal flips a goal's completion state and returns the updated goal.
func (s *Service) ToggleGoal(userID, id string) (domain.Goal, error) {
	g, err := s.db.GetGoal(userID, id)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	if g == nil {
		return domain.Goal{}, domain.ErrGoalNotFound
	}

	g.Completed = !g.Completed
	if err := s.db.SetGoalCompleted(userID, id, g.Completed); err != nil {
		return domain.Goal{}, fmt.Errorf("set completed: %w", err)
	}
	if g.Completed {
		metrics.GoalsCompleted.WithLabelValues(string(g.Type)).Inc()
	}
	return *g, nil
}

// ListGoals returns the user's goals of one type, newest period first.
func (s *Service) ListGoals(userID string, t domain.GoalType) ([]domain.Goal, error) {
	if !t.Valid() {
		return nil, domain.ErrInvalidGoal
	}
	return s.db.ListGoals(userID, t)
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(userID, id string) error {
	return s.db.DeleteGoal(userID, id)
}

// ─── Habits ─────────────────────────────────────────────────────────────────

// CreateHabit adds a recurring habit.
func (s *Service) CreateHabit(userID, name, category string) (domain.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Habit{}, domain.ErrEmptyTitle
	}

	h := domain.Habit{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		CreatedAt: s.now(),
	}
	if err := s.db.PutHabit(userID, h); err != nil {
		return domain.Habit{}, fmt.Errorf("put habit: %w", err)
	}
	return h, nil
}

// UpdateHabit renames or recategorizes a habit. Empty fields are left
// unchanged.
func (s *Service) UpdateHabit(userID, id, name, category string) (domain.Habit, error) {
	h, err := s.db.GetHabit(userID, id)
	if err != nil {
		return domain.Habit{}, fmt.Errorf("get habit: %w", err)
	}
	if h == nil {
		return domain.Habit{}, domain.ErrHabitNotFound
	}

	if name != "" {
		name = strings.TrimSpace(name)
		if name == "" {
			return domain.Habit{}, domain.ErrEmptyTitle
		}
		h.Name = name
	}
	if category != "" {
		h.Category = category
	}

	if err := s.db.PutHabit(userID, *h); err != nil {
		return domain.Habit{}, fmt.Errorf("put habit: %w", err)
	}
	return *h, nil
}

// ListHabits returns the user's active habits.
func (s *Service) ListHabits(userID string) ([]domain.Habit, error) {
	return s.db.ListHabits(userID, false)
}

// ArchiveHabit retires a habit without touching its completion history.
func (s *Service) ArchiveHabit(userID, id string) error {
	return s.db.ArchiveHabit(userID, id)
}

// ToggleHabit flips one habit's done state for a day. An empty date means
// today. Toggling the same day again overwrites, never duplicates.
func (s *Service) ToggleHabit(userID, habitID, date string) (domain.HabitCompletion, error) {
	if date == "" {
		date = s.today()
	} else if _, err := domain.ParseDay(date); err != nil {
		return domain.HabitCompletion{}, err
	}

	h, err := s.db.GetHabit(userID, habitID)
	if err != nil {
		return domain.HabitCompletion{}, fmt.Errorf("get habit: %w", err)
	}
	if h == nil {
		return domain.HabitCompletion{}, domain.ErrHabitNotFound
	}

	existing, err := s.db.ListCompletionsByDate(userID, date)
	if err != nil {
		return domain.HabitCompletion{}, fmt.Errorf("list completions: %w", err)
	}
	completed := true
	for _, c := range existing {
		if c.HabitID == habitID {
			completed = !c.Completed
			break
		}
	}

	c := domain.HabitCompletion{
		ID:        domain.CompletionID(habitID, date),
		HabitID:   habitID,
		Date:      date,
		Completed: completed,
		Timestamp: s.now(),
	}
	if err := s.db.PutHabitCompletion(userID, c); err != nil {
		return domain.HabitCompletion{}, fmt.Errorf("put completion: %w", err)
	}
	if completed {
		metrics.HabitsCompleted.Inc()
	}
	return c, nil
}
