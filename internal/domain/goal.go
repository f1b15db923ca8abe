package domain

import "time"

// GoalType determines the granularity of a goal's period key.
type GoalType string

const (
	GoalDaily   GoalType = "daily"   // period key: YYYY-MM-DD
	GoalWeekly  GoalType = "weekly"  // period key: YYYY-Www
	GoalMonthly GoalType = "monthly" // period key: YYYY-MM
)

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	switch t {
	case GoalDaily, GoalWeekly, GoalMonthly:
		return true
	}
	return false
}

// Goal is one daily/weekly/monthly goal. Goals never change type after
// creation; completion is a toggle, not a one-way transition.
type Goal struct {
	ID        string    `json:"id"`
	Type      GoalType  `json:"type"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Date      string    `json:"date"` // period key, granularity per Type
	CreatedAt time.Time `json:"created_at"`
}

// PeriodKey returns the period key for a goal of the given type anchored
// at t.
func (gt GoalType) PeriodKey(t time.Time) string {
	switch gt {
	case GoalWeekly:
		return WeekKey(t)
	case GoalMonthly:
		return MonthKey(t)
	default:
		return DayKey(t)
	}
}

// ─── Habits ─────────────────────────────────────────────────────────────────

// Habit is a named recurring practice. Deleting a habit archives it so
// historical completions keep their referent.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Archived  bool      `json:"archived"`
}

// HabitCompletion records the done/undone state of one habit on one day.
// Keyed by (habit, day): toggling the same day overwrites.
type HabitCompletion struct {
	ID        string    `json:"id"` // habitID + "_" + day key
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"` // day key
	Completed bool      `json:"completed"`
	Timestamp time.Time `json:"timestamp"`
}

// CompletionID builds the natural key for a habit completion.
func CompletionID(habitID, dayKey string) string {
	return habitID + "_" + dayKey
}
