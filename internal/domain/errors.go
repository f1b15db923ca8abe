package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Date key errors. A malformed key is a caller bug, not a recoverable
	// condition — the engines never see one.
	ErrBadDayKey   = errors.New("malformed day key (want YYYY-MM-DD)")
	ErrBadWeekKey  = errors.New("malformed week key (want YYYY-Www)")
	ErrBadMonthKey = errors.New("malformed month key (want YYYY-MM)")

	// Record errors
	ErrVoteNotFound    = errors.New("no vote recorded for that day")
	ErrEntryNotFound   = errors.New("no entry recorded for that day")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrHabitNotFound   = errors.New("habit not found")
	ErrInvalidVote     = errors.New("vote must be yes or no")
	ErrInvalidScore    = errors.New("score must be between 1 and 10")
	ErrInvalidCount    = errors.New("count must be non-negative")
	ErrInvalidGoal     = errors.New("goal type must be daily, weekly, or monthly")
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrInvalidLevel    = errors.New("level must be between 1 and 5")
	ErrUnknownCategory = errors.New("category must be social, productivity, or presence")
	ErrInvalidTime     = errors.New("time must be HH:MM")
)
