// Package metrics provides Prometheus metrics for ninth — counters,
// gauges, and histograms for journaling activity, the level games, and
// the reminder scheduler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Journal ────────────────────────────────────────────────────────────────

// VotesCast tracks daily identity votes by value.
var VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ninth",
	Name:      "votes_cast_total",
	Help:      "Total daily identity votes cast.",
}, []string{"vote"})

// EntriesLogged tracks daily entry writes.
var EntriesLogged = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ninth",
	Name:      "entries_logged_total",
	Help:      "Total daily entry upserts.",
})

// ActionsLogged tracks 5-second-rule taps by category.
var ActionsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ninth",
	Name:      "actions_logged_total",
	Help:      "Total 5-second-rule actions logged.",
}, []string{"category"})

// ─── Goals and Habits ───────────────────────────────────────────────────────

// GoalsCompleted tracks goal completion toggles that land on done.
var GoalsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ninth",
	Name:      "goals_completed_total",
	Help:      "Total goals toggled to completed.",
}, []string{"type"})

// HabitsCompleted tracks habit completion toggles that land on done.
var HabitsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ninth",
	Name:      "habits_completed_total",
	Help:      "Total habit completions toggled to done.",
})

// ─── Level Games ────────────────────────────────────────────────────────────

// LevelUps tracks level-up events per game.
var LevelUps = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ninth",
	Name:      "level_ups_total",
	Help:      "Total level-up events.",
}, []string{"game"})

// PresenceLevel tracks the current presence level per user.
var PresenceLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "ninth",
	Name:      "presence_level",
	Help:      "Current presence level (1-5).",
}, []string{"user"})

// ProductivityLevel tracks the current productivity level per user.
var ProductivityLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "ninth",
	Name:      "productivity_level",
	Help:      "Current productivity level (1-5).",
}, []string{"user"})

// RefreshDuration tracks level refresh duration in seconds.
var RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "ninth",
	Name:      "level_refresh_seconds",
	Help:      "Duration of a level refresh pass.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
})

// ─── Reminders ──────────────────────────────────────────────────────────────

// RemindersQueued tracks reminders written by the scheduler, by kind.
var RemindersQueued = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ninth",
	Name:      "reminders_queued_total",
	Help:      "Total reminders queued.",
}, []string{"kind"})

// RemindersSuppressed tracks reminders suppressed by policy, by reason.
var RemindersSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ninth",
	Name:      "reminders_suppressed_total",
	Help:      "Total reminders suppressed by policy.",
}, []string{"reason"})
