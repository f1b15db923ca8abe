// Package reminder runs the notification scheduler: morning, midday,
// and evening nudges at the user's configured times, optional hourly
// nudges inside a daily window, all queued into the reminder log for
// clients to poll. Policy caps each kind at one per day (hourly: one
// per hour) and suppresses everything during quiet hours.
package reminder

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/mounacademy/ninth/internal/domain"
	"github.com/mounacademy/ninth/internal/infra/metrics"
	"github.com/mounacademy/ninth/internal/infra/sqlite"
)

// Quiet hours: no reminders between 22:00 and 08:00 regardless of the
// user's configured times.
const (
	quietStart = "22:00"
	quietEnd   = "08:00"
)

// Scheduler periodically scans all known users and queues due reminders.
type Scheduler struct {
	db       *sqlite.DB
	interval time.Duration
	now      func() time.Time
}

// NewScheduler creates a scheduler ticking once a minute.
func NewScheduler(db *sqlite.DB) *Scheduler {
	return &Scheduler{db: db, interval: time.Minute, now: time.Now}
}

// SetInterval overrides the tick interval. Call before Run.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// Run starts the scheduler loop. Call in a goroutine; cancel the context
// to stop.
func (s *Scheduler) Run(ctx context.Context) {
	s.tick()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// Pending returns a user's queued, unshown reminders.
func (s *Scheduler) Pending(userID string) ([]domain.Reminder, error) {
	return s.db.PendingReminders(userID)
}

// MarkShown acknowledges one reminder.
func (s *Scheduler) MarkShown(id int64) error {
	return s.db.MarkReminderShown(id)
}

// tick evaluates every user's reminder schedule against the clock.
func (s *Scheduler) tick() {
	users, err := s.db.ListUsers()
	if err != nil {
		log.Printf("[reminder] list users: %v", err)
		return
	}

	now := s.now()
	for _, userID := range users {
		settings, err := s.db.GetSettings(userID)
		if err != nil {
			log.Printf("[reminder] settings for %s: %v", userID, err)
			continue
		}
		if !settings.NotificationsEnabled {
			continue
		}
		s.evaluate(userID, settings, now)
	}
}

func (s *Scheduler) evaluate(userID string, settings domain.UserSettings, now time.Time) {
	if inWindow(now, quietStart, quietEnd) {
		metrics.RemindersSuppressed.WithLabelValues("quiet_hours").Inc()
		return
	}

	daily := []struct {
		kind  domain.ReminderKind
		at    string
		title string
		body  string
	}{
		{domain.ReminderMorning, settings.MorningReminderTime,
			"Who are you today?", "Cast your vote for the person you want to be."},
		{domain.ReminderMidday, settings.MiddayReminderTime,
			"Midday check-in", "Log your deep work sets and take a 5-second-rule action."},
		{domain.ReminderEvening, settings.EveningReminderTime,
			"Evening reflection", "Score your presence and productivity for today."},
	}

	dayStart := startOfDay(now)
	for _, r := range daily {
		if minutesOf(now) < parseHHMM(r.at) {
			continue
		}
		s.queueOnce(userID, r.kind, r.title, r.body, dayStart, now)
	}

	if settings.HourlyNotificationsEnabled &&
		inWindow(now, settings.HourlyNotificationStart, settings.HourlyNotificationEnd) {
		body := settings.HourlyNotificationMessage
		if body == "" {
			body = "Pause. Are you present right now?"
		}
		hourStart := now.Truncate(time.Hour).Unix()
		s.queueOnce(userID, domain.ReminderHourly, "Hourly nudge", body, hourStart, now)
	}
}

// queueOnce inserts a reminder unless one of the same kind already
// exists in the current period.
func (s *Scheduler) queueOnce(userID string, kind domain.ReminderKind, title, body string, periodStart int64, now time.Time) {
	n, err := s.db.CountRemindersSince(userID, kind, periodStart)
	if err != nil {
		log.Printf("[reminder] count %s for %s: %v", kind, userID, err)
		return
	}
	if n > 0 {
		metrics.RemindersSuppressed.WithLabelValues("already_sent").Inc()
		return
	}

	_, err = s.db.InsertReminder(domain.Reminder{
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: now.Unix(),
	})
	if err != nil {
		log.Printf("[reminder] queue %s for %s: %v", kind, userID, err)
		return
	}
	metrics.RemindersQueued.WithLabelValues(string(kind)).Inc()
}

// ─── Time Helpers ───────────────────────────────────────────────────────────

// inWindow reports whether t falls inside [start, end), where both are
// HH:MM strings and the window may wrap midnight.
func inWindow(t time.Time, start, end string) bool {
	startMin := parseHHMM(start)
	endMin := parseHHMM(end)
	m := minutesOf(t)

	if startMin > endMin {
		// Wraps midnight: e.g., 22:00 – 08:00
		return m >= startMin || m < endMin
	}
	return m >= startMin && m < endMin
}

func minutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func startOfDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).Unix()
}

// parseHHMM parses "HH:MM" into minutes since midnight.
func parseHHMM(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}
