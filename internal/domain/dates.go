// Package domain holds the value types shared across the tracker:
// votes, daily entries, goals, habits, level state, and the derived
// progress snapshots. Everything here is a plain immutable value —
// no infrastructure, no I/O.
package domain

import (
	"fmt"
	"time"
)

// Day keys are YYYY-MM-DD strings. Lexical order equals chronological
// order, which the range filters and the streak walk rely on.
const dayLayout = "2006-01-02"

// ParseDay validates a day key and returns the midnight UTC time for it.
func ParseDay(key string) (time.Time, error) {
	t, err := time.Parse(dayLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDayKey, key)
	}
	return t, nil
}

// DayKey formats a time as a day key.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// WeekKey returns "YYYY-Www" for the given time (ISO week, Monday start).
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey returns "YYYY-MM" for the given time.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// PrevDay returns the day key one calendar day before key.
func PrevDay(key string) (string, error) {
	t, err := ParseDay(key)
	if err != nil {
		return "", err
	}
	return DayKey(t.AddDate(0, 0, -1)), nil
}

// DaysBetween returns the whole calendar days from a to b (positive when
// b is later). Both arguments must be valid day keys.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// LastNDays returns the n day keys ending at (and including) end,
// oldest first.
func LastNDays(end time.Time, n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = DayKey(end.AddDate(0, 0, i-n+1))
	}
	return keys
}

// WeekPrefix returns the 8-character prefix of a day key ("YYYY-MM-"),
// used as the lower bound when range-filtering weekly goal keys.
func WeekPrefix(dayKey string) string {
	if len(dayKey) < 8 {
		return dayKey
	}
	return dayKey[:8]
}

// MonthPrefix returns the 7-character prefix of a day key ("YYYY-MM"),
// used as the lower bound when range-filtering monthly goal keys.
func MonthPrefix(dayKey string) string {
	if len(dayKey) < 7 {
		return dayKey
	}
	return dayKey[:7]
}
