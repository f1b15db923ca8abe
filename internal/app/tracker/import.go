package tracker

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mounacademy/ninth/internal/domain"
)

// ImportStats summarizes one backfill run.
type ImportStats struct {
	Votes   int `json:"votes"`
	Entries int `json:"entries"`
	Actions int `json:"actions"`
	Goals   int `json:"goals"`
	Habits  int `json:"habits"`
}

// Import backfills journal data from a line-directive file.
// Supports directives: VOTE, ENTRY, ACTION, GOAL, HABIT.
//
//	# comment
//	VOTE 2025-07-01 yes
//	ENTRY 2025-07-01 presence=8 productivity=7 sets=4 waster=20
//	ACTION 2025-07-01 social
//	GOAL daily "Ship the report"
//	HABIT "Meditate"
//
// Unknown directives are silently ignored for forward compatibility.
// Records land through the same paths as live logging, so validation
// and same-day merging apply.
func (s *Service) Import(userID string, r io.Reader) (ImportStats, error) {
	var stats ImportStats

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		if len(parts) < 2 {
			continue // Ignore malformed lines
		}

		directive := strings.ToUpper(parts[0])
		value := strings.TrimSpace(parts[1])

		var err error
		switch directive {
		case "VOTE":
			err = s.importVote(userID, value, &stats)
		case "ENTRY":
			err = s.importEntry(userID, value, &stats)
		case "ACTION":
			err = s.importAction(userID, value, &stats)
		case "GOAL":
			err = s.importGoal(userID, value, &stats)
		case "HABIT":
			_, err = s.CreateHabit(userID, unquote(value), "")
			if err == nil {
				stats.Habits++
			}
		default:
			// Unknown directives are silently ignored
		}
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read import file: %w", err)
	}
	return stats, nil
}

// importVote parses "date yes|no [note]".
func (s *Service) importVote(userID, value string, stats *ImportStats) error {
	fields := strings.SplitN(value, " ", 3)
	if len(fields) < 2 {
		return fmt.Errorf("VOTE needs a date and a value: %q", value)
	}
	date, vote := fields[0], domain.VoteValue(fields[1])
	if _, err := domain.ParseDay(date); err != nil {
		return err
	}
	if !vote.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidVote, fields[1])
	}

	note := ""
	if len(fields) == 3 {
		note = unquote(fields[2])
	}
	err := s.db.PutVote(userID, domain.DailyVote{
		ID:        uuid.NewString(),
		Date:      date,
		Vote:      vote,
		Note:      note,
		Timestamp: s.now(),
	})
	if err != nil {
		return err
	}
	stats.Votes++
	return nil
}

// importEntry parses "date key=value ..." with keys presence,
// productivity, sets, and waster.
func (s *Service) importEntry(userID, value string, stats *ImportStats) error {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return fmt.Errorf("ENTRY needs a date and at least one field: %q", value)
	}

	update := domain.DailyEntry{Date: fields[0]}
	for _, kv := range fields[1:] {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("bad ENTRY field %q", kv)
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("bad ENTRY value %q: %w", kv, err)
		}
		switch key {
		case "presence":
			update.PresenceScore = domain.IntPtr(n)
		case "productivity":
			update.ProductivityScore = domain.IntPtr(n)
		case "sets":
			update.DeepWorkSets = domain.IntPtr(n)
		case "waster":
			update.TimeWasterMinutes = domain.IntPtr(n)
		default:
			return fmt.Errorf("unknown ENTRY field %q", key)
		}
	}

	if _, err := s.LogEntry(userID, update); err != nil {
		return err
	}
	stats.Entries++
	return nil
}

// importAction parses "date category".
func (s *Service) importAction(userID, value string, stats *ImportStats) error {
	fields := strings.SplitN(value, " ", 2)
	if len(fields) != 2 {
		return fmt.Errorf("ACTION needs a date and a category: %q", value)
	}
	date := fields[0]
	if _, err := domain.ParseDay(date); err != nil {
		return err
	}
	category := domain.ActionCategory(fields[1])
	if !category.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, fields[1])
	}

	err := s.db.InsertAction(userID, domain.FiveSecondRuleAction{
		ID:        uuid.NewString(),
		Date:      date,
		Category:  category,
		Timestamp: s.now(),
	})
	if err != nil {
		return err
	}
	stats.Actions++
	return nil
}

// importGoal parses `daily|weekly|monthly "title"`.
func (s *Service) importGoal(userID, value string, stats *ImportStats) error {
	fields := strings.SplitN(value, " ", 2)
	if len(fields) != 2 {
		return fmt.Errorf("GOAL needs a type and a title: %q", value)
	}
	if _, err := s.CreateGoal(userID, domain.GoalType(fields[0]), unquote(fields[1])); err != nil {
		return err
	}
	stats.Goals++
	return nil
}

// unquote removes surrounding double quotes if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
