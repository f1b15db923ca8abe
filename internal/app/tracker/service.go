// Package tracker orchestrates the journaling operations over the store:
// daily votes, entries, 5-second-rule actions, goals, habits, settings,
// and the derived streak/level snapshots.
package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mounacademy/ninth/internal/domain"
	"github.com/mounacademy/ninth/internal/infra/metrics"
	"github.com/mounacademy/ninth/internal/infra/sqlite"
)

// Service is the application-level API over the SQLite store. All
// operations take the user ID explicitly; the service itself is
// stateless and safe for concurrent use.
type Service struct {
	db  *sqlite.DB
	now func() time.Time
}

// New creates a tracker service on the wall clock.
func New(db *sqlite.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// NewWithClock creates a tracker service with an injected clock.
func NewWithClock(db *sqlite.DB, now func() time.Time) *Service {
	return &Service{db: db, now: now}
}

// today returns the current day key.
func (s *Service) today() string {
	return domain.DayKey(s.now())
}

// ─── Daily Votes ────────────────────────────────────────────────────────────

// CastVote records today's identity vote. A repeat vote for the same day
// overwrites the earlier one.
func (s *Service) CastVote(userID string, vote domain.VoteValue, note string) (domain.DailyVote, error) {
	if !vote.Valid() {
		return domain.DailyVote{}, domain.ErrInvalidVote
	}

	v := domain.DailyVote{
		ID:        uuid.NewString(),
		Date:      s.today(),
		Vote:      vote,
		Note:      note,
		Timestamp: s.now(),
	}
	if err := s.db.PutVote(userID, v); err != nil {
		return domain.DailyVote{}, fmt.Errorf("put vote: %w", err)
	}
	metrics.VotesCast.WithLabelValues(string(vote)).Inc()
	return v, nil
}

// TodayVote returns today's vote, nil when none was cast yet.
func (s *Service) TodayVote(userID string) (*domain.DailyVote, error) {
	return s.db.GetVote(userID, s.today())
}

// VoteHistory returns the full vote history, newest first.
func (s *Service) VoteHistory(userID string) ([]domain.DailyVote, error) {
	return s.db.ListVotes(userID)
}

// ─── Daily Entries ──────────────────────────────────────────────────────────

// LogEntry upserts the day's measurements. Only the non-nil fields of
// update are written; fields logged earlier in the day survive. An empty
// date means today.
func (s *Service) LogEntry(userID string, update domain.DailyEntry) (domain.DailyEntry, error) {
	if update.Date == "" {
		update.Date = s.today()
	} else if _, err := domain.ParseDay(update.Date); err != nil {
		return domain.DailyEntry{}, err
	}
	if err := validateEntry(update); err != nil {
		return domain.DailyEntry{}, err
	}

	existing, err := s.db.GetEntry(userID, update.Date)
	if err != nil {
		return domain.DailyEntry{}, fmt.Errorf("get entry: %w", err)
	}

	update.Timestamp = s.now()
	merged := update
	if existing != nil {
		merged = existing.Merge(update)
	} else {
		merged.ID = uuid.NewString()
	}

	if err := s.db.PutEntry(userID, merged); err != nil {
		return domain.DailyEntry{}, fmt.Errorf("put entry: %w", err)
	}
	metrics.EntriesLogged.Inc()
	return merged, nil
}

// ListEntries returns entries in [start, end], date ascending. Empty
// bounds are open.
func (s *Service) ListEntries(userID, start, end string) ([]domain.DailyEntry, error) {
	for _, bound := range []string{start, end} {
		if bound == "" {
			continue
		}
		if _, err := domain.ParseDay(bound); err != nil {
			return nil, err
		}
	}

	entries, err := s.db.ListEntries(userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	out := entries[:0]
	for _, e := range entries {
		if start != "" && e.Date < start {
			continue
		}
		if end != "" && e.Date > end {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// GetEntry returns the entry for one day, nil when nothing was logged.
func (s *Service) GetEntry(userID, date string) (*domain.DailyEntry, error) {
	if _, err := domain.ParseDay(date); err != nil {
		return nil, err
	}
	return s.db.GetEntry(userID, date)
}

func validateEntry(e domain.DailyEntry) error {
	for _, score := range []*int{e.PresenceScore, e.ProductivityScore} {
		if score != nil && (*score < 1 || *score > 10) {
			return domain.ErrInvalidScore
		}
	}
	for _, count := range []*int{e.DeepWorkSets, e.TimeWasterMinutes} {
		if count != nil && *count < 0 {
			return domain.ErrInvalidCount
		}
	}
	return nil
}

// ─── 5-Second-Rule Actions ──────────────────────────────────────────────────

// LogAction appends one tap to today's action log.
func (s *Service) LogAction(userID string, category domain.ActionCategory, note string) (domain.FiveSecondRuleAction, error) {
	if !category.Valid() {
		return domain.FiveSecondRuleAction{}, domain.ErrUnknownCategory
	}

	a := domain.FiveSecondRuleAction{
		ID:        uuid.NewString(),
		Date:      s.today(),
		Category:  category,
		Note:      note,
		Timestamp: s.now(),
	}
	if err := s.db.InsertAction(userID, a); err != nil {
		return domain.FiveSecondRuleAction{}, fmt.Errorf("insert action: %w", err)
	}
	metrics.ActionsLogged.WithLabelValues(string(category)).Inc()
	return a, nil
}

// ListActions returns one day's actions in insertion order. An empty
// date means today.
func (s *Service) ListActions(userID, date string) ([]domain.FiveSecondRuleAction, error) {
	if date == "" {
		date = s.today()
	} else if _, err := domain.ParseDay(date); err != nil {
		return nil, err
	}
	return s.db.ListActionsByDate(userID, date)
}

// ActionCounts tallies one day's actions by category. An empty date
// means today.
func (s *Service) ActionCounts(userID, date string) (domain.ActionCounts, error) {
	if date == "" {
		date = s.today()
	} else if _, err := domain.ParseDay(date); err != nil {
		return domain.ActionCounts{}, err
	}
	actions, err := s.db.ListActionsByDate(userID, date)
	if err != nil {
		return domain.ActionCounts{}, fmt.Errorf("list actions: %w", err)
	}
	return domain.CountActions(actions), nil
}
