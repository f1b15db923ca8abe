package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mounacademy/ninth/internal/domain"
)

// ─── Daily Votes ────────────────────────────────────────────────────────────

// PutVote inserts or overwrites the vote for the document's day.
func (d *DB) PutVote(userID string, v domain.DailyVote) error {
	_, err := d.db.Exec(
		`INSERT INTO votes (id, user_id, date, vote, note, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, date) DO UPDATE SET
			id=excluded.id,
			vote=excluded.vote,
			note=excluded.note,
			timestamp=excluded.timestamp`,
		v.ID, userID, v.Date, string(v.Vote), v.Note, v.Timestamp.Unix(),
	)
	return err
}

// GetVote retrieves the vote for one day, nil when none was cast.
func (d *DB) GetVote(userID, date string) (*domain.DailyVote, error) {
	row := d.db.QueryRow(
		`SELECT id, date, vote, note, timestamp FROM votes
		 WHERE user_id = ? AND date = ?`, userID, date,
	)
	return scanVote(row)
}

// ListVotes returns the user's full vote history, newest first.
func (d *DB) ListVotes(userID string) ([]domain.DailyVote, error) {
	rows, err := d.db.Query(
		`SELECT id, date, vote, note, timestamp FROM votes
		 WHERE user_id = ? ORDER BY date DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []domain.DailyVote
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *v)
	}
	return votes, rows.Err()
}

func scanVote(s scanner) (*domain.DailyVote, error) {
	var v domain.DailyVote
	var vote string
	var ts int64

	err := s.Scan(&v.ID, &v.Date, &vote, &v.Note, &ts)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, fmt.Errorf("scan vote: %w", err)
	}

	v.Vote = domain.VoteValue(vote)
	v.Timestamp = time.Unix(ts, 0)
	return &v, nil
}

// ─── Daily Entries ──────────────────────────────────────────────────────────

// PutEntry inserts or replaces the full entry row for the entry's day.
// Field-level merging happens above the store; this writes what it is given.
func (d *DB) PutEntry(userID string, e domain.DailyEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO entries (id, user_id, date, presence_score, productivity_score, deep_work_sets, time_waster_minutes, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, date) DO UPDATE SET
			id=excluded.id,
			presence_score=excluded.presence_score,
			productivity_score=excluded.productivity_score,
			deep_work_sets=excluded.deep_work_sets,
			time_waster_minutes=excluded.time_waster_minutes,
			timestamp=excluded.timestamp`,
		e.ID, userID, e.Date,
		nullInt(e.PresenceScore), nullInt(e.ProductivityScore),
		nullInt(e.DeepWorkSets), nullInt(e.TimeWasterMinutes),
		e.Timestamp.Unix(),
	)
	return err
}

// GetEntry retrieves the entry for one day, nil when nothing was logged.
func (d *DB) GetEntry(userID, date string) (*domain.DailyEntry, error) {
	row := d.db.QueryRow(
		`SELECT id, date, presence_score, productivity_score, deep_work_sets, time_waster_minutes, timestamp
		 FROM entries WHERE user_id = ? AND date = ?`, userID, date,
	)
	return scanEntry(row)
}

// ListEntries returns all of the user's entries, oldest first.
func (d *DB) ListEntries(userID string) ([]domain.DailyEntry, error) {
	return d.listEntries(
		`SELECT id, date, presence_score, productivity_score, deep_work_sets, time_waster_minutes, timestamp
		 FROM entries WHERE user_id = ? ORDER BY date ASC`, userID)
}

// ListEntriesSince returns entries dated on/after the given day key,
// oldest first.
func (d *DB) ListEntriesSince(userID, since string) ([]domain.DailyEntry, error) {
	return d.listEntries(
		`SELECT id, date, presence_score, productivity_score, deep_work_sets, time_waster_minutes, timestamp
		 FROM entries WHERE user_id = ? AND date >= ? ORDER BY date ASC`, userID, since)
}

func (d *DB) listEntries(query string, args ...any) ([]domain.DailyEntry, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.DailyEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func scanEntry(s scanner) (*domain.DailyEntry, error) {
	var e domain.DailyEntry
	var presence, productivity, sets, waster sql.NullInt64
	var ts int64

	err := s.Scan(&e.ID, &e.Date, &presence, &productivity, &sets, &waster, &ts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	e.PresenceScore = intPtr(presence)
	e.ProductivityScore = intPtr(productivity)
	e.DeepWorkSets = intPtr(sets)
	e.TimeWasterMinutes = intPtr(waster)
	e.Timestamp = time.Unix(ts, 0)
	return &e, nil
}

// ─── 5-Second-Rule Actions ──────────────────────────────────────────────────

// InsertAction appends one action to the log.
func (d *DB) InsertAction(userID string, a domain.FiveSecondRuleAction) error {
	_, err := d.db.Exec(
		`INSERT INTO actions (id, user_id, date, category, note, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, userID, a.Date, string(a.Category), a.Note, a.Timestamp.Unix(),
	)
	return err
}

// ListActionsByDate returns all actions logged on one day.
func (d *DB) ListActionsByDate(userID, date string) ([]domain.FiveSecondRuleAction, error) {
	return d.listActions(
		`SELECT id, date, category, note, timestamp FROM actions
		 WHERE user_id = ? AND date = ? ORDER BY timestamp ASC`, userID, date)
}

// ListActionsSince returns actions dated on/after the given day key.
func (d *DB) ListActionsSince(userID, since string) ([]domain.FiveSecondRuleAction, error) {
	return d.listActions(
		`SELECT id, date, category, note, timestamp FROM actions
		 WHERE user_id = ? AND date >= ? ORDER BY date ASC, timestamp ASC`, userID, since)
}

func (d *DB) listActions(query string, args ...any) ([]domain.FiveSecondRuleAction, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []domain.FiveSecondRuleAction
	for rows.Next() {
		var a domain.FiveSecondRuleAction
		var category string
		var ts int64
		if err := rows.Scan(&a.ID, &a.Date, &category, &a.Note, &ts); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		a.Category = domain.ActionCategory(category)
		a.Timestamp = time.Unix(ts, 0)
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
