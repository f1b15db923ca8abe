package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mounacademy/ninth/internal/domain"
)

// ─── Goals ──────────────────────────────────────────────────────────────────

// PutGoal inserts or updates a goal record.
func (d *DB) PutGoal(userID string, g domain.Goal) error {
	_, err := d.db.Exec(
		`INSERT INTO goals (id, user_id, type, title, completed, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			completed=excluded.completed,
			date=excluded.date`,
		g.ID, userID, string(g.Type), g.Title, g.Completed, g.Date, g.CreatedAt.Unix(),
	)
	return err
}

// GetGoal retrieves a goal by ID.
func (d *DB) GetGoal(userID, id string) (*domain.Goal, error) {
	row := d.db.QueryRow(
		`SELECT id, type, title, completed, date, created_at FROM goals
		 WHERE user_id = ? AND id = ?`, userID, id,
	)
	return scanGoal(row)
}

// ListGoals returns all of the user's goals of one type, newest period first.
func (d *DB) ListGoals(userID string, t domain.GoalType) ([]domain.Goal, error) {
	rows, err := d.db.Query(
		`SELECT id, type, title, completed, date, created_at FROM goals
		 WHERE user_id = ? AND type = ? ORDER BY date DESC, created_at ASC`,
		userID, string(t),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// SetGoalCompleted toggles a goal's completion state.
func (d *DB) SetGoalCompleted(userID, id string, completed bool) error {
	result, err := d.db.Exec(
		`UPDATE goals SET completed = ? WHERE user_id = ? AND id = ?`,
		completed, userID, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

// DeleteGoal removes a goal record.
func (d *DB) DeleteGoal(userID, id string) error {
	result, err := d.db.Exec(`DELETE FROM goals WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func scanGoal(s scanner) (*domain.Goal, error) {
	var g domain.Goal
	var goalType string
	var createdAt int64

	err := s.Scan(&g.ID, &goalType, &g.Title, &g.Completed, &g.Date, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan goal: %w", err)
	}

	g.Type = domain.GoalType(goalType)
	g.CreatedAt = time.Unix(createdAt, 0)
	return &g, nil
}

// ─── Habits ─────────────────────────────────────────────────────────────────

// PutHabit inserts or updates a habit record.
func (d *DB) PutHabit(userID string, h domain.Habit) error {
	_, err := d.db.Exec(
		`INSERT INTO habits (id, user_id, name, category, created_at, archived)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			category=excluded.category,
			archived=excluded.archived`,
		h.ID, userID, h.Name, h.Category, h.CreatedAt.Unix(), h.Archived,
	)
	return err
}

// GetHabit retrieves a habit by ID.
func (d *DB) GetHabit(userID, id string) (*domain.Habit, error) {
	row := d.db.QueryRow(
		`SELECT id, name, category, created_at, archived FROM habits
		 WHERE user_id = ? AND id = ?`, userID, id,
	)
	return scanHabit(row)
}

// ListHabits returns the user's habits, active ones only unless
// includeArchived is set. Ordered by creation time.
func (d *DB) ListHabits(userID string, includeArchived bool) ([]domain.Habit, error) {
	query := `SELECT id, name, category, created_at, archived FROM habits
	 WHERE user_id = ? ORDER BY created_at ASC`
	if !includeArchived {
		query = `SELECT id, name, category, created_at, archived FROM habits
		 WHERE user_id = ? AND archived = 0 ORDER BY created_at ASC`
	}
	rows, err := d.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// ArchiveHabit marks a habit archived, keeping its completion history.
func (d *DB) ArchiveHabit(userID, id string) error {
	result, err := d.db.Exec(
		`UPDATE habits SET archived = 1 WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func scanHabit(s scanner) (*domain.Habit, error) {
	var h domain.Habit
	var createdAt int64

	err := s.Scan(&h.ID, &h.Name, &h.Category, &createdAt, &h.Archived)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan habit: %w", err)
	}

	h.CreatedAt = time.Unix(createdAt, 0)
	return &h, nil
}

// ─── Habit Completions ──────────────────────────────────────────────────────

// PutHabitCompletion inserts or overwrites the completion toggle for one
// (habit, day) pair.
func (d *DB) PutHabitCompletion(userID string, c domain.HabitCompletion) error {
	_, err := d.db.Exec(
		`INSERT INTO habit_completions (id, user_id, habit_id, date, completed, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			completed=excluded.completed,
			timestamp=excluded.timestamp`,
		c.ID, userID, c.HabitID, c.Date, c.Completed, c.Timestamp.Unix(),
	)
	return err
}

// ListCompletionsByDate returns the completion toggles for one day.
func (d *DB) ListCompletionsByDate(userID, date string) ([]domain.HabitCompletion, error) {
	return d.listCompletions(
		`SELECT id, habit_id, date, completed, timestamp FROM habit_completions
		 WHERE user_id = ? AND date = ?`, userID, date)
}

// ListCompletionsSince returns completions dated on/after the given day key.
func (d *DB) ListCompletionsSince(userID, since string) ([]domain.HabitCompletion, error) {
	return d.listCompletions(
		`SELECT id, habit_id, date, completed, timestamp FROM habit_completions
		 WHERE user_id = ? AND date >= ? ORDER BY date ASC`, userID, since)
}

func (d *DB) listCompletions(query string, args ...any) ([]domain.HabitCompletion, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []domain.HabitCompletion
	for rows.Next() {
		var c domain.HabitCompletion
		var ts int64
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Date, &c.Completed, &ts); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		c.Timestamp = time.Unix(ts, 0)
		completions = append(completions, c)
	}
	return completions, rows.Err()
}
