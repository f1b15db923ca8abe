package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mounacademy/ninth/internal/domain"
)

// ─── User Settings ──────────────────────────────────────────────────────────

// GetSettings retrieves the user's settings document, falling back to the
// defaults when the user has never saved one.
func (d *DB) GetSettings(userID string) (domain.UserSettings, error) {
	var s domain.UserSettings
	err := d.db.QueryRow(
		`SELECT identity, notifications_enabled,
		        morning_reminder_time, midday_reminder_time, evening_reminder_time,
		        hourly_notifications_enabled, hourly_notification_start,
		        hourly_notification_end, hourly_notification_message
		 FROM settings WHERE user_id = ?`, userID,
	).Scan(
		&s.Identity, &s.NotificationsEnabled,
		&s.MorningReminderTime, &s.MiddayReminderTime, &s.EveningReminderTime,
		&s.HourlyNotificationsEnabled, &s.HourlyNotificationStart,
		&s.HourlyNotificationEnd, &s.HourlyNotificationMessage,
	)
	if err == sql.ErrNoRows {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("scan settings: %w", err)
	}
	return s, nil
}

// PutSettings inserts or replaces the user's settings document.
func (d *DB) PutSettings(userID string, s domain.UserSettings) error {
	_, err := d.db.Exec(
		`INSERT INTO settings (user_id, identity, notifications_enabled,
			morning_reminder_time, midday_reminder_time, evening_reminder_time,
			hourly_notifications_enabled, hourly_notification_start,
			hourly_notification_end, hourly_notification_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			identity=excluded.identity,
			notifications_enabled=excluded.notifications_enabled,
			morning_reminder_time=excluded.morning_reminder_time,
			midday_reminder_time=excluded.midday_reminder_time,
			evening_reminder_time=excluded.evening_reminder_time,
			hourly_notifications_enabled=excluded.hourly_notifications_enabled,
			hourly_notification_start=excluded.hourly_notification_start,
			hourly_notification_end=excluded.hourly_notification_end,
			hourly_notification_message=excluded.hourly_notification_message`,
		userID, s.Identity, s.NotificationsEnabled,
		s.MorningReminderTime, s.MiddayReminderTime, s.EveningReminderTime,
		s.HourlyNotificationsEnabled, s.HourlyNotificationStart,
		s.HourlyNotificationEnd, s.HourlyNotificationMessage,
	)
	return err
}

// ─── Levels Game State ──────────────────────────────────────────────────────

// GetGameState retrieves the user's levels game state, nil when the user
// has never played.
func (d *DB) GetGameState(userID string) (*domain.LevelsGameState, error) {
	var st domain.LevelsGameState
	err := d.db.QueryRow(
		`SELECT presence_level, presence_level_start_date,
		        productivity_level, productivity_level_start_date
		 FROM game_state WHERE user_id = ?`, userID,
	).Scan(
		&st.PresenceLevel, &st.PresenceLevelStartDate,
		&st.ProductivityLevel, &st.ProductivityLevelStartDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan game state: %w", err)
	}
	return &st, nil
}

// PutGameState inserts or replaces the user's levels game state.
func (d *DB) PutGameState(userID string, st domain.LevelsGameState) error {
	_, err := d.db.Exec(
		`INSERT INTO game_state (user_id, presence_level, presence_level_start_date,
			productivity_level, productivity_level_start_date)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			presence_level=excluded.presence_level,
			presence_level_start_date=excluded.presence_level_start_date,
			productivity_level=excluded.productivity_level,
			productivity_level_start_date=excluded.productivity_level_start_date`,
		userID, st.PresenceLevel, st.PresenceLevelStartDate,
		st.ProductivityLevel, st.ProductivityLevelStartDate,
	)
	return err
}

// ─── Reminder Log ───────────────────────────────────────────────────────────

// InsertReminder appends a reminder to the log and returns its row ID.
func (d *DB) InsertReminder(r domain.Reminder) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO reminders (user_id, kind, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.UserID, string(r.Kind), r.Title, r.Body, r.CreatedAt, r.Shown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// PendingReminders returns the user's unshown reminders, oldest first.
func (d *DB) PendingReminders(userID string) ([]domain.Reminder, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, kind, title, body, created_at, shown FROM reminders
		 WHERE user_id = ? AND shown = 0 ORDER BY created_at ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		var r domain.Reminder
		var kind string
		if err := rows.Scan(&r.ID, &r.UserID, &kind, &r.Title, &r.Body, &r.CreatedAt, &r.Shown); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		r.Kind = domain.ReminderKind(kind)
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// MarkReminderShown flips one reminder's shown flag.
func (d *DB) MarkReminderShown(id int64) error {
	_, err := d.db.Exec(`UPDATE reminders SET shown = 1 WHERE id = ?`, id)
	return err
}

// ListUsers returns every user ID known to the store: anyone who has
// voted, logged an entry, or saved settings.
func (d *DB) ListUsers() ([]string, error) {
	rows, err := d.db.Query(
		`SELECT user_id FROM settings
		 UNION SELECT user_id FROM votes
		 UNION SELECT user_id FROM entries`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

// CountRemindersSince counts reminders of one kind created at/after the
// given unix time. The scheduler uses it to fire each kind at most once
// per day.
func (d *DB) CountRemindersSince(userID string, kind domain.ReminderKind, since int64) (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM reminders
		 WHERE user_id = ? AND kind = ? AND created_at >= ?`,
		userID, string(kind), since,
	).Scan(&n)
	return n, err
}
