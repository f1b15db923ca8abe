package domain

// UserSettings is the per-user settings document: the identity statement
// shown on the home screen plus reminder preferences.
type UserSettings struct {
	Identity             string `json:"identity"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	MorningReminderTime  string `json:"morning_reminder_time"` // HH:MM
	MiddayReminderTime   string `json:"midday_reminder_time"`
	EveningReminderTime  string `json:"evening_reminder_time"`

	// Optional hourly nudges within a daily window.
	HourlyNotificationsEnabled bool   `json:"hourly_notifications_enabled"`
	HourlyNotificationStart    string `json:"hourly_notification_start,omitempty"` // HH:MM
	HourlyNotificationEnd      string `json:"hourly_notification_end,omitempty"`   // HH:MM
	HourlyNotificationMessage  string `json:"hourly_notification_message,omitempty"`
}

// DefaultSettings returns the settings written on a user's first visit.
func DefaultSettings() UserSettings {
	return UserSettings{
		Identity:             "I am the type of person who chooses presence, leans into challenge, and communicates with clarity and confidence.",
		NotificationsEnabled: true,
		MorningReminderTime:  "07:00",
		MiddayReminderTime:   "12:00",
		EveningReminderTime:  "20:00",
	}
}

// ─── Reminders ──────────────────────────────────────────────────────────────

// ReminderKind categorizes scheduled reminders.
type ReminderKind string

const (
	ReminderMorning ReminderKind = "morning"
	ReminderMidday  ReminderKind = "midday"
	ReminderEvening ReminderKind = "evening"
	ReminderHourly  ReminderKind = "hourly"
	ReminderLevelUp ReminderKind = "level_up"
)

// Reminder is one queued user-facing notification.
type Reminder struct {
	ID        int64        `json:"id"`
	UserID    string       `json:"user_id"`
	Kind      ReminderKind `json:"kind"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	CreatedAt int64        `json:"created_at"` // unix seconds
	Shown     bool         `json:"shown"`
}
