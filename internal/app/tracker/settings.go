package tracker

import (
	"fmt"
	"time"

	"github.com/mounacademy/ninth/internal/domain"
)

// Settings returns the user's settings, defaults until first saved.
func (s *Service) Settings(userID string) (domain.UserSettings, error) {
	return s.db.GetSettings(userID)
}

// UpdateSettings validates and replaces the user's settings document.
func (s *Service) UpdateSettings(userID string, settings domain.UserSettings) error {
	times := []string{
		settings.MorningReminderTime,
		settings.MiddayReminderTime,
		settings.EveningReminderTime,
	}
	if settings.HourlyNotificationsEnabled {
		times = append(times, settings.HourlyNotificationStart, settings.HourlyNotificationEnd)
	}
	for _, hhmm := range times {
		if _, err := time.Parse("15:04", hhmm); err != nil {
			return fmt.Errorf("%w: %q", domain.ErrInvalidTime, hhmm)
		}
	}
	return s.db.PutSettings(userID, settings)
}
