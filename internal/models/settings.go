package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/utils"
)

// Settings holds user preferences kept in the settings document. The habit
// analytics never read it.
type Settings struct {
	UserName string    `json:"user_name"` // profile display name
	JoinDate time.Time `json:"join_date"` // first run
	Timezone string    `json:"timezone"`  // IANA timezone name or "Local"
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings, now time.Time) {
	if settings.UserName == "" {
		settings.UserName = constants.DefaultUserName
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.JoinDate.IsZero() {
		settings.JoinDate = now
	}
}

// SetField updates a single setting by key.
func (s *Settings) SetField(key, value string) error {
	switch key {
	case constants.SettingUserName:
		if value == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
		s.UserName = value
	case constants.SettingTimezone:
		if !utils.ValidateTimezone(value) {
			return fmt.Errorf("invalid timezone: %s", value)
		}
		s.Timezone = value
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}
	return nil
}

// MembershipDuration describes how long ago the user joined.
func (s Settings) MembershipDuration(now time.Time) string {
	days := utils.DaysBetween(s.JoinDate, now)
	switch {
	case days <= 0:
		return "Just joined!"
	case days == 1:
		return "1 day"
	case days < 30:
		return fmt.Sprintf("%d days", days)
	}
	months := days / 30
	if months == 1 {
		return "1 month"
	}
	if months < 12 {
		return fmt.Sprintf("%d months", months)
	}
	years := months / 12
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}
