package models

import (
	"fmt"
	"strings"
)

// Frequency selects which weekdays a habit is scheduled on.
type Frequency string

const (
	FrequencyDaily    Frequency = "Daily"
	FrequencyWeekly   Frequency = "Weekly"
	FrequencyWeekdays Frequency = "Weekdays"
	FrequencyWeekends Frequency = "Weekends"
	FrequencyCustom   Frequency = "Custom"
)

// Frequencies lists every frequency in display order.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyWeekdays,
	FrequencyWeekends,
	FrequencyCustom,
}

// IsDueOn reports whether the frequency selects the given weekday
// (1=Sunday..7=Saturday). customDays is consulted only for FrequencyCustom.
func (f Frequency) IsDueOn(weekday int, customDays []int) bool {
	switch f {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		return weekday == 1
	case FrequencyWeekdays:
		return weekday >= 2 && weekday <= 6
	case FrequencyWeekends:
		return weekday == 1 || weekday == 7
	case FrequencyCustom:
		for _, d := range customDays {
			if d == weekday {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFrequency matches s case-insensitively against the known frequencies.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown frequency: %q", s)
}
