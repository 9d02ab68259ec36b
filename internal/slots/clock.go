package slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateFormat is the calendar date layout used for week starts (YYYY-MM-DD).
	DateFormat = "2006-01-02"

	// TimeFormat is the time-of-day layout used for preferences and slots (HH:MM).
	TimeFormat = "15:04"
)

// ParseClock parses an HH:MM string into minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(TimeFormat, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDay parses a weekday name or abbreviation ("monday", "Mon").
// Numbers 0-6 are accepted with 0 meaning Sunday.
func ParseDay(s string) (time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	key := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[key]; ok {
		return wd, nil
	}
	if num, err := strconv.Atoi(key); err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// DayName returns the lowercase English name of a weekday.
func DayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// IsWeekend reports whether d is Saturday or Sunday.
func IsWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// MondayOf returns midnight of the Monday of t's week in t's location.
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// DayOffset returns d's position in a Monday-first week (Monday = 0).
func DayOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
