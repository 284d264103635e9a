package models

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock parses a wall-clock "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value: %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value out of range: %q", s)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
// Values outside a single day wrap around midnight.
func FormatClock(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockHour returns the hour component of an "HH:MM" string, or -1 when the
// value is malformed.
func ClockHour(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		return -1
	}
	return m / 60
}

// AddHours adds a fractional number of hours to an "HH:MM" start time,
// flooring to minute precision and wrapping past midnight.
func AddHours(start string, hours float64) (string, error) {
	m, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	total := m + int(hours*60)
	return FormatClock(total), nil
}

// HoursBetween returns the span from start to end in fractional hours.
// Both arguments must be valid "HH:MM" values; end is assumed to be on the
// same day as start.
func HoursBetween(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return float64(e-s) / 60, nil
}
