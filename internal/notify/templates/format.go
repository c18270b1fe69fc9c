package templates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidDate indicates the date string did not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("templates: invalid date")
	// ErrInvalidTime indicates the time string did not parse as HH:MM[:SS].
	ErrInvalidTime = errors.New("templates: invalid time")
)

// FormatDate renders a YYYY-MM-DD calendar date as a long weekday string,
// e.g. "Thursday, May 16, 2025".
func FormatDate(dateString string) (string, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(dateString))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, dateString)
	}
	return date.Format("Monday, January 2, 2006"), nil
}

// FormatTime converts a 24-hour HH:MM[:SS] clock time to 12-hour H:MM AM/PM.
// Minutes are passed through unchanged; hour 0 becomes 12 AM and hour 12
// stays 12 PM.
func FormatTime(timeString string) (string, error) {
	parts := strings.Split(strings.TrimSpace(timeString), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, timeString)
	}

	if !isDigits(parts[0]) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, timeString)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, timeString)
	}
	minutes := parts[1]
	if len(minutes) != 2 || !isDigits(minutes) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, timeString)
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%s %s", hour, minutes, period), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
