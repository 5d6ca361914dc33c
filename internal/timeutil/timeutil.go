// Package timeutil provides time conversion utilities for the route planner.
// All time-of-day values are represented as seconds since midnight (0-86399).
// Durations are also in seconds.
package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat indicates a time string is not in HH:MM:SS format.
var ErrInvalidTimeFormat = errors.New("invalid time format: expected HH:MM:SS")

// SecondsPerDay is the number of seconds in a day (86400).
const SecondsPerDay = 86400

// MaxSecondsFromMidnight is the maximum valid seconds from midnight (86399 = 23:59:59).
const MaxSecondsFromMidnight = 86399

// ParseClock parses "HH:MM:SS" into seconds from midnight.
// Returns ErrInvalidTimeFormat for malformed input.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, ErrInvalidTimeFormat
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, ErrInvalidTimeFormat
	}
	return h*3600 + m*60 + sec, nil
}

// FormatClock formats seconds from midnight as "HH:MM:SS".
// For durations >= 24h, hours exceed 23 (e.g. 90000 -> "25:00:00").
func FormatClock(seconds int) string {
	if seconds < 0 {
		return "-" + FormatClock(-seconds)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// NormalizeWindow handles partner opening windows that span midnight.
// If close < open, SecondsPerDay is added to close so that open <= close
// holds in the normalized coordinate system (spec.md §3).
func NormalizeWindow(open, close int) (normOpen, normClose int) {
	if close < open {
		return open, close + SecondsPerDay
	}
	return open, close
}

// IsValidTimeOfDay reports whether seconds represents a valid time of day (0-86399).
func IsValidTimeOfDay(seconds int) bool {
	return seconds >= 0 && seconds <= MaxSecondsFromMidnight
}

// Rebase shifts a seconds-since-midnight value into a run's global origin
// coordinate system, where origin is the smallest open time across all
// partners in the branch (spec.md §3: "seconds since a global origin").
func Rebase(value, origin int) int {
	return value - origin
}
