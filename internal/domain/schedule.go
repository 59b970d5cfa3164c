package domain

import (
	"strings"
	"time"

	"github.com/petalert/petalert"
)

// Schedule is the raw date and time-of-day of a record as received.
type Schedule struct {
	Date    string `json:"date"`
	Time    string `json:"time,omitempty"`
	HasTime bool   `json:"-"`
}

// EventInstant resolves a schedule to a point in time in loc. Kinds without a
// time field, and empty time values, resolve to midnight.
func EventInstant(s Schedule, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	date, ok := parseDate(strings.TrimSpace(s.Date), loc)
	if !ok {
		return time.Time{}, MalformedDateError{Date: s.Date, Time: s.Time}
	}

	clock := strings.TrimSpace(s.Time)
	if !s.HasTime || clock == "" {
		return date, nil
	}

	tod, ok := parseClock(clock)
	if !ok {
		return time.Time{}, MalformedDateError{Date: s.Date, Time: s.Time}
	}

	y, m, d := date.Date()
	return time.Date(y, m, d, tod.Hour(), tod.Minute(), tod.Second(), 0, loc), nil
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(petalert.DateLayout, value, loc); err == nil {
		return t, true
	}
	// stores that persist JS Date objects send full timestamps; keep the calendar date
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

func parseClock(value string) (time.Time, bool) {
	for _, layout := range []string{petalert.TimeLayout, petalert.TimeLayoutSeconds} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
