// Package dates anchors an abstract week-indexed training plan to real
// calendar days. All arithmetic happens on UTC-midnight day boundaries so
// no host locale or timezone leaks into week alignment.
package dates

import (
	"fmt"
	"time"
)

// Midnight truncates t to its UTC day boundary.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// PrevSunday returns the Sunday on or before t's day.
func PrevSunday(t time.Time) time.Time {
	d := Midnight(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// NextSunday returns the Sunday on or after t's day.
func NextSunday(t time.Time) time.Time {
	d := Midnight(t)
	return d.AddDate(0, 0, (7-int(d.Weekday()))%7)
}

// ParseDay parses an RFC 3339 timestamp or a bare YYYY-MM-DD date and
// normalizes it to UTC midnight.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Midnight(t), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Midnight(t), nil
	}
	return time.Time{}, fmt.Errorf("parsing day %q: expected RFC 3339 or YYYY-MM-DD", s)
}
