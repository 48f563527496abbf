// Package adelaide is the single place wall-clock conversion happens.
// Everything in the database is a UTC instant; everything shown to a human
// is Australia/Adelaide civil time. No other package is allowed to do its
// own timezone arithmetic.
package adelaide

import (
	"fmt"
	"time"
)

var location *time.Location

func init() {
	loc, err := time.LoadLocation("Australia/Adelaide")
	if err != nil {
		// no tzdata on the host; standard time is better than UTC
		loc = time.FixedZone("ACST", int(9.5*60*60))
	}
	location = loc
}

// Location returns the Adelaide *time.Location.
func Location() *time.Location { return location }

// Now is the current instant carried in Adelaide local time.
func Now() time.Time { return time.Now().In(location) }

// WallTime renders an instant as Adelaide "HH:MM".
func WallTime(t time.Time) string { return t.In(location).Format("15:04") }

// WallDate renders an instant as Adelaide "YYYY-MM-DD".
func WallDate(t time.Time) string { return t.In(location).Format("2006-01-02") }

// WallDateTime renders an instant as Adelaide "YYYY-MM-DD HH:MM".
func WallDateTime(t time.Time) string { return t.In(location).Format("2006-01-02 15:04") }

// FriendlyDate renders an instant as e.g. "Sat 14 Mar 2026".
func FriendlyDate(t time.Time) string { return t.In(location).Format("Mon 2 Jan 2006") }

// Combine builds the absolute instant for an Adelaide-local date ("YYYY-MM-DD")
// and time ("HH:MM"). ParseInLocation already yields the right instant; do not
// add any further offset on top of it.
func Combine(date, hhmm string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("combine %q %q: %w", date, hhmm, err)
	}
	return t, nil
}

// SameLocalDay reports whether two instants fall on the same Adelaide
// calendar date. Shifts where this is false for arrive/depart get a
// "+1d" marker in reports.
func SameLocalDay(a, b time.Time) bool {
	return WallDate(a) == WallDate(b)
}

// DayStart is midnight Adelaide time on the instant's local calendar
// date.
func DayStart(t time.Time) time.Time {
	local := t.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
}

// StartOfCurrentMonth is midnight Adelaide time on the first of the
// current month.
func StartOfCurrentMonth() time.Time {
	now := Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, location)
}

// CleanTime normalises a time string to "HH:MM", accepting "HH:MM" and
// "HH:MM:SS" input. It is total: anything unparseable is echoed back
// unchanged so a bad row degrades to odd text on a report instead of a
// failed document.
func CleanTime(s string) string {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}

// MinuteOfDay parses "HH:MM" into minutes after midnight. The boolean is
// false for unparseable input.
func MinuteOfDay(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
