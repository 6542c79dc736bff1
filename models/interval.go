package models

import (
	"fmt"
	"math"
	"time"
)

const SecondsPerDay = 24 * 60 * 60

const clockLayout = "15:04:05"

// TimeOfDay is a clock time without a date, held as seconds since midnight.
type TimeOfDay struct {
	seconds int
}

// SecondsToTimeOfDay converts seconds since midnight to a TimeOfDay.
// Fractional seconds are truncated and values of a day or more wrap around.
func SecondsToTimeOfDay(seconds float64) (TimeOfDay, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return TimeOfDay{}, &MalformedPayloadError{Row: -1, Reason: fmt.Sprintf("interval %v is not a number", seconds)}
	}
	if seconds < 0 {
		return TimeOfDay{}, &MalformedPayloadError{Row: -1, Reason: fmt.Sprintf("negative interval %v", seconds)}
	}
	// Wrap before converting; huge values do not fit an int.
	s := math.Mod(math.Floor(seconds), SecondsPerDay)
	return TimeOfDay{seconds: int(s)}, nil
}

// ParseTimeOfDay parses an "HH:MM:SS" clock string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return TimeOfDay{}, &MalformedPayloadError{Row: -1, Reason: fmt.Sprintf("invalid clock time %q", s), Err: err}
	}
	return TimeOfDay{seconds: t.Hour()*3600 + t.Minute()*60 + t.Second()}, nil
}

// Hour returns the hour in [0, 23].
func (t TimeOfDay) Hour() int { return t.seconds / 3600 }

// Minute returns the minute in [0, 59].
func (t TimeOfDay) Minute() int { return t.seconds % 3600 / 60 }

// Second returns the second in [0, 59].
func (t TimeOfDay) Second() int { return t.seconds % 60 }

// Seconds returns the seconds since midnight, in [0, 86400).
func (t TimeOfDay) Seconds() int { return t.seconds }

// String renders the fixed width HH:MM:SS form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// DateTime is a clock time attached to a label such as a weekday name.
// The label never resolves to a calendar date; only Time is displayed.
type DateTime struct {
	Label string
	Time  TimeOfDay
}

// ParseClockString combines a day label with an "HH:MM:SS" string.
func ParseClockString(label, s string) (DateTime, error) {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{Label: label, Time: t}, nil
}

func (d DateTime) String() string {
	return d.Time.String()
}
