package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DayLayout       = "2006-01-02"
	DateTimeLayout  = "2006-01-02T15:04:05"
	ShortTimeLayout = "2006-01-02T15:04"

	noonHour = 12
)

// Dates and date times are floating wall-clock values. They are kept in UTC
// so that arithmetic never crosses a daylight-saving boundary.

// FormatDay renders the calendar day of t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// FormatDateTime renders t as a local date time without a zone suffix.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return t, nil
}

// ParseDateTime accepts YYYY-MM-DDTHH:mm and YYYY-MM-DDTHH:mm:ss.
func ParseDateTime(s string) (time.Time, error) {
	layout := DateTimeLayout
	if strings.Count(s, ":") == 1 {
		layout = ShortTimeLayout
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
	}
	return t, nil
}

// Noon returns 12:00 on the calendar day of t.
func Noon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, noonHour, 0, 0, 0, time.UTC)
}

// DayNoon parses a day-string and anchors it at noon.
func DayNoon(day string) (time.Time, error) {
	t, err := ParseDay(day)
	if err != nil {
		return time.Time{}, err
	}
	return Noon(t), nil
}

func SameDay(a, b time.Time) bool {
	return FormatDay(a) == FormatDay(b)
}

// DayOf returns the day-string prefix of a date or date time string.
func DayOf(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// TimeOfDay returns the offset of t from midnight of its own day.
func TimeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

// Minutes converts a whole number of minutes to a duration.
func Minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// MinutesBetween returns the whole minutes from start to end.
func MinutesBetween(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}
