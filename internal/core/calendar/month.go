package calendar

import (
	"time"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

const daysPerWeek = 7

type Day struct {
	Date       string `json:"date"`
	Day        int    `json:"day"`
	OutOfMonth bool   `json:"out_of_month"`
	Today      bool   `json:"today"`
	Selected   bool   `json:"selected"`
}

// Month is a rendered month grid made of whole weeks.
type Month struct {
	Label      string   `json:"label"`
	DaysOfWeek []string `json:"days_of_week"`
	Days       []Day    `json:"days"`
	Selection  []string `json:"selection"`
}

// NewMonth renders the month containing anchor. The grid starts on the
// weekStartsOn day on or before the first of the month and ends on the last
// day of the week containing the month's last day.
func NewMonth(anchor, today time.Time, weekStartsOn time.Weekday, selection []time.Time) Month {
	first := firstOfMonth(anchor)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int((first.Weekday()-weekStartsOn+daysPerWeek)%daysPerWeek))
	end := last.AddDate(0, 0, int((weekStartsOn+daysPerWeek-1-last.Weekday())%daysPerWeek))

	selected := make(map[string]bool, len(selection))
	m := Month{
		Label:     first.Format("January 2006"),
		Selection: make([]string, 0, len(selection)),
	}
	for _, s := range selection {
		key := domain.FormatDay(s)
		if !selected[key] {
			selected[key] = true
			m.Selection = append(m.Selection, key)
		}
	}

	for i := 0; i < daysPerWeek; i++ {
		m.DaysOfWeek = append(m.DaysOfWeek, time.Weekday((int(weekStartsOn)+i)%daysPerWeek).String())
	}

	todayKey := domain.FormatDay(today)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := domain.FormatDay(d)
		m.Days = append(m.Days, Day{
			Date:       key,
			Day:        d.Day(),
			OutOfMonth: d.Month() != first.Month(),
			Today:      key == todayKey,
			Selected:   selected[key],
		})
	}
	return m
}

func firstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// PrevMonth returns the first day of the month before t.
func PrevMonth(t time.Time) time.Time {
	return firstOfMonth(t).AddDate(0, -1, 0)
}

// NextMonth returns the first day of the month after t.
func NextMonth(t time.Time) time.Time {
	return firstOfMonth(t).AddDate(0, 1, 0)
}
