// Package calendar holds the date-option editing logic of a poll: grouping
// options by day, the month grid, day toggles and time slot edits.
//
// Every operation takes an immutable snapshot and returns a new one; option
// slices are never modified in place.
package calendar

import (
	"sort"
	"time"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

type IndexedOption struct {
	Option domain.DateTimeOption `json:"option"`
	Index  int                   `json:"index"`
}

// DayGroup holds the options that fall on one day, in original order.
type DayGroup struct {
	Day     string          `json:"day"`
	Entries []IndexedOption `json:"entries"`
}

// GroupByDay partitions options by day. Groups are ordered by the first
// appearance of their day in options.
func GroupByDay(options []domain.DateTimeOption) []DayGroup {
	var groups []DayGroup
	pos := make(map[string]int)
	for i, opt := range options {
		day := opt.Day()
		g, ok := pos[day]
		if !ok {
			g = len(groups)
			pos[day] = g
			groups = append(groups, DayGroup{Day: day})
		}
		groups[g].Entries = append(groups[g].Entries, IndexedOption{Option: opt, Index: i})
	}
	return groups
}

// Flatten is the inverse of GroupByDay.
func Flatten(groups []DayGroup) []domain.DateTimeOption {
	var entries []IndexedOption
	for _, g := range groups {
		entries = append(entries, g.Entries...)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Index < entries[j].Index })

	out := make([]domain.DateTimeOption, len(entries))
	for i, e := range entries {
		out[i] = e.Option
	}
	return out
}

func findGroup(groups []DayGroup, day string) (DayGroup, bool) {
	for _, g := range groups {
		if g.Day == day {
			return g, true
		}
	}
	return DayGroup{}, false
}

// SelectedDayStrings returns the sorted set of days that have options.
func SelectedDayStrings(options []domain.DateTimeOption) []string {
	groups := GroupByDay(options)
	days := make([]string, len(groups))
	for i, g := range groups {
		days[i] = g.Day
	}
	sort.Strings(days)
	return days
}

// SelectedDays is the day picker selection: every day with options,
// sorted and anchored at noon.
func SelectedDays(options []domain.DateTimeOption) ([]time.Time, error) {
	strs := SelectedDayStrings(options)
	days := make([]time.Time, 0, len(strs))
	for _, s := range strs {
		d, err := domain.DayNoon(s)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// IsSelected reports whether day has at least one option.
func IsSelected(options []domain.DateTimeOption, day time.Time) bool {
	key := domain.FormatDay(day)
	for _, opt := range options {
		if opt.Day() == key {
			return true
		}
	}
	return false
}

// RemoveAllOptionsForDay drops every option on day.
func RemoveAllOptionsForDay(options []domain.DateTimeOption, day string) []domain.DateTimeOption {
	out := make([]domain.DateTimeOption, 0, len(options))
	for _, opt := range options {
		if opt.Day() != day {
			out = append(out, opt)
		}
	}
	return out
}
