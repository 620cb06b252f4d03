package calendar

import (
	"time"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

// DefaultDuration is the slot length, in minutes, of a new timed poll.
const DefaultDuration = 60

// State is one snapshot of the option editor. Date is the day the calendar
// is navigated to.
type State struct {
	Options  []domain.DateTimeOption `json:"options"`
	Duration int                     `json:"duration"`
	Date     string                  `json:"date,omitempty"`
}

func (s State) IsTimed() bool {
	return domain.IsTimed(s.Options)
}

func (s State) duration() time.Duration {
	if s.Duration <= 0 {
		return domain.Minutes(DefaultDuration)
	}
	return domain.Minutes(s.Duration)
}

// viewMonth is the month the calendar currently shows.
func (s State) viewMonth(fallback time.Time) time.Time {
	if d, err := domain.ParseDay(domain.DayOf(s.Date)); err == nil {
		return firstOfMonth(d)
	}
	return firstOfMonth(fallback)
}

func (s State) with(options []domain.DateTimeOption) State {
	s.Options = options
	return s
}

func appendOption(options []domain.DateTimeOption, opt domain.DateTimeOption) []domain.DateTimeOption {
	out := make([]domain.DateTimeOption, len(options), len(options)+1)
	copy(out, options)
	return append(out, opt)
}

// newOptionForDay builds the option a click on day adds: a date in an
// all-day poll, a slot from noon lasting the current duration otherwise.
func (s State) newOptionForDay(day time.Time) domain.DateTimeOption {
	noon := domain.Noon(day)
	if !s.IsTimed() {
		return domain.NewDateOption(noon)
	}
	return domain.NewTimeSlotOption(noon, noon.Add(s.duration()))
}

// ToggleDay handles a click on a calendar cell. A selected day loses all of
// its options; an unselected day gains one. Clicking a day outside the
// shown month also moves the calendar to that day's month.
func ToggleDay(s State, day time.Time) State {
	day = domain.Noon(day)
	view := s.viewMonth(day)

	var next State
	if IsSelected(s.Options, day) {
		next = s.with(RemoveAllOptionsForDay(s.Options, domain.FormatDay(day)))
	} else {
		next = s.with(appendOption(s.Options, s.newOptionForDay(day)))
		next.Date = domain.FormatDay(day)
	}

	// Out-of-month cells sit in the first row for the previous month and in
	// the last rows for the next one; either way the calendar follows the day.
	if !firstOfMonth(day).Equal(view) {
		next.Date = domain.FormatDay(day)
	}
	return next
}

// SetTimed converts every option between the all-day and timed forms.
// Going timed turns each date into a slot from noon lasting the current
// duration. Going all-day keeps one date per selected day and discards
// slot times.
func SetTimed(s State, timed bool) (State, error) {
	if timed {
		out := make([]domain.DateTimeOption, len(s.Options))
		for i, opt := range s.Options {
			day, err := domain.ExpectDate(opt, i)
			if err != nil {
				return s, err
			}
			start := domain.Noon(day)
			out[i] = domain.NewTimeSlotOption(start, start.Add(s.duration()))
		}
		return s.with(out), nil
	}

	for i, opt := range s.Options {
		if _, _, err := domain.ExpectTimeSlot(opt, i); err != nil {
			return s, err
		}
	}
	days, err := SelectedDays(s.Options)
	if err != nil {
		return s, err
	}
	out := make([]domain.DateTimeOption, len(days))
	for i, d := range days {
		out[i] = domain.NewDateOption(d)
	}
	return s.with(out), nil
}

// RemoveDay drops every option on day.
func RemoveDay(s State, day string) State {
	return s.with(RemoveAllOptionsForDay(s.Options, day))
}
