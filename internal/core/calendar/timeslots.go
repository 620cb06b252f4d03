package calendar

import (
	"fmt"
	"time"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

func slotAt(s State, index int) (start, end time.Time, err error) {
	if index < 0 || index >= len(s.Options) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d", domain.ErrOptionIndexOutOfRange, index)
	}
	return domain.ExpectTimeSlot(s.Options[index], index)
}

func replaceAt(options []domain.DateTimeOption, index int, opt domain.DateTimeOption) []domain.DateTimeOption {
	out := make([]domain.DateTimeOption, len(options))
	copy(out, options)
	out[index] = opt
	return out
}

// SetSlotStart moves a slot to start and keeps its length equal to the
// current duration.
func SetSlotStart(s State, index int, start time.Time) (State, error) {
	if _, _, err := slotAt(s, index); err != nil {
		return s, err
	}
	end := start.Add(s.duration())

	next := s.with(replaceAt(s.Options, index, domain.NewTimeSlotOption(start, end)))
	next.Duration = domain.MinutesBetween(start, end)
	next.Date = domain.FormatDay(start)
	return next, nil
}

// SetSlotEnd changes the end of a slot. The new length becomes the current
// duration.
func SetSlotEnd(s State, index int, end time.Time) (State, error) {
	start, _, err := slotAt(s, index)
	if err != nil {
		return s, err
	}
	if !end.After(start) {
		return s, domain.ErrInvalidTimeRange
	}

	next := s.with(replaceAt(s.Options, index, domain.NewTimeSlotOption(start, end)))
	next.Duration = domain.MinutesBetween(start, end)
	next.Date = domain.FormatDay(end)
	return next, nil
}

// AddSlot appends a slot to day. It starts where the day's last slot ends,
// unless that slot runs past midnight, in which case it starts where the
// last slot starts.
func AddSlot(s State, day string) (State, error) {
	group, ok := findGroup(GroupByDay(s.Options), day)
	if !ok {
		return s, fmt.Errorf("%w: %s", domain.ErrDayNotSelected, day)
	}
	last := group.Entries[len(group.Entries)-1]
	lastStart, lastEnd, err := domain.ExpectTimeSlot(last.Option, last.Index)
	if err != nil {
		return s, err
	}

	start := lastStart
	if domain.SameDay(lastStart, lastEnd) {
		start = lastEnd
	}
	return s.with(appendOption(s.Options, domain.NewTimeSlotOption(start, start.Add(s.duration())))), nil
}

// RemoveSlot drops the option at index. A day whose last slot is removed
// is no longer selected.
func RemoveSlot(s State, index int) (State, error) {
	if index < 0 || index >= len(s.Options) {
		return s, fmt.Errorf("%w: %d", domain.ErrOptionIndexOutOfRange, index)
	}
	out := make([]domain.DateTimeOption, 0, len(s.Options)-1)
	out = append(out, s.Options[:index]...)
	out = append(out, s.Options[index+1:]...)
	return s.with(out), nil
}

type slotOffset struct {
	start  time.Duration
	length time.Duration
}

// ApplyToAllDays copies the slots of day onto every selected day. Each day
// ends up with exactly the source day's slots at the same times of day;
// whatever slots the other days had are replaced.
func ApplyToAllDays(s State, day string) (State, error) {
	groups := GroupByDay(s.Options)
	source, ok := findGroup(groups, day)
	if !ok {
		return s, fmt.Errorf("%w: %s", domain.ErrDayNotSelected, day)
	}

	offsets := make([]slotOffset, 0, len(source.Entries))
	for _, e := range source.Entries {
		start, end, err := domain.ExpectTimeSlot(e.Option, e.Index)
		if err != nil {
			return s, err
		}
		offsets = append(offsets, slotOffset{start: domain.TimeOfDay(start), length: end.Sub(start)})
	}

	out := make([]domain.DateTimeOption, 0, len(groups)*len(offsets))
	for _, g := range groups {
		midnight, err := domain.ParseDay(g.Day)
		if err != nil {
			return s, err
		}
		for _, off := range offsets {
			start := midnight.Add(off.start)
			out = append(out, domain.NewTimeSlotOption(start, start.Add(off.length)))
		}
	}
	return s.with(out), nil
}
