package domain

import (
	"fmt"
	"time"
)

type OptionType string

const (
	OptionTypeDate     OptionType = "date"
	OptionTypeTimeSlot OptionType = "timeSlot"
)

// DateTimeOption is the editor representation of a poll option: either a
// whole calendar day or a slot between two local date times.
type DateTimeOption struct {
	Type  OptionType `json:"type"`
	Date  string     `json:"date,omitempty"`
	Start string     `json:"start,omitempty"`
	End   string     `json:"end,omitempty"`
}

func NewDateOption(day time.Time) DateTimeOption {
	return DateTimeOption{Type: OptionTypeDate, Date: FormatDay(day)}
}

func NewTimeSlotOption(start, end time.Time) DateTimeOption {
	return DateTimeOption{
		Type:  OptionTypeTimeSlot,
		Start: FormatDateTime(start),
		End:   FormatDateTime(end),
	}
}

// Day is the grouping key of the option.
func (o DateTimeOption) Day() string {
	if o.Type == OptionTypeDate {
		return o.Date
	}
	return DayOf(o.Start)
}

func (o DateTimeOption) IsTimeSlot() bool {
	return o.Type == OptionTypeTimeSlot
}

func (o DateTimeOption) Validate() error {
	switch o.Type {
	case OptionTypeDate:
		_, err := ParseDay(o.Date)
		return err
	case OptionTypeTimeSlot:
		start, err := ParseDateTime(o.Start)
		if err != nil {
			return err
		}
		end, err := ParseDateTime(o.End)
		if err != nil {
			return err
		}
		if !end.After(start) {
			return ErrInvalidTimeRange
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrOptionTypeMismatch, o.Type)
	}
}

// ExpectTimeSlot returns the parsed bounds of a time slot option, or an
// *OptionTypeError when the option at index is a date.
func ExpectTimeSlot(o DateTimeOption, index int) (start, end time.Time, err error) {
	if o.Type != OptionTypeTimeSlot {
		return time.Time{}, time.Time{}, &OptionTypeError{Index: index, Expected: OptionTypeTimeSlot, Got: o.Type}
	}
	if start, err = ParseDateTime(o.Start); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end, err = ParseDateTime(o.End); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// ExpectDate is the counterpart of ExpectTimeSlot for all-day options.
func ExpectDate(o DateTimeOption, index int) (time.Time, error) {
	if o.Type != OptionTypeDate {
		return time.Time{}, &OptionTypeError{Index: index, Expected: OptionTypeDate, Got: o.Type}
	}
	return ParseDay(o.Date)
}

// IsTimed reports whether the options describe a timed poll.
func IsTimed(options []DateTimeOption) bool {
	for _, o := range options {
		if o.Type == OptionTypeTimeSlot {
			return true
		}
	}
	return false
}

// ValidateOptions checks every option and that the list is homogeneous.
func ValidateOptions(options []DateTimeOption) error {
	for i, o := range options {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("option %d: %w", i, err)
		}
		if o.Type != options[0].Type {
			return ErrMixedOptionTypes
		}
	}
	return nil
}
