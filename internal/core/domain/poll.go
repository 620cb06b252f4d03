package domain

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
)

type Poll struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Location    string       `json:"location,omitempty"`
	TimeZone    string       `json:"time_zone,omitempty"`
	UserID      string       `json:"user_id"`
	Options     []PollOption `json:"options"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ValueType is the stored kind of a poll option.
type ValueType string

const (
	ValueTypeDate ValueType = "date"
	ValueTypeTime ValueType = "time"
)

type OptionValue struct {
	Type  ValueType `json:"type"`
	Date  string    `json:"date,omitempty"`
	Start string    `json:"start,omitempty"`
	End   string    `json:"end,omitempty"`
}

type PollOption struct {
	ID        uuid.UUID   `json:"id"`
	PollID    uuid.UUID   `json:"poll_id"`
	Value     OptionValue `json:"value"`
	CreatedAt time.Time   `json:"created_at"`
}

// OptionValueFrom converts an editor option to its stored form. Slot bounds
// are normalized to seconds precision.
func OptionValueFrom(o DateTimeOption) (OptionValue, error) {
	switch o.Type {
	case OptionTypeDate:
		return OptionValue{Type: ValueTypeDate, Date: o.Date}, nil
	case OptionTypeTimeSlot:
		start, err := ParseDateTime(o.Start)
		if err != nil {
			return OptionValue{}, err
		}
		end, err := ParseDateTime(o.End)
		if err != nil {
			return OptionValue{}, err
		}
		return OptionValue{Type: ValueTypeTime, Start: FormatDateTime(start), End: FormatDateTime(end)}, nil
	default:
		return OptionValue{}, fmt.Errorf("%w: %q", ErrOptionTypeMismatch, o.Type)
	}
}

func (v OptionValue) DateTimeOption() DateTimeOption {
	if v.Type == ValueTypeTime {
		return DateTimeOption{Type: OptionTypeTimeSlot, Start: v.Start, End: v.End}
	}
	return DateTimeOption{Type: OptionTypeDate, Date: v.Date}
}

// DateTimeOptions returns the editor form of the poll's options.
func (p *Poll) DateTimeOptions() []DateTimeOption {
	out := make([]DateTimeOption, len(p.Options))
	for i, opt := range p.Options {
		out[i] = opt.Value.DateTimeOption()
	}
	return out
}

// Zone returns the poll's time zone, or nil for floating times.
func (p *Poll) Zone() (*time.Location, error) {
	if p.TimeZone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, p.TimeZone)
	}
	return loc, nil
}
