package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPollNotFound          = errors.New("poll not found")
	ErrTitleRequired         = errors.New("title is required")
	ErrNameRequired          = errors.New("name is required")
	ErrInvalidPollID         = errors.New("invalid poll id")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrInvalidParticipantID  = errors.New("invalid participant id")
	ErrForbidden             = errors.New("not allowed to modify this resource")
	ErrVoteCountMismatch     = errors.New("vote count does not match option count")
	ErrInvalidVoteType       = errors.New("invalid vote type")
	ErrUnknownVoteType       = errors.New("no icon for vote type")
	ErrInvalidDay            = errors.New("invalid day")
	ErrInvalidDateTime       = errors.New("invalid date time")
	ErrInvalidTimeRange      = errors.New("end must be after start")
	ErrInvalidTimeZone       = errors.New("invalid time zone")
	ErrMixedOptionTypes      = errors.New("poll options must all be dates or all be time slots")
	ErrNoOptions             = errors.New("at least one option is required")
	ErrOptionIndexOutOfRange = errors.New("option index out of range")
	ErrDayNotSelected        = errors.New("day has no options")
	ErrOptionTypeMismatch    = errors.New("unexpected option type")
	ErrInvalidToken          = errors.New("invalid access token")
	ErrInternal              = errors.New("internal server error")
)

// OptionTypeError reports a contract violation: an option of one kind was
// found where the poll type requires the other.
type OptionTypeError struct {
	Index    int
	Expected OptionType
	Got      OptionType
}

func (e *OptionTypeError) Error() string {
	return fmt.Sprintf("option %d: expected %s but got %s", e.Index, e.Expected, e.Got)
}

func (e *OptionTypeError) Unwrap() error {
	return ErrOptionTypeMismatch
}
