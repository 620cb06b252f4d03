package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteCycle(t *testing.T) {
	assert.Equal(t, VoteYes, VoteUnset.Next())
	assert.Equal(t, VoteIfNeedBe, VoteYes.Next())
	assert.Equal(t, VoteNo, VoteIfNeedBe.Next())
	assert.Equal(t, VoteYes, VoteNo.Next())
}

func TestVoteIcon(t *testing.T) {
	for _, v := range []VoteType{VoteYes, VoteNo, VoteIfNeedBe} {
		icon, err := v.Icon()
		require.NoError(t, err)
		assert.NotEmpty(t, icon)
	}

	_, err := VoteType("maybe").Icon()
	assert.ErrorIs(t, err, ErrUnknownVoteType)
}

func TestVoteJSON(t *testing.T) {
	var votes []VoteType
	require.NoError(t, json.Unmarshal([]byte(`["yes", null, "ifNeedBe", "no"]`), &votes))
	assert.Equal(t, []VoteType{VoteYes, VoteUnset, VoteIfNeedBe, VoteNo}, votes)

	b, err := json.Marshal(votes)
	require.NoError(t, err)
	assert.JSONEq(t, `["yes", null, "ifNeedBe", "no"]`, string(b))

	err = json.Unmarshal([]byte(`["maybe"]`), &votes)
	assert.ErrorIs(t, err, ErrInvalidVoteType)

	assert.Equal(t, VoteNo, VoteUnset.OrNo())
	assert.Equal(t, VoteYes, VoteYes.OrNo())
}

func TestSessionAlias(t *testing.T) {
	assert.Equal(t, "Ada", UserSession{ID: "1", Name: "Ada"}.Alias())
	assert.Equal(t, "guest-ab12", UserSession{ID: "user-ab12cd34", IsGuest: true}.Alias())

	guest := NewGuestSession()
	assert.True(t, guest.IsGuest)
	assert.Len(t, guest.Alias(), len("guest-")+4)
}

func TestValidateOptions(t *testing.T) {
	valid := []DateTimeOption{
		{Type: OptionTypeDate, Date: "2024-03-01"},
		{Type: OptionTypeDate, Date: "2024-03-02"},
	}
	assert.NoError(t, ValidateOptions(valid))

	mixed := append(valid, DateTimeOption{Type: OptionTypeTimeSlot, Start: "2024-03-03T09:00", End: "2024-03-03T10:00"})
	assert.ErrorIs(t, ValidateOptions(mixed), ErrMixedOptionTypes)

	backwards := []DateTimeOption{{Type: OptionTypeTimeSlot, Start: "2024-03-03T10:00", End: "2024-03-03T09:00"}}
	assert.ErrorIs(t, ValidateOptions(backwards), ErrInvalidTimeRange)

	assert.ErrorIs(t, ValidateOptions([]DateTimeOption{{Type: OptionTypeDate, Date: "03/01/2024"}}), ErrInvalidDay)
	assert.ErrorIs(t, ValidateOptions([]DateTimeOption{{Type: "week"}}), ErrOptionTypeMismatch)
}

func TestExpectTimeSlot(t *testing.T) {
	_, _, err := ExpectTimeSlot(DateTimeOption{Type: OptionTypeDate, Date: "2024-03-01"}, 4)
	var typeErr *OptionTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, 4, typeErr.Index)
	assert.Equal(t, "option 4: expected timeSlot but got date", typeErr.Error())

	start, end, err := ExpectTimeSlot(DateTimeOption{Type: OptionTypeTimeSlot, Start: "2024-03-01T09:00:00", End: "2024-03-01T09:30"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, MinutesBetween(start, end))
}

func TestOptionValueConversion(t *testing.T) {
	slot := DateTimeOption{Type: OptionTypeTimeSlot, Start: "2024-03-01T09:00:00", End: "2024-03-01T10:00:00"}
	v, err := OptionValueFrom(slot)
	require.NoError(t, err)
	assert.Equal(t, ValueTypeTime, v.Type)
	assert.Equal(t, slot, v.DateTimeOption())

	short, err := OptionValueFrom(DateTimeOption{Type: OptionTypeTimeSlot, Start: "2024-03-01T09:00", End: "2024-03-01T10:00"})
	require.NoError(t, err)
	assert.Equal(t, v, short)

	date := DateTimeOption{Type: OptionTypeDate, Date: "2024-03-01"}
	v, err = OptionValueFrom(date)
	require.NoError(t, err)
	assert.Equal(t, date, v.DateTimeOption())
}

func TestPollZone(t *testing.T) {
	loc, err := (&Poll{}).Zone()
	require.NoError(t, err)
	assert.Nil(t, loc)

	loc, err = (&Poll{TimeZone: "Europe/Berlin"}).Zone()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	_, err = (&Poll{TimeZone: "Mars/Olympus"}).Zone()
	assert.ErrorIs(t, err, ErrInvalidTimeZone)
}
