package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type VoteType string

const (
	VoteYes      VoteType = "yes"
	VoteNo       VoteType = "no"
	VoteIfNeedBe VoteType = "ifNeedBe"

	// VoteUnset marks an option the participant has not voted on. It is
	// encoded as JSON null.
	VoteUnset VoteType = ""
)

// voteCycle is the order a vote selector steps through.
var voteCycle = []VoteType{VoteYes, VoteIfNeedBe, VoteNo}

func (v VoteType) Valid() bool {
	switch v {
	case VoteYes, VoteNo, VoteIfNeedBe:
		return true
	}
	return false
}

// Next returns the vote after v in the selector cycle. An unset vote
// starts the cycle at yes.
func (v VoteType) Next() VoteType {
	for i, t := range voteCycle {
		if t == v {
			return voteCycle[(i+1)%len(voteCycle)]
		}
	}
	return voteCycle[0]
}

// Icon maps a vote to the symbol used in text grids.
func (v VoteType) Icon() (string, error) {
	switch v {
	case VoteYes:
		return "✓", nil
	case VoteNo:
		return "✗", nil
	case VoteIfNeedBe:
		return "~", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVoteType, v)
}

// OrNo resolves an unset vote to no, as stored on submission.
func (v VoteType) OrNo() VoteType {
	if v == VoteUnset {
		return VoteNo
	}
	return v
}

func (v VoteType) MarshalJSON() ([]byte, error) {
	if v == VoteUnset {
		return []byte("null"), nil
	}
	return json.Marshal(string(v))
}

func (v *VoteType) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = VoteUnset
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t := VoteType(s)
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVoteType, s)
	}
	*v = t
	return nil
}

type Vote struct {
	ID            uuid.UUID `json:"id"`
	PollID        uuid.UUID `json:"poll_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	OptionID      uuid.UUID `json:"option_id"`
	Type          VoteType  `json:"type"`
	CreatedAt     time.Time `json:"created_at"`
}
