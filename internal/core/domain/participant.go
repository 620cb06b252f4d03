package domain

import (
	"time"

	"github.com/google/uuid"
)

type Participant struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id,omitempty"`
	Votes     []Vote    `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteFor returns the participant's vote for an option, or VoteUnset.
func (p *Participant) VoteFor(optionID uuid.UUID) VoteType {
	for _, v := range p.Votes {
		if v.OptionID == optionID {
			return v.Type
		}
	}
	return VoteUnset
}
