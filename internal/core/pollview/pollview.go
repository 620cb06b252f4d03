// Package pollview aggregates a poll's participants and votes into the view
// model rendered by voting pages: positional vote arrays, per-option scores
// and vote buckets, the grid/list layout and the active participant form.
package pollview

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
)

// ResolveView picks the layout. Narrow screens always get the list.
func ResolveView(preferred View, wideScreen bool) View {
	if !wideScreen {
		return ViewList
	}
	if preferred == ViewList {
		return ViewList
	}
	return ViewGrid
}

// Viewer is whoever looks at the poll.
type Viewer struct {
	UserID string
	Admin  bool
}

type Options struct {
	TargetTimeZone      string
	WideScreen          bool
	PreferredView       View
	ActiveParticipantID *uuid.UUID
}

type ParticipantInfo struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Votes    []domain.VoteType `json:"votes"`
	You      bool              `json:"you"`
	Editable bool              `json:"editable"`
}

type ParticipantRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Buckets partitions the participants of one option by their vote.
type Buckets struct {
	Yes      []ParticipantRef `json:"yes"`
	No       []ParticipantRef `json:"no"`
	IfNeedBe []ParticipantRef `json:"if_need_be"`
}

func (b *Buckets) add(t domain.VoteType, p ParticipantRef) {
	switch t {
	case domain.VoteYes:
		b.Yes = append(b.Yes, p)
	case domain.VoteNo:
		b.No = append(b.No, p)
	case domain.VoteIfNeedBe:
		b.IfNeedBe = append(b.IfNeedBe, p)
	}
}

func (b Buckets) of(t domain.VoteType) []ParticipantRef {
	switch t {
	case domain.VoteYes:
		return b.Yes
	case domain.VoteNo:
		return b.No
	case domain.VoteIfNeedBe:
		return b.IfNeedBe
	}
	return nil
}

type OptionView struct {
	ID    uuid.UUID        `json:"id"`
	Index int              `json:"index"`
	Type  domain.ValueType `json:"type"`
	Date  string           `json:"date,omitempty"`
	Start string           `json:"start,omitempty"`
	End   string           `json:"end,omitempty"`
	Score int              `json:"score"`
	Votes Buckets          `json:"votes"`
}

// Form is the participant form: blank for a new participant, or pre-filled
// with the active participant's name and votes.
type Form struct {
	Name  string            `json:"name"`
	Votes []domain.VoteType `json:"votes"`
}

type PollData struct {
	PollID            uuid.UUID         `json:"poll_id"`
	Title             string            `json:"title"`
	TimeZone          string            `json:"time_zone,omitempty"`
	TargetTimeZone    string            `json:"target_time_zone,omitempty"`
	Options           []OptionView      `json:"options"`
	Participants      []ParticipantInfo `json:"participants"`
	View              View              `json:"view"`
	ActiveParticipant *ParticipantInfo  `json:"active_participant"`
	Form              Form              `json:"form"`
	UserAlreadyVoted  bool              `json:"user_already_voted"`

	byID map[uuid.UUID]int
}

// Build aggregates participants of poll for viewer.
func Build(poll *domain.Poll, participants []domain.Participant, viewer Viewer, opts Options) (*PollData, error) {
	convert, target, err := timeConverter(poll, opts.TargetTimeZone)
	if err != nil {
		return nil, err
	}

	d := &PollData{
		PollID:         poll.ID,
		Title:          poll.Title,
		TimeZone:       poll.TimeZone,
		TargetTimeZone: target,
		Options:        make([]OptionView, len(poll.Options)),
		Participants:   make([]ParticipantInfo, len(participants)),
		View:           ResolveView(opts.PreferredView, opts.WideScreen),
		byID:           make(map[uuid.UUID]int, len(participants)),
	}

	for i, p := range participants {
		you := viewer.UserID != "" && p.UserID == viewer.UserID
		info := ParticipantInfo{
			ID:       p.ID,
			Name:     p.Name,
			Votes:    make([]domain.VoteType, len(poll.Options)),
			You:      you,
			Editable: viewer.Admin || you,
		}
		for j, opt := range poll.Options {
			info.Votes[j] = p.VoteFor(opt.ID)
		}
		if you {
			d.UserAlreadyVoted = true
		}
		d.Participants[i] = info
		d.byID[p.ID] = i
	}

	for i, opt := range poll.Options {
		ov := OptionView{ID: opt.ID, Index: i, Type: opt.Value.Type}
		if opt.Value.Type == domain.ValueTypeTime {
			if ov.Start, err = convert(opt.Value.Start); err != nil {
				return nil, fmt.Errorf("option %d: %w", i, err)
			}
			if ov.End, err = convert(opt.Value.End); err != nil {
				return nil, fmt.Errorf("option %d: %w", i, err)
			}
		} else {
			ov.Date = opt.Value.Date
		}
		for _, p := range d.Participants {
			vote := p.Votes[i]
			ov.Votes.add(vote, ParticipantRef{ID: p.ID, Name: p.Name})
			if vote == domain.VoteYes {
				ov.Score++
			}
		}
		d.Options[i] = ov
	}

	d.SelectParticipant(opts.ActiveParticipantID)
	return d, nil
}

// timeConverter returns a function that rewrites a stored poll date time in
// the target zone. Polls without a zone use floating times and are only
// reformatted.
func timeConverter(poll *domain.Poll, targetTZ string) (func(string) (string, error), string, error) {
	from, err := poll.Zone()
	if err != nil {
		return nil, "", err
	}

	reformat := func(s string) (string, error) {
		t, err := domain.ParseDateTime(s)
		if err != nil {
			return "", err
		}
		return t.Format(domain.ShortTimeLayout), nil
	}
	if from == nil {
		return reformat, "", nil
	}

	to := from
	if targetTZ != "" {
		if to, err = time.LoadLocation(targetTZ); err != nil {
			return nil, "", fmt.Errorf("%w: %q", domain.ErrInvalidTimeZone, targetTZ)
		}
	}

	return func(s string) (string, error) {
		wall, err := domain.ParseDateTime(s)
		if err != nil {
			return "", err
		}
		t := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), 0, from)
		return t.In(to).Format(domain.ShortTimeLayout), nil
	}, to.String(), nil
}

// ParticipantByID looks a participant up; ok is false when the id is unknown.
func (d *PollData) ParticipantByID(id uuid.UUID) (ParticipantInfo, bool) {
	i, ok := d.byID[id]
	if !ok {
		return ParticipantInfo{}, false
	}
	return d.Participants[i], true
}

// VoteAt returns the participant's vote on the option at index.
func (d *PollData) VoteAt(id uuid.UUID, index int) (domain.VoteType, bool) {
	p, ok := d.ParticipantByID(id)
	if !ok || index < 0 || index >= len(p.Votes) {
		return domain.VoteUnset, false
	}
	return p.Votes[index], true
}

// ParticipantsWhoVoted lists who voted t on the option at index.
func (d *PollData) ParticipantsWhoVoted(t domain.VoteType, index int) []ParticipantRef {
	if index < 0 || index >= len(d.Options) {
		return nil
	}
	return d.Options[index].Votes.of(t)
}

// SelectParticipant loads a participant into the form. A nil or unknown id
// clears the selection and leaves a blank form.
func (d *PollData) SelectParticipant(id *uuid.UUID) {
	d.ActiveParticipant = nil
	d.Form = Form{Votes: make([]domain.VoteType, len(d.Options))}
	if id == nil {
		return
	}
	p, ok := d.ParticipantByID(*id)
	if !ok {
		return
	}
	d.ActiveParticipant = &p
	d.Form = Form{Name: p.Name, Votes: append([]domain.VoteType(nil), p.Votes...)}
}
