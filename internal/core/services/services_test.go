package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/pollview"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

var (
	owner = domain.UserSession{ID: "owner-1", Name: "Olga"}
	guest = domain.UserSession{ID: "user-guest1", IsGuest: true}
)

func dates(days ...string) []domain.DateTimeOption {
	out := make([]domain.DateTimeOption, len(days))
	for i, d := range days {
		out[i] = domain.DateTimeOption{Type: domain.OptionTypeDate, Date: d}
	}
	return out
}

type fixture struct {
	polls        *fakePollRepo
	participants *fakeParticipantRepo
	results      *fakeResultRepo
	pollSvc      ports.PollService
	partSvc      ports.ParticipantService
	viewSvc      ports.PollViewService
}

func newFixture() *fixture {
	f := &fixture{
		polls:        newFakePollRepo(),
		participants: &fakeParticipantRepo{},
		results:      &fakeResultRepo{},
	}
	f.pollSvc = NewPollService(f.polls, f.results)
	f.partSvc = NewParticipantService(f.polls, f.participants)
	f.viewSvc = NewPollViewService(f.polls, f.participants)
	return f
}

func (f *fixture) createPoll(t *testing.T, options []domain.DateTimeOption) *domain.Poll {
	t.Helper()
	poll, err := f.pollSvc.Create(context.Background(), ports.CreatePollInput{
		Title:   "Offsite",
		UserID:  owner.ID,
		Options: options,
	})
	require.NoError(t, err)
	return poll
}

func TestCreatePollValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.pollSvc.Create(ctx, ports.CreatePollInput{Title: " ", Options: dates("2024-03-01")})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	_, err = f.pollSvc.Create(ctx, ports.CreatePollInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrNoOptions)

	mixed := append(dates("2024-03-01"), domain.DateTimeOption{Type: domain.OptionTypeTimeSlot, Start: "2024-03-02T09:00", End: "2024-03-02T10:00"})
	_, err = f.pollSvc.Create(ctx, ports.CreatePollInput{Title: "x", Options: mixed})
	assert.ErrorIs(t, err, domain.ErrMixedOptionTypes)

	slots := []domain.DateTimeOption{{Type: domain.OptionTypeTimeSlot, Start: "2024-03-02T09:00", End: "2024-03-02T10:00"}}
	_, err = f.pollSvc.Create(ctx, ports.CreatePollInput{Title: "x", Options: slots, TimeZone: "Moon/Base"})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeZone)

	poll, err := f.pollSvc.Create(ctx, ports.CreatePollInput{Title: "x", Options: dates("2024-03-01"), TimeZone: "Moon/Base"})
	require.NoError(t, err)
	assert.Empty(t, poll.TimeZone)

	_, err = f.pollSvc.GetPoll(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidPollID)
}

func TestUpdateOptionsKeepsExistingIDs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poll := f.createPoll(t, dates("2024-03-01", "2024-03-02"))

	_, err := f.pollSvc.UpdateOptions(ctx, ports.UpdateOptionsInput{PollID: poll.ID.String(), Session: guest, Options: dates("2024-03-05")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.pollSvc.UpdateOptions(ctx, ports.UpdateOptionsInput{
		PollID:  poll.ID.String(),
		Session: owner,
		Options: dates("2024-03-02", "2024-03-07"),
	})
	require.NoError(t, err)
	require.Len(t, updated.Options, 2)
	assert.Equal(t, poll.Options[1].ID, updated.Options[0].ID)
	assert.NotEqual(t, poll.Options[0].ID, updated.Options[1].ID)

	stored, err := f.pollSvc.GetPoll(ctx, poll.ID.String())
	require.NoError(t, err)
	assert.Equal(t, updated.Options, stored.Options)
}

func TestAddParticipantDefaultsUnsetVotesToNo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poll := f.createPoll(t, dates("2024-03-01", "2024-03-02", "2024-03-03"))

	p, err := f.partSvc.Add(ctx, ports.ParticipantInput{
		PollID:  poll.ID.String(),
		Session: guest,
		Name:    "  Gus ",
		Votes:   []domain.VoteType{domain.VoteYes, domain.VoteUnset, domain.VoteIfNeedBe},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gus", p.Name)
	assert.Equal(t, guest.ID, p.UserID)
	require.Len(t, p.Votes, 3)
	assert.Equal(t, domain.VoteNo, p.Votes[1].Type)
	assert.Equal(t, poll.Options[2].ID, p.Votes[2].OptionID)

	_, err = f.partSvc.Add(ctx, ports.ParticipantInput{PollID: poll.ID.String(), Name: "X", Votes: []domain.VoteType{domain.VoteYes}})
	assert.ErrorIs(t, err, domain.ErrVoteCountMismatch)

	_, err = f.partSvc.Add(ctx, ports.ParticipantInput{PollID: poll.ID.String(), Votes: make([]domain.VoteType, 3)})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = f.partSvc.Add(ctx, ports.ParticipantInput{PollID: uuid.NewString(), Name: "X"})
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestParticipantPermissions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poll := f.createPoll(t, dates("2024-03-01"))

	p, err := f.partSvc.Add(ctx, ports.ParticipantInput{PollID: poll.ID.String(), Session: guest, Name: "Gus", Votes: []domain.VoteType{domain.VoteYes}})
	require.NoError(t, err)

	stranger := domain.UserSession{ID: "user-stranger", IsGuest: true}
	_, err = f.partSvc.Update(ctx, ports.ParticipantInput{
		PollID: poll.ID.String(), ParticipantID: p.ID.String(), Session: stranger, Name: "Hacked", Votes: []domain.VoteType{domain.VoteNo},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.partSvc.Update(ctx, ports.ParticipantInput{
		PollID: poll.ID.String(), ParticipantID: p.ID.String(), Session: guest, Name: "Gus B", Votes: []domain.VoteType{domain.VoteNo},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gus B", updated.Name)
	assert.Equal(t, domain.VoteNo, updated.Votes[0].Type)

	_, err = f.partSvc.Update(ctx, ports.ParticipantInput{PollID: poll.ID.String(), ParticipantID: "bad", Session: guest})
	assert.ErrorIs(t, err, domain.ErrInvalidParticipantID)

	err = f.partSvc.Delete(ctx, ports.ParticipantInput{PollID: poll.ID.String(), ParticipantID: p.ID.String(), Session: owner})
	require.NoError(t, err)

	err = f.partSvc.Delete(ctx, ports.ParticipantInput{PollID: poll.ID.String(), ParticipantID: p.ID.String(), Session: owner})
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
}

func TestPollView(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poll := f.createPoll(t, dates("2024-03-01", "2024-03-02"))

	p, err := f.partSvc.Add(ctx, ports.ParticipantInput{PollID: poll.ID.String(), Session: guest, Name: "Gus", Votes: []domain.VoteType{domain.VoteYes, domain.VoteIfNeedBe}})
	require.NoError(t, err)

	view, err := f.viewSvc.View(ctx, ports.PollViewInput{PollID: poll.ID.String(), Session: owner, WideScreen: true, ActiveParticipantID: p.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, pollview.ViewGrid, view.View)
	assert.True(t, view.Participants[0].Editable)
	assert.False(t, view.UserAlreadyVoted)
	require.NotNil(t, view.ActiveParticipant)
	assert.Equal(t, "Gus", view.Form.Name)
	assert.Equal(t, 1, view.Options[0].Score)

	view, err = f.viewSvc.View(ctx, ports.PollViewInput{PollID: poll.ID.String(), Session: guest, PreferredView: pollview.ViewGrid, ActiveParticipantID: "garbage"})
	require.NoError(t, err)
	assert.Equal(t, pollview.ViewList, view.View)
	assert.True(t, view.UserAlreadyVoted)
	assert.Nil(t, view.ActiveParticipant)
}

func TestSummarizeAllVotes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ok := f.createPoll(t, dates("2024-03-01"))
	bad := f.createPoll(t, dates("2024-03-02"))

	svc := NewSummaryService(f.polls, f.results)
	require.NoError(t, svc.SummarizeAllVotes(ctx))
	assert.Len(t, f.results.summarized, 2)

	f.results.fail = map[uuid.UUID]bool{bad.ID: true}
	err := svc.SummarizeAllVotes(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad.ID.String())
	assert.Contains(t, f.results.summarized, ok.ID)
}

func TestAuthServiceSessions(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	tokens := &fakeAuthRepo{tokens: map[string]*domain.RefreshToken{}}
	verifier := &fakeVerifier{payload: &ports.TokenPayload{Email: "ada@example.com", Name: "Ada"}}
	svc := NewAuthService(users, tokens, verifier, AuthConfig{JWTSecret: "test-secret"})
	ctx := context.Background()

	g := domain.NewGuestSession()
	token, err := svc.GuestToken(g)
	require.NoError(t, err)
	session, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, g.ID, session.ID)
	assert.True(t, session.IsGuest)

	_, _, err = svc.LoginWithGoogle(ctx, "invalid")
	require.Error(t, err)

	access, refresh, err := svc.LoginWithGoogle(ctx, "valid")
	require.NoError(t, err)
	session, err = svc.ParseAccessToken(access)
	require.NoError(t, err)
	assert.False(t, session.IsGuest)
	assert.Equal(t, "Ada", session.Name)

	_, _, err = svc.RefreshAccessToken(ctx, refresh)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, refresh))
	_, _, err = svc.RefreshAccessToken(ctx, refresh)
	assert.EqualError(t, err, "refresh token revoked")

	other := NewAuthService(users, tokens, verifier, AuthConfig{JWTSecret: "other-secret"})
	_, err = other.ParseAccessToken(access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthServiceWithoutSecret(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	tokens := &fakeAuthRepo{tokens: map[string]*domain.RefreshToken{}}
	verifier := &fakeVerifier{payload: &ports.TokenPayload{Email: "ada@example.com", Name: "Ada"}}
	svc := NewAuthService(users, tokens, verifier, AuthConfig{})

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": owner.ID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte{})
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(forged)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.GuestToken(domain.NewGuestSession())
	assert.Error(t, err)

	_, _, err = svc.LoginWithGoogle(context.Background(), "valid")
	assert.Error(t, err)
}

func TestUserServiceMe(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	u := &domain.User{Email: "ada@example.com", Name: "Ada"}
	require.NoError(t, users.Create(context.Background(), u))
	svc := NewUserService(users)

	profile, err := svc.Me(context.Background(), domain.UserSession{ID: u.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Alias)
	assert.Equal(t, u, profile.User)

	profile, err = svc.Me(context.Background(), domain.UserSession{ID: "user-abcdef", IsGuest: true})
	require.NoError(t, err)
	assert.Equal(t, "guest-abcd", profile.Alias)
	assert.Nil(t, profile.User)
}
