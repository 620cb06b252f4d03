package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/pollview"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

const userToken = "user-token"

var signedIn = domain.UserSession{ID: "0b7a4c4e-8f4e-4a43-9d0b-3b3f0f0e7c11", Name: "Ada"}

type fakeAuth struct{}

func (fakeAuth) LoginWithGoogle(ctx context.Context, googleToken string) (string, string, error) {
	if googleToken != "good" {
		return "", "", errors.New("bad credential")
	}
	return userToken, "refresh", nil
}

func (fakeAuth) RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken != "refresh" {
		return "", "", errors.New("refresh token not found")
	}
	return userToken, refreshToken, nil
}

func (fakeAuth) Logout(ctx context.Context, refreshToken string) error { return nil }

func (fakeAuth) GuestToken(session domain.UserSession) (string, error) {
	return "guest:" + session.ID, nil
}

func (fakeAuth) ParseAccessToken(token string) (domain.UserSession, error) {
	if token == userToken {
		return signedIn, nil
	}
	if id, ok := strings.CutPrefix(token, "guest:"); ok {
		return domain.UserSession{ID: id, IsGuest: true}, nil
	}
	return domain.UserSession{}, domain.ErrInvalidToken
}

type fakePollService struct {
	created ports.CreatePollInput
	updated ports.UpdateOptionsInput
	polls   map[string]*domain.Poll
	err     error
}

func (s *fakePollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Poll{ID: uuid.New(), Title: input.Title, UserID: input.UserID}, nil
}

func (s *fakePollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	if p, ok := s.polls[id]; ok {
		return p, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidPollID
	}
	return nil, domain.ErrPollNotFound
}

func (s *fakePollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	return nil, s.err
}

func (s *fakePollService) UpdateOptions(ctx context.Context, input ports.UpdateOptionsInput) (*domain.Poll, error) {
	s.updated = input
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Poll{}, nil
}

func (s *fakePollService) Results(ctx context.Context, id string) (map[uuid.UUID]domain.PollOptionStats, error) {
	return map[uuid.UUID]domain.PollOptionStats{}, s.err
}

type fakeViewService struct {
	input ports.PollViewInput
	poll  *domain.Poll
	parts []domain.Participant
}

func (s *fakeViewService) View(ctx context.Context, input ports.PollViewInput) (*pollview.PollData, error) {
	s.input = input
	if s.poll == nil {
		return nil, domain.ErrPollNotFound
	}
	return pollview.Build(s.poll, s.parts, pollview.Viewer{UserID: input.Session.ID}, pollview.Options{
		TargetTimeZone: input.TargetTimeZone,
		WideScreen:     input.WideScreen,
		PreferredView:  input.PreferredView,
	})
}

type fakeParticipantService struct {
	input ports.ParticipantInput
	err   error
}

func (s *fakeParticipantService) Add(ctx context.Context, input ports.ParticipantInput) (*domain.Participant, error) {
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Participant{ID: uuid.New(), Name: input.Name, UserID: input.Session.ID}, nil
}

func (s *fakeParticipantService) Update(ctx context.Context, input ports.ParticipantInput) (*domain.Participant, error) {
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Participant{Name: input.Name}, nil
}

func (s *fakeParticipantService) Delete(ctx context.Context, input ports.ParticipantInput) error {
	s.input = input
	return s.err
}

type fakeUserService struct{}

func (fakeUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return nil, nil
}

func (fakeUserService) Me(ctx context.Context, session domain.UserSession) (*ports.Profile, error) {
	return &ports.Profile{Session: session, Alias: session.Alias()}, nil
}

type testServer struct {
	handler      http.Handler
	polls        *fakePollService
	views        *fakeViewService
	participants *fakeParticipantService
}

func newTestServer() *testServer {
	return newTestServerWithOrigins([]string{"https://app.example"})
}

func newTestServerWithOrigins(origins []string) *testServer {
	ts := &testServer{
		polls:        &fakePollService{polls: map[string]*domain.Poll{}},
		views:        &fakeViewService{},
		participants: &fakeParticipantService{},
	}
	cookies := CookieConfig{SameSite: http.SameSiteLaxMode}
	calendarHandler := NewCalendarHandler(45, time.Monday)
	calendarHandler.now = func() time.Time { return time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC) }

	ts.handler = NewHandler(
		NewPollHandler(ts.polls, ts.views),
		NewParticipantHandler(ts.participants),
		calendarHandler,
		NewAuthHandler(fakeAuth{}, "/done", cookies),
		NewUserHandler(fakeUserService{}),
		NewSessionMiddleware(fakeAuth{}, cookies),
		origins,
		zerolog.Nop(),
	)
	return ts
}
