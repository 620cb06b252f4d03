package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

type fakePollRepo struct {
	mu    sync.Mutex
	polls map[uuid.UUID]*domain.Poll
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{polls: make(map[uuid.UUID]*domain.Poll)}
}

func (r *fakePollRepo) Save(ctx context.Context, poll *domain.Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *poll
	r.polls[poll.ID] = &cp
	return nil
}

func (r *fakePollRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePollRepo) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Poll
	for _, p := range r.polls {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePollRepo) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	return r.GetAll(ctx)
}

func (r *fakePollRepo) Search(ctx context.Context, limit, offset int, query string) ([]*domain.Poll, error) {
	return nil, nil
}

func (r *fakePollRepo) ReplaceOptions(ctx context.Context, pollID uuid.UUID, options []domain.PollOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[pollID]
	if !ok {
		return domain.ErrPollNotFound
	}
	p.Options = options
	return nil
}

type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants []domain.Participant
}

func (r *fakeParticipantRepo) Add(ctx context.Context, p *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants = append(r.participants, *p)
	return nil
}

func (r *fakeParticipantRepo) Update(ctx context.Context, p *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.participants {
		if r.participants[i].ID == p.ID {
			r.participants[i] = *p
			return nil
		}
	}
	return domain.ErrParticipantNotFound
}

func (r *fakeParticipantRepo) Delete(ctx context.Context, pollID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.participants {
		if r.participants[i].ID == id {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return nil
		}
	}
	return domain.ErrParticipantNotFound
}

func (r *fakeParticipantRepo) GetByID(ctx context.Context, pollID, id uuid.UUID) (*domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.ID == id && p.PollID == pollID {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrParticipantNotFound
}

func (r *fakeParticipantRepo) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Participant
	for _, p := range r.participants {
		if p.PollID == pollID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeResultRepo struct {
	mu         sync.Mutex
	summarized []uuid.UUID
	fail       map[uuid.UUID]bool
}

func (r *fakeResultRepo) SummarizeVotes(ctx context.Context, pollID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[pollID] {
		return errors.New("boom")
	}
	r.summarized = append(r.summarized, pollID)
	return nil
}

func (r *fakeResultRepo) GetPollOptionStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error) {
	return map[uuid.UUID]domain.PollOptionStats{}, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.users[user.ID.String()] = user
	return nil
}

type fakeAuthRepo struct {
	tokens map[string]*domain.RefreshToken
}

func (r *fakeAuthRepo) StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	token.ID = uuid.New()
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeAuthRepo) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return r.tokens[tokenHash], nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(ctx context.Context, id string) error {
	for _, t := range r.tokens {
		if t.ID.String() == id {
			t.Revoked = true
		}
	}
	return nil
}

type fakeVerifier struct {
	payload *ports.TokenPayload
}

func (v *fakeVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	if token != "valid" {
		return nil, errors.New("bad token")
	}
	return v.payload, nil
}
