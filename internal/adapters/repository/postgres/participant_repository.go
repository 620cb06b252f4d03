package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

type participantRepository struct {
	db *sql.DB
}

func NewParticipantRepository(db *sql.DB) ports.ParticipantRepository {
	return &participantRepository{
		db: db,
	}
}

func (r *participantRepository) Add(ctx context.Context, p *domain.Participant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO participants (id, poll_id, name, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, query, p.ID, p.PollID, p.Name, p.UserID, p.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	if err := insertVotes(ctx, tx, p.Votes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Update rewrites the participant's name and replaces all of its votes.
func (r *participantRepository) Update(ctx context.Context, p *domain.Participant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE participants SET name = $1 WHERE id = $2 AND poll_id = $3`, p.Name, p.ID, p.PollID)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrParticipantNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE participant_id = $1`, p.ID); err != nil {
		return fmt.Errorf("failed to clear votes: %w", err)
	}
	if err := insertVotes(ctx, tx, p.Votes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertVotes(ctx context.Context, tx *sql.Tx, votes []domain.Vote) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO votes (id, poll_id, participant_id, option_id, vote_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare vote statement: %w", err)
	}
	defer stmt.Close()

	for _, v := range votes {
		if _, err := stmt.ExecContext(ctx, v.ID, v.PollID, v.ParticipantID, v.OptionID, v.Type, v.CreatedAt); err != nil {
			return fmt.Errorf("failed to save vote: %w", err)
		}
	}
	return nil
}

func (r *participantRepository) Delete(ctx context.Context, pollID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE id = $1 AND poll_id = $2`, id, pollID)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, pollID, id uuid.UUID) (*domain.Participant, error) {
	query := `SELECT id, poll_id, name, user_id, created_at FROM participants WHERE id = $1 AND poll_id = $2`

	var p domain.Participant
	err := r.db.QueryRowContext(ctx, query, id, pollID).Scan(&p.ID, &p.PollID, &p.Name, &p.UserID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	votes, err := r.fetchVotes(ctx, `WHERE participant_id = $1`, p.ID)
	if err != nil {
		return nil, err
	}
	p.Votes = votes[p.ID]
	return &p, nil
}

// ListByPoll returns the poll's participants in the order they joined.
func (r *participantRepository) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.Participant, error) {
	query := `
		SELECT id, poll_id, name, user_id, created_at
		FROM participants
		WHERE poll_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.PollID, &p.Name, &p.UserID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	votes, err := r.fetchVotes(ctx, `WHERE poll_id = $1`, pollID)
	if err != nil {
		return nil, err
	}
	for i := range participants {
		participants[i].Votes = votes[participants[i].ID]
	}
	return participants, nil
}

// fetchVotes loads votes matching where and groups them by participant.
func (r *participantRepository) fetchVotes(ctx context.Context, where string, arg any) (map[uuid.UUID][]domain.Vote, error) {
	query := `SELECT id, poll_id, participant_id, option_id, vote_type, created_at FROM votes ` + where
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	defer rows.Close()

	votes := make(map[uuid.UUID][]domain.Vote)
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.ID, &v.PollID, &v.ParticipantID, &v.OptionID, &v.Type, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes[v.ParticipantID] = append(votes[v.ParticipantID], v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}
