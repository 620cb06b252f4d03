package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

type pollResultRepository struct {
	db *sql.DB
}

func NewPollResultRepository(db *sql.DB) ports.PollResultRepository {
	return &pollResultRepository{
		db: db,
	}
}

// GetPollOptionStats reads the summarized counts. Percentage is the share of
// yes among the votes cast on the option.
func (r *pollResultRepository) GetPollOptionStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error) {
	query := `
		SELECT option_id, yes_count, if_need_be_count, no_count
		FROM poll_results
		WHERE poll_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats batch: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]domain.PollOptionStats)
	for rows.Next() {
		var optionID uuid.UUID
		var s domain.PollOptionStats
		if err := rows.Scan(&optionID, &s.YesCount, &s.IfNeedBeCount, &s.NoCount); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		if total := s.YesCount + s.IfNeedBeCount + s.NoCount; total > 0 {
			s.Percentage = (float64(s.YesCount) / float64(total)) * 100
		}
		result[optionID] = s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats: %w", err)
	}

	return result, nil
}

func (r *pollResultRepository) SummarizeVotes(ctx context.Context, pollID uuid.UUID) error {
	query := `
		INSERT INTO poll_results (poll_id, option_id, yes_count, if_need_be_count, no_count, last_updated_at)
		SELECT o.poll_id, o.id,
		       COUNT(v.id) FILTER (WHERE v.vote_type = 'yes'),
		       COUNT(v.id) FILTER (WHERE v.vote_type = 'ifNeedBe'),
		       COUNT(v.id) FILTER (WHERE v.vote_type = 'no'),
		       NOW()
		FROM poll_options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.poll_id, o.id
		ON CONFLICT (poll_id, option_id) DO UPDATE
		SET yes_count = EXCLUDED.yes_count,
		    if_need_be_count = EXCLUDED.if_need_be_count,
		    no_count = EXCLUDED.no_count,
		    last_updated_at = NOW();
	`

	_, err := r.db.ExecContext(ctx, query, pollID)
	if err != nil {
		return fmt.Errorf("failed to summarize votes for poll %s: %w", pollID, err)
	}

	return nil
}
