package ports

import (
	"context"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/pollview"
)

type PollViewInput struct {
	PollID              string
	Session             domain.UserSession
	TargetTimeZone      string
	WideScreen          bool
	PreferredView       pollview.View
	ActiveParticipantID string
}

type PollViewService interface {
	View(ctx context.Context, input PollViewInput) (*pollview.PollData, error)
}
