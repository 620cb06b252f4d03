package domain

import (
	"time"

	"github.com/google/uuid"
)

type PollResult struct {
	PollID        uuid.UUID
	OptionID      uuid.UUID
	YesCount      int64
	IfNeedBeCount int64
	NoCount       int64
	LastUpdatedAt time.Time
}

type PollOptionStats struct {
	YesCount      int64   `json:"yes_count"`
	IfNeedBeCount int64   `json:"if_need_be_count"`
	NoCount       int64   `json:"no_count"`
	Percentage    float64 `json:"percentage"`
}
