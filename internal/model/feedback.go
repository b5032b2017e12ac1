package model

import (
	"time"
)

const (
	FeedbackStatusOpen    = "open"
	FeedbackStatusPlanned = "planned"
	FeedbackStatusDone    = "done"

	PipelineStatusNone     = "none"
	PipelineStatusQueued   = "queued"
	PipelineStatusBuilding = "building"
	PipelineStatusShipped  = "shipped"
)

type FeedbackItem struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Type           string    `db:"type" json:"type"`
	Body           string    `db:"body" json:"body"`
	Priority       *int      `db:"priority" json:"priority"`
	Tags           string    `db:"tags" json:"tags"`
	Status         string    `db:"status" json:"status"`
	PipelineStatus string    `db:"pipeline_status" json:"pipeline_status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type FeedbackVote struct {
	ID         string    `db:"id" json:"id"`
	FeedbackID string    `db:"feedback_id" json:"feedback_id"`
	UserID     string    `db:"user_id" json:"user_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
