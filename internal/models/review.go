package models

import "time"

// ReviewActionType enumerates the editorial workflow operations.
type ReviewActionType string

const (
	ActionSubmit         ReviewActionType = "submit"
	ActionApprove        ReviewActionType = "approve"
	ActionReject         ReviewActionType = "reject"
	ActionRequestChanges ReviewActionType = "request_changes"
)

// ReviewAction is the transient input to a workflow transition.
type ReviewAction struct {
	ContentType ContentType      `json:"content_type" validate:"required,oneof=article news"`
	ContentID   string           `json:"content_id" validate:"required"`
	Action      ReviewActionType `json:"action" validate:"required,oneof=submit approve reject request_changes"`
	Reason      string           `json:"reason,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// ReviewEntry is the persisted trace of a workflow transition, one row per action
// in the content_reviews table.
type ReviewEntry struct {
	ID          string           `json:"id"`
	ContentType ContentType      `json:"content_type"`
	ContentID   string           `json:"content_id"`
	Action      ReviewActionType `json:"action"`
	FromStatus  ReviewStatus     `json:"from_status"`
	ToStatus    ReviewStatus     `json:"to_status"`
	Notes       string           `json:"notes,omitempty"`
	Actor       string           `json:"actor,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
