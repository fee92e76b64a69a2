package domain

import "time"

// NoticeKind classifies a one-shot message delivered to the operator.
type NoticeKind string

const (
	NoticeFetchFailure  NoticeKind = "fetch_failure"
	NoticeDeleteFailure NoticeKind = "delete_failure"
)

// Notice is a localized message that must be shown exactly once.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// DeleteOutcome is the result recorded for a confirmed delete attempt.
type DeleteOutcome string

const (
	OutcomeSuccess DeleteOutcome = "success"
	OutcomeFailure DeleteOutcome = "failure"
	OutcomeError   DeleteOutcome = "error"
)

// AuditEntry is one row of the delete journal. It never carries the password.
type AuditEntry struct {
	ID        int64         `json:"id"`
	RouteID   string        `json:"route_id"`
	Outcome   DeleteOutcome `json:"outcome"`
	Detail    string        `json:"detail,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
