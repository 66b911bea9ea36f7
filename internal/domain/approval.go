package domain

import "time"

// ApprovalStatus is the state machine of a drafted action.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// Approval is a drafted, not-yet-executed action awaiting a human decision.
// Transitions are one-way and terminal: pending -> approved | rejected.
// Entries are never deleted; they form the audit trail.
type Approval struct {
	ID        string         `json:"id"` // UUID
	AgentID   string         `json:"agent_id"`
	Kind      string         `json:"kind"` // executor key, e.g. "post"
	DraftText string         `json:"draft_text"`
	Status    ApprovalStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	DecidedAt *time.Time     `json:"decided_at,omitempty"` // nil until decided
}

// CanDecide checks the state machine guard: only a pending entry may be
// decided, and only into a terminal state.
func (a *Approval) CanDecide(next ApprovalStatus) error {
	if a.Status != StatusPending {
		return &NotFoundError{Entity: "approval", ID: a.ID}
	}
	if next != StatusApproved && next != StatusRejected {
		return &ValidationError{Field: "status", Reason: "decision must be approved or rejected"}
	}
	return nil
}
