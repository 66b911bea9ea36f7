package domain

import (
	"strings"
	"time"
)

// Agent is a persisted automation definition. The id is immutable once
// created; the lifecycle is soft only (Enabled flag), agents are never
// hard-deleted.
type Agent struct {
	ID           string    `json:"id"` // UUID
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Goal         string    `json:"goal"`
	Capabilities []string  `json:"capabilities"` // named capability strings, e.g. "linkedin_post"
	Schedule     *string   `json:"schedule,omitempty"`
	Sandbox      bool      `json:"sandbox"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasCapability reports whether any declared capability contains the given
// substring. Capabilities are matched by containment, not structural parsing:
// any agent can nominally declare any capability.
func (a *Agent) HasCapability(substr string) bool {
	for _, c := range a.Capabilities {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}
