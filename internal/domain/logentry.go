package domain

import "time"

type LogLevel string

const (
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// LogEntry is one append-only action-log record. Entries are never mutated
// or deleted; listings order by timestamp descending.
type LogEntry struct {
	ID        string    `json:"id"` // UUID
	AgentID   *string   `json:"agent_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Provider  string    `json:"provider,omitempty"` // which LLM served the request, if any
	Outcome   string    `json:"outcome,omitempty"`  // success/failure of the served request
}
