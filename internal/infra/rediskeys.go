package infra

import "fmt"

const (
	// RedisNamespace isolates this project's keys inside a shared Redis.
	RedisNamespace = "personaliz"
)

// Pub/Sub channels (events).
const (
	// RedisChanApprovalDecisions broadcasts operator decisions, payload
	// "<approvalID>:<status>".
	RedisChanApprovalDecisions = RedisNamespace + ":approvals:decisions"
)

// FireGuardKey builds the dedupe key for one scheduler firing slot.
// Slot is "2006-01-02" for daily agents and "2006-01-02T15" for hourly.
func FireGuardKey(agentID, slot string) string {
	return fmt.Sprintf("%s:sched:fired:%s:%s", RedisNamespace, agentID, slot)
}
