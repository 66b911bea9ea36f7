package scheduler

import "strings"

// Schedule expressions are free text matched for a closed set of keywords
// by case-insensitive containment. This is deliberate policy, not a cron
// parser: upgrading to cron syntax would change the semantics and needs a
// re-specification first.
const (
	keywordDaily  = "daily"
	keywordHourly = "hourly"
)

// matchSchedule classifies one schedule expression. Both flags may be set
// when the expression mentions both keywords.
func matchSchedule(expr string) (daily, hourly bool) {
	s := strings.ToLower(expr)
	return strings.Contains(s, keywordDaily), strings.Contains(s, keywordHourly)
}
