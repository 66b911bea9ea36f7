package llm

import "regexp"

// Known API-key prefixes. Any substring starting with one of these is
// masked in place: the prefix stays, the remainder is replaced, so raw key
// material never reaches logs or the UI.
var secretPattern = regexp.MustCompile(`(AIza|sk-)[A-Za-z0-9_\-]*`)

const redactionMarker = "***REDACTED***"

// Redact masks every recognized secret in s.
func Redact(s string) string {
	return secretPattern.ReplaceAllString(s, "$1"+redactionMarker)
}
