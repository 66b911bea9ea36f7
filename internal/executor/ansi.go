package executor

import "regexp"

// Automation scripts write colored terminal output; strip the escapes so
// the captured text is storable and displayable.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func StripANSI(b []byte) string {
	return ansiPattern.ReplaceAllString(string(b), "")
}
