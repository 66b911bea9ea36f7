package scheduler

import (
	"fmt"
	"strings"
)

// buildDraft turns the topic list into the post draft attached to an
// approval. Plain template: drafting works even with no LLM configured.
func buildDraft(topics []string) string {
	var b strings.Builder
	b.WriteString("Today's trends I'm watching:\n\n")
	for i, t := range topics {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	b.WriteString("\nCurious: which one will dominate next year?\n#automation #ai")
	return b.String()
}
