package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactGoogleKey(t *testing.T) {
	in := `{"error": "API key AIzaSyD4x9examplekey123 is invalid"}`

	out := Redact(in)

	assert.NotContains(t, out, "AIzaSyD4x9examplekey123")
	assert.Contains(t, out, "AIza***REDACTED***")
}

func TestRedactOpenAIKey(t *testing.T) {
	in := "Bearer sk-proj-abc123XYZ rejected"

	out := Redact(in)

	assert.NotContains(t, out, "sk-proj-abc123XYZ")
	assert.Contains(t, out, "sk-***REDACTED***")
}

func TestRedactLeavesPlainTextAlone(t *testing.T) {
	in := "connection refused while dialing upstream"
	assert.Equal(t, in, Redact(in))
}

func TestRedactMultipleOccurrences(t *testing.T) {
	in := "first sk-aaa then AIzaBBB end"

	out := Redact(in)

	assert.Equal(t, 2, strings.Count(out, "***REDACTED***"))
	assert.NotContains(t, out, "sk-aaa")
	assert.NotContains(t, out, "AIzaBBB")
}
