package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportErrorRedactsKeyedURL(t *testing.T) {
	// A refused connection renders the full request URL into the error,
	// query string included. Nothing listens on port 1.
	client := newHTTPClient(200 * time.Millisecond)
	keyedURL := "http://127.0.0.1:1/v1beta/models/gemini:generateContent?key=AIzaSyFAKESECRETKEY123"

	_, err := postJSON(context.Background(), client, "gemini", keyedURL, nil, map[string]string{})
	require.Error(t, err)

	var transport *TransportError
	require.ErrorAs(t, err, &transport)

	assert.NotContains(t, err.Error(), "AIzaSyFAKESECRETKEY123")
	assert.Contains(t, err.Error(), "***REDACTED***")
}

func TestParseErrorRedactsMessage(t *testing.T) {
	perr := &ParseError{
		Provider: "openai",
		Err:      errors.New("unexpected token near sk-leakedkey42"),
		Body:     "partial sk-leakedbody99",
	}

	msg := perr.Error()

	assert.NotContains(t, msg, "sk-leakedkey42")
	assert.NotContains(t, msg, "sk-leakedbody99")
}
