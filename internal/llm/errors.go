package llm

import "fmt"

// Classified adapter failures. Bodies embedded in these errors are already
// redacted by the adapter that produced them; Error() additionally redacts
// the rendered message, since transport errors can carry the request URL
// and the gemini key travels as a query parameter.

// TransportError reports a network-level failure before any HTTP status was
// received.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return Redact(fmt.Sprintf("%s: request failed: %v", e.Provider, e.Err))
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx response.
type HTTPError struct {
	Provider string
	Status   int
	Body     string // redacted
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.Status, e.Body)
}

// ParseError reports a malformed response body.
type ParseError struct {
	Provider string
	Err      error
	Body     string // redacted
}

func (e *ParseError) Error() string {
	return Redact(fmt.Sprintf("%s: failed parsing response: %v | body=%s", e.Provider, e.Err, e.Body))
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyResponseError reports a well-formed response from which no answer
// text could be extracted.
type EmptyResponseError struct {
	Provider string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("%s: response contained no answer text", e.Provider)
}
