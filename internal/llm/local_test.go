package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAdapterGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"response": "generated text"}`))
	}))
	defer srv.Close()

	a := NewLocalAdapter(srv.URL, "phi3", time.Second)

	text, err := a.Generate(context.Background(), "", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "generated text", text)
}

func TestLocalAdapterHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewLocalAdapter(srv.URL, "phi3", time.Second)

	_, err := a.Generate(context.Background(), "", "prompt")
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestLocalAdapterEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": "  "}`))
	}))
	defer srv.Close()

	a := NewLocalAdapter(srv.URL, "phi3", time.Second)

	_, err := a.Generate(context.Background(), "", "prompt")

	var empty *EmptyResponseError
	assert.ErrorAs(t, err, &empty)
}

func TestLocalAdapterParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	a := NewLocalAdapter(srv.URL, "phi3", time.Second)

	_, err := a.Generate(context.Background(), "", "prompt")

	var parse *ParseError
	assert.ErrorAs(t, err, &parse)
}

func TestLocalAdapterTransportError(t *testing.T) {
	// Nothing listens here.
	a := NewLocalAdapter("http://127.0.0.1:1/api/generate", "phi3", 200*time.Millisecond)

	_, err := a.Generate(context.Background(), "", "prompt")

	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}
