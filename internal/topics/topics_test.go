package topics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCLISourceEmptyCommandUsesFallback(t *testing.T) {
	s := NewCLISource("", zap.NewNop())

	got := s.Trending(context.Background())

	assert.Equal(t, fallback, got)
}

func TestCLISourceBrokenCommandUsesFallback(t *testing.T) {
	s := NewCLISource("/nonexistent/trending-cli --json", zap.NewNop())

	got := s.Trending(context.Background())

	require.NotEmpty(t, got)
	assert.Equal(t, fallback, got)
}

func TestStaticSource(t *testing.T) {
	s := Static{"topic a", "topic b"}

	assert.Equal(t, []string{"topic a", "topic b"}, s.Trending(context.Background()))
}

func TestStaticSourceEmptyFallsBack(t *testing.T) {
	var s Static

	assert.Equal(t, fallback, s.Trending(context.Background()))
}
