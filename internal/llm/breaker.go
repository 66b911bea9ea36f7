package llm

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerAdapter fails external calls fast once a provider keeps erroring.
// It never retries: one Generate is still at most one HTTP exchange, the
// breaker only short-circuits calls that would hit a known-down backend.
type BreakerAdapter struct {
	next Adapter
	cb   *gobreaker.CircuitBreaker
}

func WithBreaker(next Adapter) *BreakerAdapter {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "llm-" + next.Name(),
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
	return &BreakerAdapter{next: next, cb: cb}
}

func (b *BreakerAdapter) Name() string { return b.next.Name() }

func (b *BreakerAdapter) Generate(ctx context.Context, key, prompt string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Generate(ctx, key, prompt)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
