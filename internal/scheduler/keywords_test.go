package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSchedule(t *testing.T) {
	cases := []struct {
		expr   string
		daily  bool
		hourly bool
	}{
		{"daily", true, false},
		{"Daily at 9am", true, false},
		{"hourly", false, true},
		{"Hourly check", false, true},
		{"daily and hourly", true, true},
		{"every monday", false, false},
		{"", false, false},
	}

	for _, tc := range cases {
		daily, hourly := matchSchedule(tc.expr)
		assert.Equal(t, tc.daily, daily, "daily for %q", tc.expr)
		assert.Equal(t, tc.hourly, hourly, "hourly for %q", tc.expr)
	}
}
