// Package topics is the content-source collaborator: it supplies short
// topic strings for draft generation. It must never fail — on any
// underlying error the fixed fallback list keeps the scheduler drafting.
package topics

import (
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

const maxTopics = 5

// Fallback keeps drafting alive when the CLI is missing or broken.
var fallback = []string{
	"AI agents in desktop apps",
	"Local LLM + privacy-first workflows",
	"Browser automation for daily ops",
}

// Source lists trending topics for draft generation.
type Source interface {
	Trending(ctx context.Context) []string
}

// CLISource shells out to a configured command and reads one topic per
// output line. An empty command means fallback-only operation.
type CLISource struct {
	command string
	logger  *zap.Logger
}

func NewCLISource(command string, logger *zap.Logger) *CLISource {
	return &CLISource{command: command, logger: logger.Named("topics")}
}

// Trending returns up to 5 topics. Never returns an error and never
// returns an empty list.
func (s *CLISource) Trending(ctx context.Context) []string {
	if s.command == "" {
		return fallback
	}

	parts := strings.Fields(s.command)
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	out, err := cmd.Output()
	if err != nil {
		s.logger.Warn("topic source failed, using fallback", zap.Error(err))
		return fallback
	}

	topics := make([]string, 0, maxTopics)
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		topics = append(topics, line)
		if len(topics) == maxTopics {
			break
		}
	}

	if len(topics) == 0 {
		return fallback
	}
	return topics
}

// Static always returns the same list; used in tests and as a no-CLI
// deployment mode.
type Static []string

func (s Static) Trending(context.Context) []string {
	if len(s) == 0 {
		return fallback
	}
	return s
}
