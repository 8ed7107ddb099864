// Package tokenizer approximates the token cost of a message sequence for
// budgeting decisions. Counts are estimates, never provider-exact.
package tokenizer

import (
	"log/slog"

	"github.com/pkoukk/tiktoken-go"

	"parley/backend/internal/model"
)

// DefaultModel is the model family assumed when no hint is given.
const DefaultModel = "gpt-3.5-turbo"

const (
	// messageOverhead covers the role/separator framing around each message.
	messageOverhead = 3
	// replyPriming covers the tokens that prime the assistant reply.
	replyPriming = 3
)

// Estimator returns an integer cost estimate for messages under modelHint.
// Estimates are deterministic and never decrease when a message is appended.
type Estimator interface {
	Estimate(messages []model.ChatMessage, modelHint string) int
}

// New returns a tiktoken-backed estimator reading BPE ranks from dir when the
// fallback encoding loads from it, and the heuristic estimator otherwise.
func New(dir string) Estimator {
	if dir == "" {
		return Heuristic{}
	}
	est := NewTiktoken(dir)
	if _, err := tiktoken.GetEncoding(fallbackEncoding); err != nil {
		slog.Warn("Token encodings unavailable, using heuristic estimator", "dir", dir, "error", err)
		return Heuristic{}
	}
	return est
}

// Heuristic assumes roughly four bytes per token.
type Heuristic struct{}

func (Heuristic) Estimate(messages []model.ChatMessage, _ string) int {
	if len(messages) == 0 {
		return 0
	}
	total := replyPriming
	for _, m := range messages {
		total += messageOverhead + approxTokens(string(m.Role)) + approxTokens(m.Content)
	}
	return total
}

func approxTokens(s string) int {
	return (len(s) + 3) / 4
}
