package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"parley/backend/internal/llm"
	"parley/backend/internal/model"
	"parley/backend/internal/tokenizer"
)

// keepRecent is how many of the newest messages stay out of summarizedIds so
// the next request still carries the immediate exchange verbatim.
const keepRecent = 2

// ContextCompressor folds old messages into the session's rolling summary once
// their estimated size crosses the configured threshold.
type ContextCompressor struct {
	store     SessionStore
	config    ConfigSource
	completer llm.Completer
	estimator tokenizer.Estimator
}

func NewContextCompressor(store SessionStore, config ConfigSource, completer llm.Completer, estimator tokenizer.Estimator) *ContextCompressor {
	return &ContextCompressor{store: store, config: config, completer: completer, estimator: estimator}
}

// Compress summarizes the session when needed and reports whether it did.
// Messages are never removed; only the summarized id set grows.
func (c *ContextCompressor) Compress(ctx context.Context, sessionID string) (bool, error) {
	session, ok := c.store.GetSession(sessionID)
	if !ok {
		return false, nil
	}
	cfg := c.config.Get()

	// Nothing could be marked summarized while only the kept tail is pending.
	pending := session.Unsummarized()
	if len(pending) <= keepRecent {
		return false, nil
	}
	cost := c.estimator.Estimate(pending, session.Settings.Model)
	if cost < cfg.MessageCompressionThreshold {
		slog.Debug("Context below compression threshold", "session_id", sessionID, "tokens", cost, "threshold", cfg.MessageCompressionThreshold)
		return false, nil
	}

	messages := make([]llm.Message, 0, len(pending)+2)
	if session.ContextSummary != "" {
		messages = append(messages, llm.Message{Role: string(model.RoleAssistant), Content: session.ContextSummary})
	}
	for _, m := range pending {
		messages = append(messages, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: string(model.RoleUser), Content: summaryInstruction})

	text, err := c.completer.Complete(ctx, &llm.CompletionRequest{
		Messages: messages,
		Model:    session.Settings.Model,
		APIKey:   cfg.CustomAPIKey,
		BaseURL:  cfg.CustomBaseURL,
	})
	if err != nil {
		return false, fmt.Errorf("summary completion failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}

	applied := make([]string, 0, len(pending))
	for _, m := range pending[:len(pending)-keepRecent] {
		applied = append(applied, m.ID)
	}
	c.store.UpdateSummary(sessionID, text, applied)

	slog.Info("Compressed conversation context", "session_id", sessionID, "tokens", cost, "summarized", len(applied))
	return true, nil
}
