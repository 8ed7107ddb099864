package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"parley/backend/internal/llm"
	"parley/backend/internal/model"
)

// minTitleMessages is the number of user and assistant messages a session
// needs before it gets a generated title.
const minTitleMessages = 4

type TitleGenerator struct {
	store     SessionStore
	config    ConfigSource
	completer llm.Completer
}

func NewTitleGenerator(store SessionStore, config ConfigSource, completer llm.Completer) *TitleGenerator {
	return &TitleGenerator{store: store, config: config, completer: completer}
}

// Generate names the session after its conversation, at most once.
func (g *TitleGenerator) Generate(ctx context.Context, sessionID string) (bool, error) {
	cfg := g.config.Get()
	if !cfg.AutoGenerateTitle {
		return false, nil
	}
	session, ok := g.store.GetSession(sessionID)
	if !ok || session.IsTitleGenerated {
		return false, nil
	}

	var messages []llm.Message
	for _, m := range model.Chronological(session.Messages) {
		if m.Role == model.RoleUser || m.Role == model.RoleAssistant {
			messages = append(messages, llm.Message{Role: string(m.Role), Content: m.Content})
		}
	}
	if len(messages) < minTitleMessages {
		return false, nil
	}
	messages = append(messages, llm.Message{Role: string(model.RoleUser), Content: titleInstruction})

	resp, err := g.completer.Complete(ctx, &llm.CompletionRequest{
		Messages: messages,
		Model:    session.Settings.Model,
		APIKey:   cfg.CustomAPIKey,
		BaseURL:  cfg.CustomBaseURL,
	})
	if err != nil {
		return false, fmt.Errorf("title completion failed: %w", err)
	}

	title := cleanTitle(resp)
	if title == "" {
		slog.Debug("Generated title was empty after cleaning", "session_id", sessionID)
		return false, nil
	}
	g.store.UpdateTitle(sessionID, title)
	slog.Info("Generated session title", "session_id", sessionID, "title", title)
	return true, nil
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`“”‘’")
	s = strings.TrimRight(s, ".!?")
	return strings.TrimSpace(s)
}
