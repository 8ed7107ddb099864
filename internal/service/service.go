package service

import (
	"parley/backend/internal/model"
)

// SessionStore is the part of the chat store the services read and mutate.
type SessionStore interface {
	GetSession(id string) (model.ChatSession, bool)
	SyncMessages(id string, messages []model.ChatMessage)
	UpdateTitle(id, title string)
	UpdateSummary(id, text string, appliesTo []string)
	UpdateInput(id, draft string)
}

// ConfigSource supplies the current user-level configuration.
type ConfigSource interface {
	Get() model.Config
}
