package interfaces

import (
	"context"

	"parley/backend/internal/llm"
	"parley/backend/internal/model"
	"parley/backend/internal/service"
	"parley/backend/internal/store"
)

// This file defines the contracts the API layer depends on. Handlers take
// these interfaces instead of concrete types so they can be tested against
// mocks or lightweight in-memory implementations.

// SessionStore is the session and message state the REST handlers manage.
type SessionStore interface {
	CreateSession(title string) model.ChatSession
	GetSession(id string) (model.ChatSession, bool)
	ListSessions() []model.ChatSession
	UpdateTitle(id, title string)
	UpdateSettings(id string, patch model.SettingsPatch)
	UpdateInput(id, draft string)
	AssignMask(id string, mask *model.Mask)
	ClearHistory(id string)
	RemoveSession(id string)
	RemoveMessage(id, messageID string)
	PinMessage(id, messageID string)
	EditMessage(id, messageID, content string)
	PageMessages(id string, end, size int) (store.MessagePage, bool)
	Clear()
}

// ConfigStore is the global, user-level configuration.
type ConfigStore interface {
	Get() model.Config
	Update(patch model.ConfigPatch) (model.Config, bool)
	Reset() model.Config
}

// MaskCatalog lists the presets a session can start from.
type MaskCatalog interface {
	List() []model.Mask
	Get(id string) (*model.Mask, error)
}

// ChatOrchestrator runs streamed completions for a session.
type ChatOrchestrator interface {
	Submit(ctx context.Context, sessionID, input string, opts service.SubmitOptions, sink chan<- model.StreamResponse) (*service.Run, error)
	Regenerate(ctx context.Context, sessionID, messageID string, opts service.SubmitOptions, sink chan<- model.StreamResponse) (*service.Run, error)
	Stop(sessionID string) bool
}

// Gateway forwards raw completion requests to the upstream model.
type Gateway interface {
	llm.Completer
}

// ModelService lists the models the upstream offers.
type ModelService interface {
	List(ctx context.Context, apiKey, baseURL string) ([]llm.ModelDescriptor, error)
}

// SearchService answers a query from web snippets.
type SearchService interface {
	Search(ctx context.Context, req service.SearchRequest) (*service.SearchPayload, error)
}
