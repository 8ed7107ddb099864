package service_test

import (
	"testing"
	"time"

	"parley/backend/internal/model"
	"parley/backend/internal/store"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// fixedEstimator reports the same cost for any input.
type fixedEstimator int

func (f fixedEstimator) Estimate([]model.ChatMessage, string) int { return int(f) }

func ptr[T any](v T) *T { return &v }

func msg(id string, role model.Role, content string, minute int) model.ChatMessage {
	return model.ChatMessage{ID: id, Role: role, Content: content, CreatedAt: base.Add(time.Duration(minute) * time.Minute)}
}

func newStores(t *testing.T) (*store.ChatStore, *store.ConfigStore) {
	t.Helper()
	cfg := store.NewConfigStore(nil)
	return store.NewChatStore(cfg, nil), cfg
}

func seedSession(t *testing.T, chats *store.ChatStore, messages ...model.ChatMessage) string {
	t.Helper()
	cs := chats.CreateSession("New chat")
	chats.SyncMessages(cs.ID, messages)
	return cs.ID
}
