package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/backend/internal/model"
	"parley/backend/internal/repository"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, p *Persister) (*ChatStore, *ConfigStore) {
	t.Helper()
	cfg := NewConfigStore(p)
	s := NewChatStore(cfg, p)
	var tick atomic.Int64
	s.now = func() time.Time { return base.Add(time.Duration(tick.Add(1)) * time.Second) }
	return s, cfg
}

func message(id string, role model.Role, at int) model.ChatMessage {
	return model.ChatMessage{ID: id, Role: role, Content: "content " + id, CreatedAt: base.Add(time.Duration(at) * time.Minute)}
}

func ptr[T any](v T) *T { return &v }

func TestChatStore_CreateSession(t *testing.T) {
	s, cfg := newTestStore(t, nil)
	cfg.Update(model.ConfigPatch{DefaultModel: ptr("gpt-4"), Temperature: ptr(0.9)})

	const n = 50
	ids := make(map[string]struct{}, n)
	var last model.ChatSession
	for i := 0; i < n; i++ {
		last = s.CreateSession("New chat")
		ids[last.ID] = struct{}{}
	}
	assert.Len(t, ids, n)

	list := s.ListSessions()
	require.Len(t, list, n)
	assert.Equal(t, last.ID, list[0].ID, "new sessions are prepended")
	assert.Equal(t, "gpt-4", last.Settings.Model)
	assert.Equal(t, 0.9, last.Settings.Temperature)
	assert.Equal(t, 2048, last.Settings.MaxTokens)
	assert.NotNil(t, last.Messages)
}

func TestChatStore_GetSession(t *testing.T) {
	s, _ := newTestStore(t, nil)
	created := s.CreateSession("Pho")

	got, ok := s.GetSession(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)

	_, ok = s.GetSession("missing")
	assert.False(t, ok)
}

func TestChatStore_GettersReturnCopies(t *testing.T) {
	s, _ := newTestStore(t, nil)
	cs := s.CreateSession("Pho")
	s.AppendMessage(cs.ID, message("m1", model.RoleUser, 1))

	got, _ := s.GetSession(cs.ID)
	got.Messages[0].Content = "tampered"
	got.Title = "tampered"

	again, _ := s.GetSession(cs.ID)
	assert.Equal(t, "content m1", again.Messages[0].Content)
	assert.Equal(t, "Pho", again.Title)
}

func TestChatStore_UpdateSettings(t *testing.T) {
	s, _ := newTestStore(t, nil)
	cs := s.CreateSession("Pho")
	defaults := cs.Settings

	s.UpdateSettings(cs.ID, model.SettingsPatch{Temperature: ptr(1.2), TopP: ptr(0.5)})
	s.UpdateSettings(cs.ID, model.SettingsPatch{Temperature: ptr(0.7), Model: ptr("gpt-4o")})

	got, _ := s.GetSession(cs.ID)
	want := defaults
	want.Temperature = 0.7
	want.TopP = 0.5
	want.Model = "gpt-4o"
	assert.Equal(t, want, got.Settings)
}

func TestChatStore_UnknownSessionIsNoOp(t *testing.T) {
	s, _ := newTestStore(t, nil)
	cs := s.CreateSession("Pho")
	before := s.ListSessions()

	var notified atomic.Int32
	s.Subscribe(func(Snapshot) { notified.Add(1) })

	s.UpdateTitle("missing", "x")
	s.UpdateSettings("missing", model.SettingsPatch{MaxTokens: ptr(1)})
	s.UpdateSummary("missing", "summary", []string{"a"})
	s.SyncMessages("missing", nil)
	s.AppendMessage("missing", message("m", model.RoleUser, 0))
	s.RemoveSession("missing")
	s.RemoveMessage(cs.ID, "missing")
	s.PinMessage("missing", "m")
	s.EditMessage("missing", "m", "x")
	s.AssignMask("missing", &model.Mask{ID: "mask"})
	s.ClearHistory("missing")
	_, ok := s.PageMessages("missing", 0, 8)

	assert.False(t, ok)
	assert.Equal(t, before, s.ListSessions())
	assert.Zero(t, notified.Load())
}

func TestChatStore_UpdateTitle(t *testing.T) {
	s, _ := newTestStore(t, nil)
	cs := s.CreateSession("New chat")
	assert.False(t, cs.IsTitleGenerated)

	s.UpdateTitle(cs.ID, "Pho Explained")

	got, _ := s.GetSession(cs.ID)
	assert.Equal(t, "Pho Explained", got.Title)
	assert.True(t, got.IsTitleGenerated)
}

func TestChatStore_MessageOperations(t *testing.T) {
	s, _ := newTestStore(t, nil)
	cs := s.CreateSession("Pho")
	s.SyncMessages(cs.ID, []model.ChatMessage{
		message("m1", model.RoleUser, 1),
		message("m2", model.RoleAssistant, 2),
		message("m3", model.RoleUser, 3),
	})

	s.EditMessage(cs.ID, "m2", "edited")
	s.PinMessage(cs.ID, "m1")
	s.RemoveMessage(cs.ID, "m3")

	got, _ := s.GetSession(cs.ID)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "edited", got.Messages[1].Content)
	assert.True(t, got.Messages[0].IsPinned)

	s.PinMessage(cs.ID, "m1")
	got, _ = s.GetSession(cs.ID)
	assert.False(t, got.Messages[0].IsPinned, "pin toggles")

	s.UpdateInput(cs.ID, "draft")
	got, _ = s.GetSession(cs.ID)
	assert.Equal(t, "draft", got.Input)
}

func TestChatStore_AssignMaskIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t, nil)
	cs := s.CreateSession("Chef")

	first := &model.Mask{ID: "chef", Title: "Chef", Messages: []model.ChatMessage{{ID: "seed", Role: model.RoleSystem, Content: "You are a chef."}}}
	second := &model.Mask{ID: "pirate", Title: "Pirate", Messages: []model.ChatMessage{{ID: "seed", Role: model.RoleSystem, Content: "Arr."}}}

	s.AssignMask(cs.ID, first)
	s.AssignMask(cs.ID, second)

	got, _ := s.GetSession(cs.ID)
	require.NotNil(t, got.Mask)
	assert.Equal(t, "chef", got.Mask.ID)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "You are a chef.", got.Messages[0].Content)
	assert.NotEqual(t, "seed", got.Messages[0].ID, "seed messages get fresh ids")

	first.Title = "changed after assignment"
	got, _ = s.GetSession(cs.ID)
	assert.Equal(t, "Chef", got.Mask.Title)
}

func TestChatStore_UpdateSummary(t *testing.T) {
	s, _ := newTestStore(t, nil)
	cs := s.CreateSession("Pho")

	s.UpdateSummary(cs.ID, "first", []string{"m1", "m2"})
	s.UpdateSummary(cs.ID, "second", []string{"m2", "m3"})

	got, _ := s.GetSession(cs.ID)
	assert.Equal(t, "second", got.ContextSummary)
	assert.Equal(t, []string{"m1", "m2", "m3"}, got.Settings.SummarizedIDs)
	assert.Equal(t, []string{"m1", "m2", "m3"}, got.ContextSummaryAppliesTo)

	s.UpdateSummary(cs.ID, "", nil)
	got, _ = s.GetSession(cs.ID)
	assert.Empty(t, got.ContextSummary)
	assert.Empty(t, got.Settings.SummarizedIDs)
	assert.Empty(t, got.ContextSummaryAppliesTo)
}

func TestChatStore_ClearHistory(t *testing.T) {
	s, _ := newTestStore(t, nil)
	cs := s.CreateSession("Pho")
	pinned := message("m2", model.RoleUser, 2)
	pinned.IsPinned = true
	s.SyncMessages(cs.ID, []model.ChatMessage{
		message("sys", model.RoleSystem, 0),
		message("m1", model.RoleUser, 1),
		pinned,
		message("m3", model.RoleAssistant, 3),
	})
	s.UpdateSummary(cs.ID, "summary", []string{"m1"})

	s.ClearHistory(cs.ID)

	got, _ := s.GetSession(cs.ID)
	ids := []string{}
	for _, m := range got.Messages {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"sys", "m2"}, ids)
	assert.Empty(t, got.ContextSummary)
	assert.Empty(t, got.Settings.SummarizedIDs)
}

func TestChatStore_PageMessages(t *testing.T) {
	s, _ := newTestStore(t, nil)
	cs := s.CreateSession("Pho")
	// Stored out of chronological order on purpose.
	s.SyncMessages(cs.ID, []model.ChatMessage{
		message("m3", model.RoleUser, 3),
		message("m1", model.RoleUser, 1),
		message("m5", model.RoleUser, 5),
		message("m2", model.RoleAssistant, 2),
		message("m4", model.RoleAssistant, 4),
	})

	page, ok := s.PageMessages(cs.ID, 0, 2)
	require.True(t, ok)
	assert.Equal(t, 5, page.Total)
	assert.True(t, page.HasMore)
	assert.Equal(t, []string{"m5", "m4"}, messageIDs(page.Messages))

	page, _ = s.PageMessages(cs.ID, 4, 2)
	assert.Equal(t, []string{"m1"}, messageIDs(page.Messages))
	assert.False(t, page.HasMore)

	page, _ = s.PageMessages(cs.ID, 10, 2)
	assert.Empty(t, page.Messages)
	assert.NotNil(t, page.Messages)
}

func messageIDs(msgs []model.ChatMessage) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.ID)
	}
	return out
}

func TestChatStore_Subscribe(t *testing.T) {
	s, _ := newTestStore(t, nil)

	var mu sync.Mutex
	var snaps []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		snaps = append(snaps, snap)
	})

	cs := s.CreateSession("Pho")
	s.UpdateTitle(cs.ID, "Pho Explained")
	unsubscribe()
	s.UpdateTitle(cs.ID, "ignored")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, snaps, 2)
	assert.Equal(t, "Pho", snaps[0][0].Title)
	assert.Equal(t, "Pho Explained", snaps[1][0].Title)
}

func TestChatStore_Clear(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.CreateSession("a")
	s.CreateSession("b")

	s.Clear()
	assert.Empty(t, s.ListSessions())
}

func TestChatStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryRepository()
	p := NewPersister(kv, time.Hour)

	s, _ := newTestStore(t, p)
	cs := s.CreateSession("Pho")
	s.AssignMask(cs.ID, &model.Mask{
		ID: "chef", Emoji: "🍜", Title: "Chef", CreatedAt: base,
		Messages: []model.ChatMessage{{Role: model.RoleSystem, Content: "You are a chef."}},
	})
	s.AppendMessage(cs.ID, message("m1", model.RoleUser, 1))
	s.AppendMessage(cs.ID, message("m2", model.RoleAssistant, 2))
	s.PinMessage(cs.ID, "m1")
	s.UpdateSettings(cs.ID, model.SettingsPatch{Model: ptr("gpt-4"), MaxTokens: ptr(512)})
	s.UpdateSummary(cs.ID, "They talked about pho.", []string{"m1"})
	s.UpdateInput(cs.ID, "and bun cha?")
	require.NoError(t, p.Flush(ctx))

	reloaded, _ := newTestStore(t, NewPersister(kv, time.Hour))
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, s.ListSessions(), reloaded.ListSessions())
}

func TestChatStore_RemoveSessionFlushesImmediately(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryRepository()
	p := NewPersister(kv, time.Hour)
	s, _ := newTestStore(t, p)

	keep := s.CreateSession("keep")
	drop := s.CreateSession("drop")
	s.RemoveSession(drop.ID)

	reloaded, _ := newTestStore(t, NewPersister(kv, time.Hour))
	require.NoError(t, reloaded.Load(ctx))

	list := reloaded.ListSessions()
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
}

func TestChatStore_LoadMigratesVersion1(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryRepository()
	require.NoError(t, kv.Set(ctx, ChatStoreKey, []byte(`{
		"version": 1,
		"state": {"chats": [{"id": "old", "title": "Legacy", "messages": [], "settings": {"max_tokens": 2048, "temperature": 0.3, "top_p": 1, "frequency_penalty": 0, "presence_penalty": 0}, "created_at": "2023-01-01T00:00:00Z"}]}
	}`)))

	s, _ := newTestStore(t, NewPersister(kv, time.Hour))
	require.NoError(t, s.Load(ctx))

	got, ok := s.GetSession("old")
	require.True(t, ok)
	assert.Equal(t, "Legacy", got.Title)
}

func TestChatStore_LoadRejectsNewerVersion(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryRepository()
	require.NoError(t, kv.Set(ctx, ChatStoreKey, []byte(`{"version": 99, "state": {}}`)))

	s, _ := newTestStore(t, NewPersister(kv, time.Hour))
	assert.Error(t, s.Load(ctx))
}
