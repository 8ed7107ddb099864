package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"parley/backend/internal/masks"
	"parley/backend/internal/model"
)

const chatStoreVersion = 2

type chatState struct {
	Sessions []model.ChatSession `json:"sessions"`
}

var chatMigrations = map[int]Migration{
	// Version 1 kept the session list under "chats".
	1: func(state json.RawMessage) (json.RawMessage, error) {
		var v1 struct {
			Chats []model.ChatSession `json:"chats"`
		}
		if err := json.Unmarshal(state, &v1); err != nil {
			return nil, err
		}
		return json.Marshal(chatState{Sessions: v1.Chats})
	},
}

// Snapshot is the session list handed to subscribers, newest session first.
type Snapshot []model.ChatSession

// MessagePage is one pagination window over a session's messages, newest first.
type MessagePage struct {
	Messages []model.ChatMessage `json:"messages"`
	Total    int                 `json:"total"`
	HasMore  bool                `json:"has_more"`
}

// ChatStore owns every chat session. Mutations replace whole sessions under
// the lock and reads hand out deep copies, so callers never alias store state.
// A mutation that names an unknown session is a silent no-op.
type ChatStore struct {
	config    *ConfigStore
	persister *Persister
	now       func() time.Time

	mu       sync.RWMutex
	sessions []model.ChatSession

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewChatStore creates an empty store. persister may be nil for a purely
// in-memory store.
func NewChatStore(config *ConfigStore, persister *Persister) *ChatStore {
	return &ChatStore{
		config:    config,
		persister: persister,
		now:       time.Now,
		subs:      make(map[int]func(Snapshot)),
	}
}

// Load replaces the in-memory sessions with the persisted ones, if any.
func (s *ChatStore) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	var state chatState
	found, err := s.persister.Load(ctx, ChatStoreKey, chatStoreVersion, chatMigrations, &state)
	if err != nil || !found {
		return err
	}
	s.mu.Lock()
	s.sessions = state.Sessions
	s.mu.Unlock()
	slog.Info("Loaded chat sessions", "count", len(state.Sessions))
	return nil
}

// Subscribe registers fn to run after every committed mutation. The returned
// func removes the subscription.
func (s *ChatStore) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *ChatStore) CreateSession(title string) model.ChatSession {
	settings := model.DefaultConfig().SessionSettings()
	if s.config != nil {
		settings = s.config.Get().SessionSettings()
	}
	session := model.ChatSession{
		ID:        uuid.NewString(),
		Title:     title,
		Messages:  []model.ChatMessage{},
		Settings:  settings,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.sessions = append([]model.ChatSession{session}, s.sessions...)
	s.mu.Unlock()

	s.commit(false)
	return session.Clone()
}

func (s *ChatStore) GetSession(id string) (model.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return s.sessions[i].Clone(), true
		}
	}
	return model.ChatSession{}, false
}

func (s *ChatStore) ListSessions() []model.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *ChatStore) UpdateTitle(id, title string) {
	s.update(id, func(cs *model.ChatSession) bool {
		cs.Title = title
		cs.IsTitleGenerated = true
		return true
	})
}

// UpdateSettings merges patch over the session's settings. Values are stored
// as given; range checks belong to the caller.
func (s *ChatStore) UpdateSettings(id string, patch model.SettingsPatch) {
	s.update(id, func(cs *model.ChatSession) bool {
		cs.Settings = cs.Settings.Apply(patch)
		return true
	})
}

// UpdateSummary replaces the context summary and appends appliesTo to the
// summarized ids. An empty text clears the summary and both id sets.
func (s *ChatStore) UpdateSummary(id, text string, appliesTo []string) {
	s.update(id, func(cs *model.ChatSession) bool {
		if text == "" {
			cs.ContextSummary = ""
			cs.ContextSummaryAppliesTo = nil
			cs.Settings.SummarizedIDs = nil
			return true
		}
		cs.ContextSummary = text
		for _, mid := range appliesTo {
			if !slices.Contains(cs.Settings.SummarizedIDs, mid) {
				cs.Settings.SummarizedIDs = append(cs.Settings.SummarizedIDs, mid)
			}
			if !slices.Contains(cs.ContextSummaryAppliesTo, mid) {
				cs.ContextSummaryAppliesTo = append(cs.ContextSummaryAppliesTo, mid)
			}
		}
		return true
	})
}

// SyncMessages replaces the whole message list of a session.
func (s *ChatStore) SyncMessages(id string, messages []model.ChatMessage) {
	msgs := slices.Clone(messages)
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	s.update(id, func(cs *model.ChatSession) bool {
		cs.Messages = msgs
		return true
	})
}

func (s *ChatStore) AppendMessage(id string, msg model.ChatMessage) {
	s.update(id, func(cs *model.ChatSession) bool {
		cs.Messages = append(cs.Messages, msg)
		return true
	})
}

func (s *ChatStore) UpdateInput(id, draft string) {
	s.update(id, func(cs *model.ChatSession) bool {
		if cs.Input == draft {
			return false
		}
		cs.Input = draft
		return true
	})
}

// RemoveSession deletes a session and persists the removal immediately.
func (s *ChatStore) RemoveSession(id string) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.sessions, func(cs model.ChatSession) bool { return cs.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.sessions = slices.Delete(slices.Clone(s.sessions), idx, idx+1)
	s.mu.Unlock()

	s.commit(true)
}

func (s *ChatStore) RemoveMessage(id, messageID string) {
	s.update(id, func(cs *model.ChatSession) bool {
		idx := cs.FindMessage(messageID)
		if idx < 0 {
			return false
		}
		cs.Messages = slices.Delete(cs.Messages, idx, idx+1)
		return true
	})
}

// PinMessage toggles the pinned flag of a message.
func (s *ChatStore) PinMessage(id, messageID string) {
	s.update(id, func(cs *model.ChatSession) bool {
		idx := cs.FindMessage(messageID)
		if idx < 0 {
			return false
		}
		cs.Messages[idx].IsPinned = !cs.Messages[idx].IsPinned
		return true
	})
}

func (s *ChatStore) EditMessage(id, messageID, content string) {
	s.update(id, func(cs *model.ChatSession) bool {
		idx := cs.FindMessage(messageID)
		if idx < 0 {
			return false
		}
		cs.Messages[idx].Content = content
		return true
	})
}

// AssignMask seeds the session from mask. Only the first assignment counts.
func (s *ChatStore) AssignMask(id string, mask *model.Mask) {
	if mask == nil {
		return
	}
	seeded := masks.Instantiate(mask, s.now())
	s.update(id, func(cs *model.ChatSession) bool {
		if cs.Mask != nil {
			return false
		}
		cs.Mask = mask.Clone()
		cs.Messages = seeded
		return true
	})
}

// ClearHistory drops every message except system and pinned ones, and
// forgets the context summary.
func (s *ChatStore) ClearHistory(id string) {
	s.update(id, func(cs *model.ChatSession) bool {
		kept := make([]model.ChatMessage, 0, len(cs.Messages))
		for _, m := range cs.Messages {
			if m.Role == model.RoleSystem || m.IsPinned {
				kept = append(kept, m)
			}
		}
		cs.Messages = kept
		cs.ContextSummary = ""
		cs.ContextSummaryAppliesTo = nil
		cs.Settings.SummarizedIDs = nil
		return true
	})
}

// PageMessages returns up to size messages starting end messages back from
// the newest one.
func (s *ChatStore) PageMessages(id string, end, size int) (MessagePage, bool) {
	session, ok := s.GetSession(id)
	if !ok {
		return MessagePage{}, false
	}

	var visible []model.ChatMessage
	for _, m := range session.Messages {
		if m.Role.Valid() {
			visible = append(visible, m)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})

	end = max(end, 0)
	start := min(end, len(visible))
	stop := min(start+max(size, 0), len(visible))
	page := slices.Clone(visible[start:stop])
	if page == nil {
		page = []model.ChatMessage{}
	}
	return MessagePage{
		Messages: page,
		Total:    len(visible),
		HasMore:  stop < len(visible),
	}, true
}

// Clear drops every session.
func (s *ChatStore) Clear() {
	s.mu.Lock()
	s.sessions = nil
	s.mu.Unlock()
	s.commit(true)
}

// update applies fn to a copy of the session and swaps it in when fn reports
// a change.
func (s *ChatStore) update(id string, fn func(cs *model.ChatSession) bool) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.sessions, func(cs model.ChatSession) bool { return cs.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	next := s.sessions[idx].Clone()
	if !fn(&next) {
		s.mu.Unlock()
		return
	}
	sessions := slices.Clone(s.sessions)
	sessions[idx] = next
	s.sessions = sessions
	s.mu.Unlock()

	s.commit(false)
}

func (s *ChatStore) commit(immediate bool) {
	if s.persister != nil {
		if immediate {
			if err := s.persister.FlushNow(context.Background(), ChatStoreKey, chatStoreVersion, s.state); err != nil {
				slog.Warn("Failed to persist chat sessions", "error", err)
			}
		} else {
			s.persister.Schedule(ChatStoreKey, chatStoreVersion, s.state)
		}
	}

	s.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()
	if len(subs) == 0 {
		return
	}

	snap := s.ListSessions()
	for _, fn := range subs {
		fn(snap)
	}
}

func (s *ChatStore) state() any {
	return chatState{Sessions: s.ListSessions()}
}

func (s *ChatStore) snapshotLocked() Snapshot {
	out := make(Snapshot, 0, len(s.sessions))
	for i := range s.sessions {
		out = append(out, s.sessions[i].Clone())
	}
	return out
}
