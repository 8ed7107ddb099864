package model

import (
	"slices"
	"sort"
	"time"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Valid reports whether r is one of the three roles the completion endpoint accepts.
func (r Role) Valid() bool {
	return r == RoleSystem || r == RoleAssistant || r == RoleUser
}

// ChatMessage stores a single message in a session.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsPinned  bool      `json:"is_pinned,omitempty"`
}

// ChatSettings holds the per-session generation parameters.
type ChatSettings struct {
	Model            string   `json:"model,omitempty"`
	MaxTokens        int      `json:"max_tokens"`
	Temperature      float64  `json:"temperature"`
	TopP             float64  `json:"top_p"`
	FrequencyPenalty float64  `json:"frequency_penalty"`
	PresencePenalty  float64  `json:"presence_penalty"`
	SummarizedIDs    []string `json:"summarized_ids,omitempty"` // Append-only until history is cleared.
}

// SettingsPatch is a partial ChatSettings update. Nil fields are left untouched.
// Range checks live in the validate tags; the store applies patches as given.
type SettingsPatch struct {
	Model            *string  `json:"model,omitempty"`
	MaxTokens        *int     `json:"max_tokens,omitempty" validate:"omitempty,gte=1,lte=128000"`
	Temperature      *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	TopP             *float64 `json:"top_p,omitempty" validate:"omitempty,gt=0,lte=1"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty" validate:"omitempty,gte=-2,lte=2"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty" validate:"omitempty,gte=-2,lte=2"`
}

// Apply shallow-merges p over s and returns the result.
func (s ChatSettings) Apply(p SettingsPatch) ChatSettings {
	if p.Model != nil {
		s.Model = *p.Model
	}
	if p.MaxTokens != nil {
		s.MaxTokens = *p.MaxTokens
	}
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
	}
	if p.TopP != nil {
		s.TopP = *p.TopP
	}
	if p.FrequencyPenalty != nil {
		s.FrequencyPenalty = *p.FrequencyPenalty
	}
	if p.PresencePenalty != nil {
		s.PresencePenalty = *p.PresencePenalty
	}
	s.SummarizedIDs = slices.Clone(s.SummarizedIDs)
	return s
}

// Mask is a named preset of seed messages used to initialize a session.
type Mask struct {
	ID        string        `json:"id" toml:"id"`
	Emoji     string        `json:"emoji" toml:"emoji"`
	Title     string        `json:"title" toml:"title"`
	Messages  []ChatMessage `json:"messages" toml:"messages"`
	CreatedAt time.Time     `json:"created_at" toml:"created_at"`
	BuiltIn   bool          `json:"built_in" toml:"built_in"`
}

// Clone returns a deep copy of m.
func (m *Mask) Clone() *Mask {
	if m == nil {
		return nil
	}
	c := *m
	c.Messages = slices.Clone(m.Messages)
	return &c
}

// ChatSession is one independent chat thread with its own messages, settings
// and summary state.
type ChatSession struct {
	ID                      string        `json:"id"`
	Title                   string        `json:"title"`
	Messages                []ChatMessage `json:"messages"`
	Settings                ChatSettings  `json:"settings"`
	Input                   string        `json:"input,omitempty"` // Draft buffer.
	Mask                    *Mask         `json:"mask,omitempty"`
	IsTitleGenerated        bool          `json:"is_title_generated,omitempty"`
	ContextSummary          string        `json:"context_summary,omitempty"`
	ContextSummaryAppliesTo []string      `json:"context_summary_applies_to,omitempty"`
	CreatedAt               time.Time     `json:"created_at"`
}

// Clone returns a deep copy of s so callers never share slices with the store.
func (s ChatSession) Clone() ChatSession {
	s.Messages = slices.Clone(s.Messages)
	if s.Messages == nil {
		s.Messages = []ChatMessage{}
	}
	s.Settings.SummarizedIDs = slices.Clone(s.Settings.SummarizedIDs)
	s.ContextSummaryAppliesTo = slices.Clone(s.ContextSummaryAppliesTo)
	s.Mask = s.Mask.Clone()
	return s
}

// FindMessage returns the index of the message with the given id, or -1.
func (s *ChatSession) FindMessage(messageID string) int {
	return slices.IndexFunc(s.Messages, func(m ChatMessage) bool { return m.ID == messageID })
}

// Chronological returns a copy of messages sorted by creation time. Messages
// created at the same instant keep their relative order.
func Chronological(messages []ChatMessage) []ChatMessage {
	out := slices.Clone(messages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Unsummarized returns, in chronological order, the messages of s that have not
// been folded into the context summary.
func (s *ChatSession) Unsummarized() []ChatMessage {
	skip := make(map[string]struct{}, len(s.Settings.SummarizedIDs))
	for _, id := range s.Settings.SummarizedIDs {
		skip[id] = struct{}{}
	}
	var out []ChatMessage
	for _, m := range Chronological(s.Messages) {
		if _, ok := skip[m.ID]; ok || !m.Role.Valid() {
			continue
		}
		out = append(out, m)
	}
	return out
}

// SearchResult is one web snippet used as grounding context.
type SearchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
}

// StreamResponse is the structure for a single chunk in a streaming response.
type StreamResponse struct {
	RunID     string `json:"run_id,omitempty"`
	MessageID string `json:"message_id,omitempty"`
	Content   string `json:"content"`
	Done      bool   `json:"done"`
	State     string `json:"state,omitempty"`
	Error     string `json:"error,omitempty"`
}
