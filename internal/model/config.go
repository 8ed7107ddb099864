package model

import "slices"

// SendKey selects which key combination submits the draft.
type SendKey string

const (
	SendKeyEnter      SendKey = "Enter"
	SendKeyCtrlEnter  SendKey = "Ctrl+Enter"
	SendKeyShiftEnter SendKey = "Shift+Enter"
)

// Config is the persisted user-level configuration. Its sampling fields seed
// the settings of every new session.
type Config struct {
	Emoji                       string   `json:"emoji"`
	SendKey                     SendKey  `json:"send_key"`
	SendPreviewBubble           bool     `json:"send_preview_bubble"`
	AutoGenerateTitle           bool     `json:"auto_generate_title"`
	CustomAPIKey                string   `json:"custom_api_key,omitempty"`
	CustomBaseURL               string   `json:"custom_base_url,omitempty"`
	Models                      []string `json:"models"`
	DefaultModel                string   `json:"default_model,omitempty"`
	MaxTokens                   int      `json:"max_tokens"`
	Temperature                 float64  `json:"temperature"`
	TopP                        float64  `json:"top_p"`
	FrequencyPenalty            float64  `json:"frequency_penalty"`
	PresencePenalty             float64  `json:"presence_penalty"`
	PaginationSize              int      `json:"pagination_size"`
	MessageCompressionThreshold int      `json:"message_compression_threshold"`
}

func DefaultConfig() Config {
	return Config{
		Emoji:                       "😁",
		SendKey:                     SendKeyEnter,
		SendPreviewBubble:           true,
		AutoGenerateTitle:           true,
		Models:                      []string{},
		MaxTokens:                   2048,
		Temperature:                 0.3,
		TopP:                        1,
		FrequencyPenalty:            0,
		PresencePenalty:             0,
		PaginationSize:              8,
		MessageCompressionThreshold: 2048,
	}
}

// SessionSettings returns the settings a freshly created session starts with.
func (c Config) SessionSettings() ChatSettings {
	return ChatSettings{
		Model:            c.DefaultModel,
		MaxTokens:        c.MaxTokens,
		Temperature:      c.Temperature,
		TopP:             c.TopP,
		FrequencyPenalty: c.FrequencyPenalty,
		PresencePenalty:  c.PresencePenalty,
	}
}

// ConfigPatch is a partial Config update. Nil fields are left untouched.
type ConfigPatch struct {
	Emoji                       *string   `json:"emoji,omitempty"`
	SendKey                     *SendKey  `json:"send_key,omitempty" validate:"omitempty,oneof=Enter Ctrl+Enter Shift+Enter"`
	SendPreviewBubble           *bool     `json:"send_preview_bubble,omitempty"`
	AutoGenerateTitle           *bool     `json:"auto_generate_title,omitempty"`
	CustomAPIKey                *string   `json:"custom_api_key,omitempty"`
	CustomBaseURL               *string   `json:"custom_base_url,omitempty" validate:"omitempty,url"`
	Models                      *[]string `json:"models,omitempty"`
	DefaultModel                *string   `json:"default_model,omitempty"`
	MaxTokens                   *int      `json:"max_tokens,omitempty" validate:"omitempty,gte=1,lte=128000"`
	Temperature                 *float64  `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	TopP                        *float64  `json:"top_p,omitempty" validate:"omitempty,gt=0,lte=1"`
	FrequencyPenalty            *float64  `json:"frequency_penalty,omitempty" validate:"omitempty,gte=-2,lte=2"`
	PresencePenalty             *float64  `json:"presence_penalty,omitempty" validate:"omitempty,gte=-2,lte=2"`
	PaginationSize              *int      `json:"pagination_size,omitempty" validate:"omitempty,gte=1,lte=200"`
	MessageCompressionThreshold *int      `json:"message_compression_threshold,omitempty" validate:"omitempty,gte=1"`
}

// Apply merges p over c and reports whether any field actually changed.
func (c Config) Apply(p ConfigPatch) (Config, bool) {
	out := c
	out.Models = slices.Clone(c.Models)
	changed := false

	set := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}

	set(&out.Emoji, p.Emoji)
	if p.SendKey != nil && out.SendKey != *p.SendKey {
		out.SendKey = *p.SendKey
		changed = true
	}
	setBool(&out.SendPreviewBubble, p.SendPreviewBubble)
	setBool(&out.AutoGenerateTitle, p.AutoGenerateTitle)
	set(&out.CustomAPIKey, p.CustomAPIKey)
	set(&out.CustomBaseURL, p.CustomBaseURL)
	if p.Models != nil && !slices.Equal(out.Models, *p.Models) {
		out.Models = slices.Clone(*p.Models)
		changed = true
	}
	set(&out.DefaultModel, p.DefaultModel)
	setInt(&out.MaxTokens, p.MaxTokens)
	setFloat(&out.Temperature, p.Temperature)
	setFloat(&out.TopP, p.TopP)
	setFloat(&out.FrequencyPenalty, p.FrequencyPenalty)
	setFloat(&out.PresencePenalty, p.PresencePenalty)
	setInt(&out.PaginationSize, p.PaginationSize)
	setInt(&out.MessageCompressionThreshold, p.MessageCompressionThreshold)

	if !changed {
		return c, false
	}
	return out, true
}
