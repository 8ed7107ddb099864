package llm

import (
	"context"
)

// Message is the role+content pair sent to the completion endpoint.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=system assistant user"`
	Content string `json:"content"`
}

// CompletionRequest is the body of POST /api/chat. Optional sampling
// parameters are pointers so an explicit zero survives the round trip.
type CompletionRequest struct {
	Messages         []Message `json:"messages" validate:"required,min=1,dive"`
	Model            string    `json:"model,omitempty"`
	MaxTokens        int       `json:"max_tokens,omitempty" validate:"omitempty,gte=1"`
	Temperature      *float64  `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	TopP             *float64  `json:"top_p,omitempty" validate:"omitempty,gt=0,lte=1"`
	FrequencyPenalty *float64  `json:"frequency_penalty,omitempty" validate:"omitempty,gte=-2,lte=2"`
	PresencePenalty  *float64  `json:"presence_penalty,omitempty" validate:"omitempty,gte=-2,lte=2"`
	Stream           bool      `json:"stream"`
	Language         string    `json:"language,omitempty"`

	// Caller-supplied credential and endpoint overrides. They travel as the
	// X-Custom-Api-Key and X-Custom-Base-Url headers, never in the body.
	APIKey  string `json:"-"`
	BaseURL string `json:"-"`
}

// Stream is an ordered, cancellable sequence of text chunks. Recv returns
// io.EOF after the last chunk. Close releases the transport and is safe to
// call more than once.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Completer submits completion requests, either returning the whole text or
// an incremental Stream.
type Completer interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
	Stream(ctx context.Context, req *CompletionRequest) (Stream, error)
}

// Float returns a pointer to v, for the optional sampling fields.
func Float(v float64) *float64 { return &v }
