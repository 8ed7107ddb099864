package llm

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	app_errors "parley/backend/internal/errors"
)

// OpenAIProvider reaches an OpenAI-compatible upstream through langchaingo.
// Requests may override the key and base URL per call.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
}

func NewOpenAIProvider(apiKey, baseURL string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: apiKey, baseURL: baseURL}
}

func (p *OpenAIProvider) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	client, err := p.client(req)
	if err != nil {
		return "", err
	}
	resp, err := client.GenerateContent(ctx, messageContents(req.Messages), callOptions(req)...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", app_errors.ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: upstream returned no choices", app_errors.ErrUpstream)
	}
	return resp.Choices[0].Content, nil
}

func (p *OpenAIProvider) Stream(ctx context.Context, req *CompletionRequest) (Stream, error) {
	client, err := p.client(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &chanStream{
		chunks: make(chan string),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	opts := append(callOptions(req), llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
		if len(chunk) == 0 {
			return nil
		}
		select {
		case s.chunks <- string(chunk):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}))

	go func() {
		_, err := client.GenerateContent(ctx, messageContents(req.Messages), opts...)
		switch {
		case ctx.Err() != nil:
			// Closed or cancelled by the caller: the stream just ends.
			err = nil
		case err != nil:
			err = fmt.Errorf("%w: %w", app_errors.ErrUpstream, err)
		}
		s.finish(err)
	}()
	return s, nil
}

func (p *OpenAIProvider) client(req *CompletionRequest) (*openai.LLM, error) {
	key := p.apiKey
	if req.APIKey != "" {
		key = req.APIKey
	}
	baseURL := p.baseURL
	if req.BaseURL != "" {
		baseURL = req.BaseURL
	}

	opts := []openai.Option{openai.WithToken(key)}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	if req.Model != "" {
		opts = append(opts, openai.WithModel(req.Model))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create upstream client: %v", app_errors.ErrUpstream, err)
	}
	return client, nil
}

func messageContents(messages []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := llms.ChatMessageTypeHuman
		switch m.Role {
		case "system":
			role = llms.ChatMessageTypeSystem
		case "assistant":
			role = llms.ChatMessageTypeAI
		}
		out = append(out, llms.TextParts(role, m.Content))
	}
	return out
}

func callOptions(req *CompletionRequest) []llms.CallOption {
	var opts []llms.CallOption
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature != nil {
		opts = append(opts, llms.WithTemperature(*req.Temperature))
	}
	if req.TopP != nil {
		opts = append(opts, llms.WithTopP(*req.TopP))
	}
	if req.FrequencyPenalty != nil {
		opts = append(opts, llms.WithFrequencyPenalty(*req.FrequencyPenalty))
	}
	if req.PresencePenalty != nil {
		opts = append(opts, llms.WithPresencePenalty(*req.PresencePenalty))
	}
	return opts
}

// chanStream adapts langchaingo's streaming callback to the pull-based Stream.
type chanStream struct {
	chunks chan string
	done   chan struct{}
	cancel context.CancelFunc
	err    error
	once   sync.Once
}

func (s *chanStream) finish(err error) {
	s.err = err
	close(s.done)
}

func (s *chanStream) Recv() (string, error) {
	select {
	case chunk := <-s.chunks:
		return chunk, nil
	case <-s.done:
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
}

func (s *chanStream) Close() error {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
	return nil
}
