package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/tmc/langchaingo/prompts"

	app_errors "parley/backend/internal/errors"
	"parley/backend/internal/llm"
)

const defaultLanguage = "en"

// GatewayService fronts the upstream model. Every request it forwards is
// prefixed with the assistant persona rendered for the requested model and
// language. It satisfies llm.Completer, so the orchestrator can run against
// it in-process.
type GatewayService struct {
	upstream llm.Completer
	persona  prompts.PromptTemplate
}

func NewGatewayService(upstream llm.Completer, systemPrompt string) *GatewayService {
	return &GatewayService{
		upstream: upstream,
		persona:  prompts.NewPromptTemplate(systemPrompt, []string{"model", "language"}),
	}
}

func (s *GatewayService) Complete(ctx context.Context, req *llm.CompletionRequest) (string, error) {
	r, err := s.withPersona(req)
	if err != nil {
		return "", err
	}
	return s.upstream.Complete(ctx, r)
}

func (s *GatewayService) Stream(ctx context.Context, req *llm.CompletionRequest) (llm.Stream, error) {
	r, err := s.withPersona(req)
	if err != nil {
		return nil, err
	}
	return s.upstream.Stream(ctx, r)
}

func (s *GatewayService) withPersona(req *llm.CompletionRequest) (*llm.CompletionRequest, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: at least one message is required", app_errors.ErrValidation)
	}

	language := req.Language
	if language == "" {
		language = defaultLanguage
	}
	system, err := s.persona.Format(map[string]any{
		"model":    req.Model,
		"language": language,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: could not render system prompt: %v", app_errors.ErrInternal, err)
	}

	r := *req
	r.Messages = slices.Insert(slices.Clone(req.Messages), 0, llm.Message{Role: "system", Content: system})
	return &r, nil
}
