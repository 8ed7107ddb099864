package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	app_errors "parley/backend/internal/errors"
	"parley/backend/internal/llm"
	"parley/backend/internal/model"
	"parley/backend/internal/search"
)

const (
	maxSearchResults = 8

	searchTemperature = 0.7
	searchMaxTokens   = 1024

	answerSeparator   = "\n\n__LLM_RESPONSE__\n"
	questionSeparator = "\n\n__RELATED_QUESTIONS__\n"
)

var questionNumber = regexp.MustCompile(`^\d+\.\s`)

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query    string `json:"query"`
	Language string `json:"language"`

	APIKey  string `json:"-"`
	BaseURL string `json:"-"`
}

// SearchPayload is the three-part answer of the search pipeline.
type SearchPayload struct {
	Sources          []model.SearchResult `json:"sources"`
	Answer           string               `json:"answer"`
	RelatedQuestions []string             `json:"related_questions"`
}

// Encode renders the payload in its wire framing: sources JSON, the answer
// separator, the answer, the question separator and the questions JSON.
func (p SearchPayload) Encode() (string, error) {
	sources := p.Sources
	if sources == nil {
		sources = []model.SearchResult{}
	}
	questions := p.RelatedQuestions
	if questions == nil {
		questions = []string{}
	}
	s, err := json.Marshal(sources)
	if err != nil {
		return "", err
	}
	q, err := json.Marshal(questions)
	if err != nil {
		return "", err
	}
	return string(s) + answerSeparator + p.Answer + questionSeparator + string(q), nil
}

// ParsePayload splits an encoded payload back into its parts.
func ParsePayload(raw string) (SearchPayload, error) {
	sources, rest, ok := strings.Cut(raw, answerSeparator)
	if !ok {
		return SearchPayload{}, fmt.Errorf("%w: answer separator missing", app_errors.ErrValidation)
	}
	idx := strings.LastIndex(rest, questionSeparator)
	if idx < 0 {
		return SearchPayload{}, fmt.Errorf("%w: question separator missing", app_errors.ErrValidation)
	}
	answer, questions := rest[:idx], rest[idx+len(questionSeparator):]

	var p SearchPayload
	if err := json.Unmarshal([]byte(sources), &p.Sources); err != nil {
		return SearchPayload{}, fmt.Errorf("%w: sources: %v", app_errors.ErrValidation, err)
	}
	if err := json.Unmarshal([]byte(questions), &p.RelatedQuestions); err != nil {
		return SearchPayload{}, fmt.Errorf("%w: related questions: %v", app_errors.ErrValidation, err)
	}
	p.Answer = answer
	return p, nil
}

// ParseRelatedQuestions reads the model's numbered list. Fewer than two
// usable questions count as none.
func ParseRelatedQuestions(raw string) []string {
	questions := []string{}
	for _, line := range strings.Split(raw, "\n") {
		q := strings.TrimSpace(questionNumber.ReplaceAllString(strings.TrimSpace(line), ""))
		if q == "" || strings.HasPrefix(q, noRelatedQuestions) {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) < 2 {
		return []string{}
	}
	return questions
}

// SearchService answers a query from web snippets with citations and
// follow-up questions.
type SearchService struct {
	fetcher   search.Fetcher
	completer llm.Completer
}

func NewSearchService(fetcher search.Fetcher, completer llm.Completer) *SearchService {
	return &SearchService{fetcher: fetcher, completer: completer}
}

func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*SearchPayload, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: Missing query!", app_errors.ErrValidation)
	}

	sources := s.fetchSources(ctx, query)
	groundingContext := buildGroundingContext(sources)

	vars := map[string]any{
		"context":  groundingContext,
		"question": query,
		"language": req.Language,
	}
	ragInput, err := ragPrompt.Format(vars)
	if err != nil {
		return nil, fmt.Errorf("%w: could not render answer prompt: %v", app_errors.ErrInternal, err)
	}
	answer, err := s.complete(ctx, req, ragInput)
	if err != nil {
		return nil, fmt.Errorf("answer synthesis failed: %w", err)
	}

	vars["answer"] = answer
	relatedInput, err := relatedQuestionsPrompt.Format(vars)
	if err != nil {
		return nil, fmt.Errorf("%w: could not render related questions prompt: %v", app_errors.ErrInternal, err)
	}
	related, err := s.complete(ctx, req, relatedInput)
	if err != nil {
		return nil, fmt.Errorf("related question generation failed: %w", err)
	}

	return &SearchPayload{
		Sources:          sources,
		Answer:           answer,
		RelatedQuestions: ParseRelatedQuestions(related),
	}, nil
}

// fetchSources never fails: a broken search backend yields no sources and
// the answer prompt handles the empty context.
func (s *SearchService) fetchSources(ctx context.Context, query string) []model.SearchResult {
	sources := []model.SearchResult{}
	results, err := s.fetcher.Fetch(ctx, query)
	if err != nil {
		slog.Warn("Search snippet fetch failed, continuing without sources", "query", query, "error", err)
		return sources
	}
	for _, r := range results {
		if len(sources) == maxSearchResults {
			break
		}
		r.IconURL = fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=16", r.URL)
		sources = append(sources, r)
	}
	return sources
}

func (s *SearchService) complete(ctx context.Context, req SearchRequest, prompt string) (string, error) {
	text, err := s.completer.Complete(ctx, &llm.CompletionRequest{
		Messages:    []llm.Message{{Role: string(model.RoleUser), Content: prompt}},
		MaxTokens:   searchMaxTokens,
		Temperature: llm.Float(searchTemperature),
		Language:    req.Language,
		APIKey:      req.APIKey,
		BaseURL:     req.BaseURL,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// buildGroundingContext numbers each snippet so the answer can cite it.
func buildGroundingContext(sources []model.SearchResult) string {
	units := make([]string, 0, len(sources))
	for i, src := range sources {
		units = append(units, fmt.Sprintf("[[citation:%d]] %s\n%s", i+1, src.Title, src.Description))
	}
	return strings.Join(units, "\n\n")
}
