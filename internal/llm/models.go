package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	app_errors "parley/backend/internal/errors"
)

// ModelDescriptor is one entry of the upstream model catalogue.
type ModelDescriptor struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelLister reads GET {base}/models from an OpenAI-compatible upstream.
type ModelLister struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewModelLister(apiKey, baseURL string) *ModelLister {
	return &ModelLister{
		client:  &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// ListModels returns the catalogue newest first. Empty apiKey and baseURL
// fall back to the configured ones.
func (l *ModelLister) ListModels(ctx context.Context, apiKey, baseURL string) ([]ModelDescriptor, error) {
	if apiKey == "" {
		apiKey = l.apiKey
	}
	if baseURL == "" {
		baseURL = l.baseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: models endpoint returned %d", app_errors.ErrUpstream, resp.StatusCode)
	}

	var body struct {
		Data []ModelDescriptor `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding models: %v", app_errors.ErrUpstream, err)
	}

	sort.SliceStable(body.Data, func(i, j int) bool {
		return body.Data[i].Created > body.Data[j].Created
	})
	return body.Data, nil
}
