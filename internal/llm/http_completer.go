package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"unicode/utf8"

	app_errors "parley/backend/internal/errors"
)

const (
	headerCustomAPIKey  = "X-Custom-Api-Key"
	headerCustomBaseURL = "X-Custom-Base-Url"
)

// HTTPCompleter talks to a remote gateway's POST /api/chat, which answers
// with a plain-text body (chunked when streaming).
type HTTPCompleter struct {
	client *http.Client
	url    string
}

func NewHTTPCompleter(url string) *HTTPCompleter {
	return &HTTPCompleter{
		client: &http.Client{},
		url:    url,
	}
}

func (c *HTTPCompleter) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	r := *req
	r.Stream = false
	resp, err := c.do(ctx, &r)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response body: %w", err)
	}
	return string(body), nil
}

func (c *HTTPCompleter) Stream(ctx context.Context, req *CompletionRequest) (Stream, error) {
	r := *req
	r.Stream = true
	resp, err := c.do(ctx, &r)
	if err != nil {
		return nil, err
	}
	return newBodyStream(resp.Body), nil
}

func (c *HTTPCompleter) do(ctx context.Context, req *CompletionRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.APIKey != "" {
		httpReq.Header.Set(headerCustomAPIKey, req.APIKey)
	}
	if req.BaseURL != "" {
		httpReq.Header.Set(headerCustomBaseURL, req.BaseURL)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: http request failed: %v", app_errors.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: api returned status %d: %s", app_errors.ErrUpstream, resp.StatusCode, string(bodyBytes))
	}
	return resp, nil
}

// bodyStream turns a plain-text response body into chunks. A multi-byte rune
// split across reads is held back until its remaining bytes arrive.
type bodyStream struct {
	body    io.ReadCloser
	buf     []byte
	pending []byte
	once    sync.Once
}

func newBodyStream(body io.ReadCloser) *bodyStream {
	return &bodyStream{body: body, buf: make([]byte, 4096)}
}

func (s *bodyStream) Recv() (string, error) {
	for {
		n, err := s.body.Read(s.buf)
		if n > 0 {
			s.pending = append(s.pending, s.buf[:n]...)
			if text := s.takeComplete(); text != "" {
				return text, nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(s.pending) > 0 {
					text := string(s.pending)
					s.pending = nil
					return text, nil
				}
				return "", io.EOF
			}
			return "", fmt.Errorf("%w: stream read failed: %v", app_errors.ErrUpstream, err)
		}
	}
}

// takeComplete returns the longest prefix of pending that does not end in a
// truncated rune.
func (s *bodyStream) takeComplete() string {
	cut := len(s.pending)
	for i := 1; i < utf8.UTFMax && i <= len(s.pending); i++ {
		b := s.pending[len(s.pending)-i]
		if !utf8.RuneStart(b) {
			continue
		}
		if !utf8.FullRune(s.pending[len(s.pending)-i:]) {
			cut = len(s.pending) - i
		}
		break
	}
	text := string(s.pending[:cut])
	s.pending = append([]byte(nil), s.pending[cut:]...)
	return text
}

func (s *bodyStream) Close() error {
	var err error
	s.once.Do(func() { err = s.body.Close() })
	return err
}
