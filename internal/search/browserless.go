package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	app_errors "parley/backend/internal/errors"
	"parley/backend/internal/model"
)

// scrapeFunction runs inside the browserless sandbox. It opens a Google
// results page and collects the organic links with their snippets.
const scrapeFunction = `module.exports = async ({ page, context }) => {
  const { query } = context;
  await page.setUserAgent("Mozilla/5.0 (Linux; Android 10) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36");
  await page.goto("https://www.google.com/search?q=" + query + "&hl=en", { waitUntil: "networkidle2" });
  const data = await page.evaluate(() => {
    const out = [];
    document.querySelectorAll('#main div[data-hveid] > .xpd > div:first-child > a[href*="/url?q="][data-ved]').forEach((a) => {
      const h3 = a.querySelector("h3");
      if (!h3) return;
      const m = a.getAttribute("href").match(/q=(.*?)&sa/);
      if (!m || m.length < 2) return;
      const next = a.parentNode.nextSibling;
      out.push({
        url: decodeURIComponent(m[1]),
        title: h3.textContent.trim(),
        description: next ? next.textContent.trim() : "",
      });
    });
    return out;
  });
  return { type: "application/json", data };
};`

type BrowserlessFetcher struct {
	client  *http.Client
	baseURL string
}

func NewBrowserlessFetcher(baseURL string) *BrowserlessFetcher {
	return &BrowserlessFetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type functionRequest struct {
	Code    string            `json:"code"`
	Context map[string]string `json:"context"`
}

func (f *BrowserlessFetcher) Fetch(ctx context.Context, query string) ([]model.SearchResult, error) {
	body, err := json.Marshal(functionRequest{
		Code:    scrapeFunction,
		Context: map[string]string{"query": encodeQuery(query)},
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/function", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: browserless request failed: %v", app_errors.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: browserless returned status %d: %s", app_errors.ErrUpstream, resp.StatusCode, string(b))
	}

	var results []model.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: could not decode browserless response: %v", app_errors.ErrUpstream, err)
	}
	return results, nil
}
