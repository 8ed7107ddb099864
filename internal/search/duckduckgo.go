package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	app_errors "parley/backend/internal/errors"
	"parley/backend/internal/model"
)

// DuckDuckGoFetcher scrapes the no-JavaScript DuckDuckGo results page.
type DuckDuckGoFetcher struct {
	client   *http.Client
	endpoint string
}

func NewDuckDuckGoFetcher(endpoint string) *DuckDuckGoFetcher {
	return &DuckDuckGoFetcher{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: endpoint,
	}
}

func (f *DuckDuckGoFetcher) Fetch(ctx context.Context, query string) ([]model.SearchResult, error) {
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid duckduckgo url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) parley/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: duckduckgo request failed: %v", app_errors.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: duckduckgo returned status %d", app_errors.ErrUpstream, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse duckduckgo page: %v", app_errors.ErrUpstream, err)
	}

	var results []model.SearchResult
	doc.Find(".result").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		target := resolveRedirect(href)
		if target == "" {
			return
		}
		results = append(results, model.SearchResult{
			URL:         target,
			Title:       strings.TrimSpace(link.Text()),
			Description: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		})
	})
	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<target> redirect links.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return href
}

// encodeQuery escapes a query the way a browser encodes a URI component.
func encodeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}
