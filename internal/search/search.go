package search

import (
	"context"

	"parley/backend/internal/model"
)

// Fetcher returns raw web snippets for a query. Implementations leave
// IconURL empty; the pipeline decorates results itself.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]model.SearchResult, error)
}
