package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	searchDepth     = "basic"
	maxResults      = 5
	maxContentRunes = 200
	noResults       = "No results found."
)

// Searcher is the part of Client the gateway depends on.
type Searcher interface {
	Search(ctx context.Context, request Request) (*Response, error)
}

// Gateway turns a query into the text digest handed back to the model.
type Gateway struct {
	searcher Searcher
	logger   *zap.Logger
}

// NewGateway creates a gateway over searcher.
func NewGateway(searcher Searcher, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{searcher: searcher, logger: logger}
}

// Search runs query with basic depth and at most five results. Failures
// are reported in the returned text rather than as an error.
func (g *Gateway) Search(ctx context.Context, query string) string {
	resp, err := g.searcher.Search(ctx, Request{
		Query:       query,
		SearchDepth: searchDepth,
		MaxResults:  maxResults,
	})
	if err != nil {
		g.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		return fmt.Sprintf("Search error: %v", err)
	}

	if resp == nil {
		return noResults
	}
	return FormatResults(resp.Results)
}

// FormatResults renders results as numbered three-line blocks separated
// by blank lines, or "No results found." when there are none.
func FormatResults(results []Result) string {
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	lines := make([]string, 0, len(results)*3)
	for i, r := range results {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, orDefault(r.Title, "No title")),
			fmt.Sprintf("   %s...", truncateRunes(orDefault(r.Content, "No content"), maxContentRunes)),
			fmt.Sprintf("   URL: %s\n", orDefault(r.URL, "No URL")),
		)
	}

	if len(lines) == 0 {
		return noResults
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
