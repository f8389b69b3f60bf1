package fetchers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// FactFetcher reads extra fun facts from an RSS or Atom feed
type FactFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
}

// NewFactFetcher creates a fact fetcher instance
func NewFactFetcher(client *resty.Client, parser *gofeed.Parser) *FactFetcher {
	return &FactFetcher{
		client: client,
		parser: parser,
	}
}

// Fetch returns up to limit facts taken from feed item titles (descriptions
// when a title is empty). limit <= 0 means no limit.
func (f *FactFetcher) Fetch(ctx context.Context, url string, limit int) ([]string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch fact feed: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{Endpoint: "fact feed", Code: resp.StatusCode()}
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse fact feed: %w", err)
	}

	var facts []string
	for _, item := range feed.Items {
		text := strings.TrimSpace(item.Title)
		if text == "" {
			text = strings.TrimSpace(item.Description)
		}
		if text == "" {
			continue
		}
		facts = append(facts, text)
		if limit > 0 && len(facts) == limit {
			break
		}
	}
	return facts, nil
}

// FetchFacts reads fun facts from the configured feed
func (f *DataFetcher) FetchFacts(ctx context.Context, url string, limit int) ([]string, error) {
	return f.facts.Fetch(ctx, url, limit)
}
