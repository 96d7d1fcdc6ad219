package dataflows

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// NewsClient fetches recent headlines for a topic from Google News, feeding
// the sentiment scorer.
type NewsClient struct {
	client *resty.Client
	cache  *Cache
}

// NewNewsClient creates a headline fetcher with a two hour cache.
func NewNewsClient(cacheEnabled bool) *NewsClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; FinGenie/1.0)")

	return &NewsClient{
		client: client,
		cache:  NewCache(2*time.Hour, cacheEnabled),
	}
}

// FetchHeadlines returns up to limit recent headline strings for the query.
func (nc *NewsClient) FetchHeadlines(ctx context.Context, query string, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("news query cannot be empty")
	}
	if limit <= 0 {
		limit = 5
	}

	cacheKey := fmt.Sprintf("headlines:%s:%d", strings.ToLower(query), limit)
	if cached, ok := nc.cache.Get(cacheKey); ok {
		if headlines, ok := cached.([]string); ok {
			return headlines, nil
		}
	}

	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en&gl=US&ceid=US:en",
		url.QueryEscape(query))

	resp, err := nc.client.R().SetContext(ctx).Get(searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines for %q: %w", query, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP %d fetching headlines for %q", resp.StatusCode(), query)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse news page: %w", err)
	}

	headlines := parseHeadlines(doc, limit)
	if len(headlines) == 0 {
		return nil, fmt.Errorf("no headlines found for %q", query)
	}

	nc.cache.Set(cacheKey, headlines)
	return headlines, nil
}

// parseHeadlines pulls article titles out of a Google News results page.
// The page structure shifts now and then; h3 then h4 covers the layouts
// seen so far.
func parseHeadlines(doc *goquery.Document, limit int) []string {
	var headlines []string
	seen := make(map[string]bool)

	doc.Find("article").EachWithBreak(func(i int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("h4").Text())
		}
		if title == "" || seen[title] {
			return true
		}
		seen[title] = true
		headlines = append(headlines, title)
		return len(headlines) < limit
	})

	return headlines
}
