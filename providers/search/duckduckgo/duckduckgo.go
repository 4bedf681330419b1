package duckduckgo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/leofalp/rolefinder/internal/utils"
	"github.com/leofalp/rolefinder/providers/search"
)

const (
	defaultEndpoint = "https://lite.duckduckgo.com/lite/"
	userAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultMaxResults caps how many hits a single query yields.
	DefaultMaxResults = 10
)

// rateGate enforces a global rate limit of 1 query per second across all
// Client instances and goroutines.
var rateGate struct {
	mu   sync.Mutex
	last time.Time
}

// Client implements [search.Provider] against DuckDuckGo's HTML lite
// interface, which is stable enough to scrape and returns both result URLs
// and snippets.
type Client struct {
	client     *http.Client
	endpoint   string
	maxResults int
}

// New creates a DuckDuckGo client with a modest timeout.
func New() *Client {
	return NewWithClient(&http.Client{Timeout: 15 * time.Second})
}

// NewWithClient creates a DuckDuckGo client using the supplied HTTP client.
// This is useful for overriding the default timeout.
func NewWithClient(client *http.Client) *Client {
	return &Client{client: client, endpoint: defaultEndpoint, maxResults: DefaultMaxResults}
}

// Search implements [search.Provider] by scraping the lite results page.
// Concurrent calls are paced through a shared 1 QPS gate, and 429 responses
// are retried with exponential backoff up to 30 seconds.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}

	rateGate.mu.Lock()
	if wait := time.Until(rateGate.last.Add(time.Second)); wait > 0 {
		rateGate.mu.Unlock()
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		rateGate.mu.Lock()
	}
	rateGate.last = time.Now()
	rateGate.mu.Unlock()

	formData := url.Values{}
	formData.Set("q", query)

	var resp *http.Response
	delay := 1 * time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(formData.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err = c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		utils.CloseWithLog(resp.Body)

		// Back off and retry on 429, doubling the delay up to 30 s.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo parse: %w", err)
	}
	return c.parse(doc), nil
}

// parse walks the lite page structure: result links carry the class
// "result-link" and each has a sibling row with a "result-snippet" cell.
func (c *Client) parse(doc *goquery.Document) []search.Result {
	snippets := doc.Find("td.result-snippet")

	var results []search.Result
	doc.Find("a.result-link").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		href = resolveRedirect(strings.TrimSpace(href))
		title := strings.TrimSpace(sel.Text())
		if href == "" || title == "" {
			return true
		}

		snippet := ""
		if i < snippets.Length() {
			snippet = strings.TrimSpace(snippets.Eq(i).Text())
		}

		results = append(results, search.Result{
			URL:     href,
			Title:   title,
			Snippet: snippet,
		})
		return len(results) < c.maxResults
	})
	return results
}

// resolveRedirect unwraps DuckDuckGo's redirect links, which wrap the real
// destination in a "uddg" query parameter, and normalises protocol-relative
// URLs.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasSuffix(u.Hostname(), "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}
