package brave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leofalp/rolefinder/internal/utils"
	"github.com/leofalp/rolefinder/providers/search"
)

const (
	defaultEndpoint = "https://api.search.brave.com/res/v1/web/search"

	// DefaultMaxResults caps how many hits a single query yields.
	DefaultMaxResults = 10
)

// Client implements [search.Provider] using the Brave Search API. An API key
// is required and is sent via the X-Subscription-Token header.
type Client struct {
	apiKey     string
	client     *http.Client
	endpoint   string
	maxResults int
}

// New constructs a Brave search client.
func New(apiKey string) *Client {
	return NewWithClient(apiKey, &http.Client{Timeout: 10 * time.Second})
}

// NewWithClient constructs a Brave search client using the supplied HTTP
// client. This is useful for overriding the default timeout.
func NewWithClient(apiKey string, client *http.Client) *Client {
	return &Client{apiKey: apiKey, client: client, endpoint: defaultEndpoint, maxResults: DefaultMaxResults}
}

// Search implements [search.Provider].
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, errors.New("brave: API key is missing")
	}
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}

	endpoint := fmt.Sprintf("%s?q=%s&count=%d", c.endpoint, url.QueryEscape(query), c.maxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave http %d", resp.StatusCode)
	}

	var payload struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("brave decode: %w", err)
	}

	results := make([]search.Result, 0, len(payload.Web.Results))
	for _, r := range payload.Web.Results {
		results = append(results, search.Result{Title: r.Title, URL: r.URL, Snippet: r.Description})
		if len(results) >= c.maxResults {
			break
		}
	}
	return results, nil
}
