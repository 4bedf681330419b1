package fetch

import (
	"context"
	"fmt"
	"html"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leofalp/rolefinder/internal/utils"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 15 * time.Second
	// DefaultUserAgent is the default User-Agent header value
	DefaultUserAgent = "rolefinder-fetch/1.0"
	// MaxBodySize is the maximum response body size (2MB)
	MaxBodySize = 2 * 1024 * 1024
	// DefaultMaxChars caps the plain text returned per page
	DefaultMaxChars = 8000
	// DialTimeout is the maximum time to wait for a TCP connection
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for TLS handshake
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is the maximum time to wait for response headers
	ResponseHeaderTimeout = 10 * time.Second
)

// Error reports a failed page retrieval. Callers treat it as recoverable:
// the source is skipped and the pipeline continues.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: http %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher retrieves the visible plain text of a web page.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// HTTPFetcher implements [Fetcher] with the standard library HTTP client and
// html-to-markdown conversion. The Markdown intermediate drops scripts,
// styles, and other non-content markup; the remaining markup syntax is then
// flattened into single-spaced plain text suitable for pattern matching.
type HTTPFetcher struct {
	client   *http.Client
	maxChars int
}

// New creates an HTTPFetcher with transport-level timeouts so slow or
// unresponsive servers cannot stall a pipeline run.
func New() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   DialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   TLSHandshakeTimeout,
				ResponseHeaderTimeout: ResponseHeaderTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				ForceAttemptHTTP2:     true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects (>10)")
				}
				return nil
			},
		},
		maxChars: DefaultMaxChars,
	}
}

// NewWithClient creates an HTTPFetcher using the supplied HTTP client.
func NewWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client, maxChars: DefaultMaxChars}
}

// FetchPage implements [Fetcher]. It fails with [*Error] on network failure,
// non-200 status, or non-text content type.
func (f *HTTPFetcher) FetchPage(ctx context.Context, rawURL string) (string, error) {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return "", &Error{URL: rawURL, Err: fmt.Errorf("url is empty")}
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", &Error{URL: u, Err: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: u, Err: err}
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: u, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !isTextContent(ct) {
		return "", &Error{URL: u, Err: fmt.Errorf("unsupported content type %q", ct)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return "", &Error{URL: u, Err: err}
	}

	markdown, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return "", &Error{URL: u, Err: fmt.Errorf("convert html: %w", err)}
	}

	text := Flatten(markdown)
	if len(text) > f.maxChars {
		text = text[:f.maxChars]
	}
	return text, nil
}

func isTextContent(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") ||
		strings.Contains(ct, "text/plain") ||
		strings.Contains(ct, "application/xhtml")
}

var (
	reImage    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reHeading  = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	reHRule    = regexp.MustCompile(`(?m)^[*=_-]{3,}\s*$`)
	reEmphasis = regexp.MustCompile("[*`]+")
)

// Flatten reduces Markdown to single-spaced plain text: images are dropped,
// links are replaced by their label, heading and emphasis markers are
// stripped, HTML entities are decoded, and whitespace is collapsed.
func Flatten(markdown string) string {
	s := reImage.ReplaceAllString(markdown, " ")
	s = reLink.ReplaceAllString(s, "$1")
	s = reHeading.ReplaceAllString(s, "")
	s = reHRule.ReplaceAllString(s, " ")
	s = reEmphasis.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return utils.CollapseSpaces(s)
}
