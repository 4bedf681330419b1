package search

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

// Result is a single hit returned by a search backend.
type Result struct {
	URL     string
	Title   string
	Snippet string
	Domain  string
}

// Provider executes a web search query and returns results.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// DomainOf extracts the registrable host from rawURL, lower-cased and with any
// leading "www." and port stripped. It returns "" when rawURL does not parse.
func DomainOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// Fallback combines a primary backend with an optional secondary one. The
// secondary backend is consulted only when the primary fails or returns zero
// results. Results are deduplicated by URL, preserving the order of the first
// backend that produced them, and each result has its Domain populated.
type Fallback struct {
	primary   Provider
	secondary Provider
	logger    *slog.Logger
}

// NewFallback constructs a [Fallback]. secondary may be nil, in which case a
// primary failure simply yields zero results for that query.
func NewFallback(primary, secondary Provider, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{primary: primary, secondary: secondary, logger: logger}
}

// Search implements [Provider].
func (f *Fallback) Search(ctx context.Context, query string) ([]Result, error) {
	results, err := f.primary.Search(ctx, query)
	if err != nil || len(results) == 0 {
		if err != nil {
			f.logger.Warn("primary search backend failed", "query", query, "error", err)
		}
		if f.secondary == nil {
			return nil, err
		}
		secondary, secErr := f.secondary.Search(ctx, query)
		if secErr != nil {
			f.logger.Warn("secondary search backend failed", "query", query, "error", secErr)
			// Neither backend produced anything usable; report the
			// primary error when there was one.
			if err != nil {
				return nil, err
			}
			return nil, secErr
		}
		results = append(results, secondary...)
	}
	return annotate(dedupe(results)), nil
}

// dedupe removes results with duplicate or empty URLs, keeping the first
// occurrence of each URL.
func dedupe(results []Result) []Result {
	seen := make(map[string]bool, len(results))
	out := results[:0]
	for _, r := range results {
		if r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		out = append(out, r)
	}
	return out
}

func annotate(results []Result) []Result {
	for i := range results {
		if results[i].Domain == "" {
			results[i].Domain = DomainOf(results[i].URL)
		}
	}
	return results
}
