package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leofalp/rolefinder/core/extract"
	"github.com/leofalp/rolefinder/core/query"
	"github.com/leofalp/rolefinder/core/score"
	"github.com/leofalp/rolefinder/core/validate"
	"github.com/leofalp/rolefinder/providers/fetch"
	"github.com/leofalp/rolefinder/providers/ner"
	"github.com/leofalp/rolefinder/providers/search"
)

// ErrInvalidInput is returned when role or company is missing or empty. It is
// the only user-visible failure; everything else degrades to the not-found
// terminal result.
var ErrInvalidInput = errors.New("role and company must be non-empty")

const (
	// DefaultTimeout bounds a whole pipeline run. When it expires,
	// selection proceeds on whatever evidence was aggregated.
	DefaultTimeout = 25 * time.Second
	// DefaultMaxQueries caps how many expanded queries are issued per
	// request.
	DefaultMaxQueries = 8
	// DefaultMaxSources caps how many hits of one query are processed.
	DefaultMaxSources = 6
	// DefaultConcurrency bounds the query fan-out.
	DefaultConcurrency = 4

	// Short-circuit thresholds: stop launching further queries once this
	// many distinct names and total occurrences have been aggregated.
	shortCircuitNames       = 2
	shortCircuitOccurrences = 3
)

// Pipeline resolves "who holds role R at company C" by expanding queries,
// fanning out over search results, extracting and validating name candidates,
// and aggregating corroborated scores. Each Resolve call owns its aggregation
// state; a Pipeline is safe for concurrent use across requests.
type Pipeline struct {
	searcher search.Provider
	fetcher  fetch.Fetcher
	nerp     ner.Provider
	expander *query.Expander
	logger   *slog.Logger

	aliases     map[string][]string
	credibility *validate.Credibility
	titleWords  []string
	stopwords   []string

	bonus       float64
	floor       float64
	timeout     time.Duration
	maxQueries  int
	maxSources  int
	concurrency int
}

// New constructs a Pipeline around a search provider and page fetcher.
// fetcher may be nil to disable full-page retrieval (snippets only).
func New(searcher search.Provider, fetcher fetch.Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		searcher:    searcher,
		fetcher:     fetcher,
		timeout:     DefaultTimeout,
		maxQueries:  DefaultMaxQueries,
		maxSources:  DefaultMaxSources,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.expander = query.NewExpander(p.aliases)
	return p
}

// Resolve runs the full pipeline for q. It returns [ErrInvalidInput] for a
// missing role or company; every other condition, including an exhausted
// deadline, yields a terminal [score.Result].
func (p *Pipeline) Resolve(ctx context.Context, q query.RoleQuery) (score.Result, error) {
	role := strings.TrimSpace(q.Role)
	company := strings.TrimSpace(q.Company)
	if role == "" || company == "" {
		return score.NotFound(), ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	agg := score.NewAggregator(p.bonus)
	validator := validate.New(p.titleWords, p.stopwords, p.credibility)
	extractor := extract.New(company, p.expander.Variants(role), p.nerp, p.logger)

	queries := p.expander.Expand(query.RoleQuery{Role: role, Company: company})
	if len(queries) > p.maxQueries {
		queries = queries[:p.maxQueries]
	}

	run := &runState{
		pipeline:  p,
		agg:       agg,
		validator: validator,
		extractor: extractor,
		seen:      make(map[string]bool),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, eq := range queries {
		if gctx.Err() != nil {
			break
		}
		if names, occurrences := agg.Stats(); names >= shortCircuitNames && occurrences >= shortCircuitOccurrences {
			p.logger.Debug("short-circuiting query expansion",
				"names", names, "occurrences", occurrences)
			break
		}
		eq := eq
		// Workers never return errors: per-source failures are
		// recoverable and must not cancel sibling queries.
		g.Go(func() error {
			run.runQuery(gctx, eq)
			return nil
		})
	}
	// Selection must not start while any fetch or search is in flight.
	_ = g.Wait()

	result := score.NewSelector(p.floor).Select(agg.Snapshot())
	if ctx.Err() != nil {
		p.logger.Warn("pipeline deadline exceeded, selected from partial evidence",
			"role", role, "company", company, "found", result.Found)
	}
	return result, nil
}

// runState carries the per-request pieces shared by the query workers.
type runState struct {
	pipeline  *Pipeline
	agg       *score.Aggregator
	validator *validate.Validator
	extractor *extract.Extractor

	mu   sync.Mutex
	seen map[string]bool
}

// markSeen reports whether url has not been processed yet in this run and
// records it. Sources repeated across queries are handled once.
func (r *runState) markSeen(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[url] {
		return false
	}
	r.seen[url] = true
	return true
}

func (r *runState) runQuery(ctx context.Context, eq query.Expanded) {
	p := r.pipeline
	results, err := p.searcher.Search(ctx, eq.Text)
	if err != nil {
		p.logger.Warn("search failed, skipping query", "query", eq.Text, "error", err)
		return
	}
	if len(results) > p.maxSources {
		results = results[:p.maxSources]
	}
	for _, res := range results {
		if ctx.Err() != nil {
			return
		}
		if !r.markSeen(res.URL) {
			continue
		}
		r.processSource(ctx, res)
	}
}

// processSource tries the cheap snippet first and pays for a full page fetch
// only when the snippet yields no validated candidate.
func (r *runState) processSource(ctx context.Context, res search.Result) {
	p := r.pipeline

	if n := r.ingest(ctx, res.Snippet, res); n > 0 {
		p.logger.Debug("candidates from snippet", "url", res.URL, "count", n)
		return
	}
	if p.fetcher == nil {
		return
	}

	text, err := p.fetcher.FetchPage(ctx, res.URL)
	if err != nil {
		p.logger.Debug("page fetch failed, skipping source", "url", res.URL, "error", err)
		return
	}
	if n := r.ingest(ctx, text, res); n > 0 {
		p.logger.Debug("candidates from page", "url", res.URL, "count", n)
	}
}

// ingest extracts, validates, and aggregates candidates from text, returning
// how many survived validation.
func (r *runState) ingest(ctx context.Context, text string, res search.Result) int {
	count := 0
	for _, c := range r.extractor.Extract(ctx, text, res.URL, res.Domain) {
		v, ok := r.validator.Validate(c)
		if !ok {
			continue
		}
		r.agg.Ingest(v)
		count++
	}
	return count
}
