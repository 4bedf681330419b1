package pipeline

import (
	"log/slog"
	"time"

	"github.com/leofalp/rolefinder/core/validate"
	"github.com/leofalp/rolefinder/providers/ner"
)

// Option configures a [Pipeline].
type Option func(*Pipeline)

// WithNER sets the optional named-entity-recognition capability.
func WithNER(p ner.Provider) Option {
	return func(pl *Pipeline) { pl.nerp = p }
}

// WithAliases sets the role-alias table (upper-cased canonical role to
// synonym phrases).
func WithAliases(aliases map[string][]string) Option {
	return func(pl *Pipeline) { pl.aliases = aliases }
}

// WithCredibility sets the domain-credibility table.
func WithCredibility(c *validate.Credibility) Option {
	return func(pl *Pipeline) { pl.credibility = c }
}

// WithTitleWords sets the job-title word blacklist used during validation.
func WithTitleWords(words []string) Option {
	return func(pl *Pipeline) { pl.titleWords = words }
}

// WithStopwords sets the stopword blacklist used during validation.
func WithStopwords(words []string) Option {
	return func(pl *Pipeline) { pl.stopwords = words }
}

// WithCorroborationBonus sets the score increment per additional distinct
// corroborating domain.
func WithCorroborationBonus(bonus float64) Option {
	return func(pl *Pipeline) { pl.bonus = bonus }
}

// WithConfidenceFloor sets the minimum combined score required to return a
// candidate.
func WithConfidenceFloor(floor float64) Option {
	return func(pl *Pipeline) { pl.floor = floor }
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(pl *Pipeline) {
		if d > 0 {
			pl.timeout = d
		}
	}
}

// WithMaxQueries caps how many expanded queries are issued per request.
func WithMaxQueries(n int) Option {
	return func(pl *Pipeline) {
		if n > 0 {
			pl.maxQueries = n
		}
	}
}

// WithMaxSourcesPerQuery caps how many hits of one query are processed.
func WithMaxSourcesPerQuery(n int) Option {
	return func(pl *Pipeline) {
		if n > 0 {
			pl.maxSources = n
		}
	}
}

// WithConcurrency bounds how many queries run in flight at once.
func WithConcurrency(n int) Option {
	return func(pl *Pipeline) {
		if n > 0 {
			pl.concurrency = n
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(pl *Pipeline) { pl.logger = logger }
}
