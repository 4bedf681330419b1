package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/leofalp/rolefinder/providers/ner"
)

// Method records how a candidate was produced.
type Method string

const (
	MethodPattern Method = "pattern"
	MethodNER     Method = "ner"
)

const (
	// nerMaxChars caps how much text is handed to the NER capability.
	nerMaxChars = 10000
	// nerProximityChars is the window, in bytes, around a person span in
	// which a role mention must occur for the span to count as a
	// candidate. Roughly a dozen tokens of prose.
	nerProximityChars = 120

	trimCutset = " \t\r\n.,;:!\"'–—-"
)

// Candidate is a raw name candidate cut from snippet or page text. It is
// ephemeral: candidates that fail validation are discarded.
type Candidate struct {
	Name   string
	URL    string
	Domain string
	Method Method
}

// Extractor applies the pattern rule set for one request, optionally merged
// with candidates from an NER capability. Construction is per request because
// the rules are anchored to the request's company and role variants.
type Extractor struct {
	patterns []*regexp.Regexp
	variants []string
	nerp     ner.Provider
	logger   *slog.Logger
}

// New builds an Extractor for company and its role variants. nerp may be nil,
// in which case the no-op capability is used.
func New(company string, variants []string, nerp ner.Provider, logger *slog.Logger) *Extractor {
	if nerp == nil {
		nerp = ner.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	lowered := make([]string, len(variants))
	for i, v := range variants {
		lowered[i] = strings.ToLower(v)
	}
	return &Extractor{
		patterns: rules(company, variants),
		variants: lowered,
		nerp:     nerp,
		logger:   logger,
	}
}

// Extract returns every candidate found in text, pattern matches first, NER
// matches after. It is a total function: malformed or empty text yields zero
// candidates, never an error. Candidate names are verbatim spans trimmed of
// leading and trailing punctuation; normalisation happens later in
// aggregation. Duplicate names within one call are collapsed to the first
// sighting.
func (e *Extractor) Extract(ctx context.Context, text, sourceURL, domain string) []Candidate {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []Candidate
	seen := make(map[string]bool)
	add := func(name string, method Method) {
		name = strings.Trim(name, trimCutset)
		if name == "" || seen[strings.ToLower(name)] {
			return
		}
		seen[strings.ToLower(name)] = true
		out = append(out, Candidate{Name: name, URL: sourceURL, Domain: domain, Method: method})
	}

	for _, p := range e.patterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 {
				add(m[1], MethodPattern)
			}
		}
	}

	for _, span := range e.personSpans(ctx, text) {
		add(span.Text, MethodNER)
	}

	return out
}

// personSpans queries the NER capability and keeps only spans with a role
// mention nearby. Capability failures cost recall, not correctness, so they
// are logged and swallowed.
func (e *Extractor) personSpans(ctx context.Context, text string) []ner.Span {
	clipped := text
	if len(clipped) > nerMaxChars {
		clipped = clipped[:nerMaxChars]
	}

	spans, err := e.nerp.FindPersonSpans(ctx, clipped)
	if err != nil {
		e.logger.Debug("ner capability failed", "error", err)
		return nil
	}
	if len(spans) == 0 {
		return nil
	}

	lower := strings.ToLower(clipped)
	var kept []ner.Span
	for _, s := range spans {
		if e.roleNearby(lower, s) {
			kept = append(kept, s)
		}
	}
	return kept
}

func (e *Extractor) roleNearby(lowerText string, s ner.Span) bool {
	lo := s.Start - nerProximityChars
	if lo < 0 {
		lo = 0
	}
	hi := s.End + nerProximityChars
	if hi > len(lowerText) {
		hi = len(lowerText)
	}
	if lo >= hi {
		return false
	}
	window := lowerText[lo:hi]
	for _, v := range e.variants {
		if strings.Contains(window, v) {
			return true
		}
	}
	return false
}
