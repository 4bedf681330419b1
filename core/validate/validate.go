package validate

import (
	"regexp"
	"strings"

	"github.com/leofalp/rolefinder/core/extract"
)

// DefaultMaxTokens guards against accidental capture of a sentence fragment.
const DefaultMaxTokens = 5

// DefaultTitleWords are job-title words that disqualify a candidate: a span
// containing one is a title fragment, not a person name.
var DefaultTitleWords = []string{
	"Chief", "Executive", "Officer", "Founder", "Director", "Manager",
	"President", "Chairman", "Board", "Member", "Head", "Lead",
}

// DefaultStopwords are common non-name words and corporate suffixes.
var DefaultStopwords = []string{
	"The", "And", "Of", "Inc", "Ltd", "Company", "Corporation", "Group", "Team",
}

// tokenShape is the structural rule for a single name token: an upper-case
// letter followed by letters, periods, apostrophes, or hyphens.
var tokenShape = regexp.MustCompile(`^[A-Z][a-zA-Z.'-]*$`)

// Validated is a candidate that passed structural and lexical checks, carrying
// the credibility-derived base score of its source domain.
type Validated struct {
	extract.Candidate
	BaseScore float64
}

// Validator filters raw candidates and scores the survivors by source-domain
// credibility.
type Validator struct {
	blocked   map[string]bool
	maxTokens int
	cred      *Credibility
}

// New constructs a Validator. Nil titleWords, stopwords, or cred select the
// package defaults.
func New(titleWords, stopwords []string, cred *Credibility) *Validator {
	if titleWords == nil {
		titleWords = DefaultTitleWords
	}
	if stopwords == nil {
		stopwords = DefaultStopwords
	}
	if cred == nil {
		cred = DefaultCredibility()
	}
	blocked := make(map[string]bool, len(titleWords)+len(stopwords))
	for _, w := range titleWords {
		blocked[strings.ToLower(w)] = true
	}
	for _, w := range stopwords {
		blocked[strings.ToLower(w)] = true
	}
	return &Validator{blocked: blocked, maxTokens: DefaultMaxTokens, cred: cred}
}

// Validate accepts or rejects a raw candidate. Rejections return ok=false; on
// acceptance the candidate is returned with its domain-credibility base
// score.
func (v *Validator) Validate(c extract.Candidate) (Validated, bool) {
	tokens := strings.Fields(c.Name)
	if len(tokens) < 2 || len(tokens) > v.maxTokens {
		return Validated{}, false
	}
	for _, tok := range tokens {
		if !tokenShape.MatchString(tok) {
			return Validated{}, false
		}
		if v.blocked[strings.ToLower(strings.Trim(tok, "."))] {
			return Validated{}, false
		}
	}
	return Validated{Candidate: c, BaseScore: v.cred.Score(c.Domain)}, true
}
