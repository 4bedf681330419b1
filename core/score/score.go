package score

import (
	"strings"
	"sync"

	"github.com/leofalp/rolefinder/core/validate"
	"github.com/leofalp/rolefinder/internal/utils"
)

// DefaultCorroborationBonus is the score increment applied when the same
// normalised name is independently observed on an additional distinct domain.
// It is a tunable, not an invariant.
const DefaultCorroborationBonus = 0.05

// Aggregated is the merged record for one normalised name across all sources
// of a pipeline run.
type Aggregated struct {
	// Key is the case-folded, whitespace-collapsed merge key.
	Key string
	// Name is the display form of the first sighting, whitespace-collapsed
	// but with its original casing.
	Name string
	// Occurrences preserves first-seen order for deterministic
	// tie-breaking.
	Occurrences []validate.Validated
	// Score is the combined score: monotonically non-decreasing as
	// evidence arrives, capped at 1.0.
	Score float64
}

// Normalize produces the merge key for a candidate name: case-folded,
// internal whitespace collapsed, trimmed. It is idempotent.
func Normalize(name string) string {
	return strings.ToLower(utils.CollapseSpaces(name))
}

// Aggregator accumulates validated candidates for a single pipeline run.
// Ingest calls are serialised internally, so concurrent sources may feed one
// Aggregator; each request owns its own instance and entries are never
// deleted or rolled back.
type Aggregator struct {
	mu      sync.Mutex
	bonus   float64
	entries map[string]*Aggregated
	order   []string
	domains map[string]map[string]bool
}

// NewAggregator constructs an Aggregator. A non-positive bonus selects
// [DefaultCorroborationBonus].
func NewAggregator(bonus float64) *Aggregator {
	if bonus <= 0 {
		bonus = DefaultCorroborationBonus
	}
	return &Aggregator{
		bonus:   bonus,
		entries: make(map[string]*Aggregated),
		domains: make(map[string]map[string]bool),
	}
}

// Ingest folds one validated candidate into the shared state. The first
// sighting of a normalised name creates its entry with the candidate's base
// score; every further sighting appends the occurrence and recomputes the
// combined score as max(existing, base), plus the corroboration bonus when
// the occurrence comes from a domain not yet seen for that name. A repeat
// from an already-counted domain adds no bonus.
func (a *Aggregator) Ingest(v validate.Validated) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := Normalize(v.Name)
	if key == "" {
		return
	}

	e, ok := a.entries[key]
	if !ok {
		a.entries[key] = &Aggregated{
			Key:         key,
			Name:        utils.CollapseSpaces(v.Name),
			Occurrences: []validate.Validated{v},
			Score:       v.BaseScore,
		}
		a.order = append(a.order, key)
		a.domains[key] = map[string]bool{v.Domain: true}
		return
	}

	e.Occurrences = append(e.Occurrences, v)

	s := e.Score
	if v.BaseScore > s {
		s = v.BaseScore
	}
	if !a.domains[key][v.Domain] {
		a.domains[key][v.Domain] = true
		s += a.bonus
	}
	if s > 1.0 {
		s = 1.0
	}
	e.Score = s
}

// Snapshot returns the aggregated candidates in insertion order. The returned
// slice and its occurrence slices are copies; further Ingest calls do not
// mutate them.
func (a *Aggregator) Snapshot() []Aggregated {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Aggregated, 0, len(a.order))
	for _, key := range a.order {
		e := a.entries[key]
		occ := make([]validate.Validated, len(e.Occurrences))
		copy(occ, e.Occurrences)
		out = append(out, Aggregated{Key: e.Key, Name: e.Name, Occurrences: occ, Score: e.Score})
	}
	return out
}

// Stats reports how many distinct names and total occurrences have been
// ingested so far. The pipeline uses it for short-circuiting.
func (a *Aggregator) Stats() (names, occurrences int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.entries {
		occurrences += len(e.Occurrences)
	}
	return len(a.entries), occurrences
}
