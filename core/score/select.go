package score

import (
	"strings"

	"github.com/leofalp/rolefinder/core/validate"
)

// DefaultConfidenceFloor is the minimum combined score a candidate needs to
// be returned as the answer. It sits above the default unknown-domain
// credibility so a single anonymous source never wins on its own.
const DefaultConfidenceFloor = 0.70

// Result is the terminal outcome of a pipeline run. Found=false is a valid
// empty answer, not an error.
type Result struct {
	Found      bool
	FirstName  string
	LastName   string
	Confidence float64
	SourceURL  string
}

// NotFound is the explicit terminal value for runs without a confident
// candidate.
func NotFound() Result {
	return Result{}
}

// Selector picks the final answer from the aggregated candidates.
type Selector struct {
	floor float64
}

// NewSelector constructs a Selector. A non-positive floor selects
// [DefaultConfidenceFloor].
func NewSelector(floor float64) *Selector {
	if floor <= 0 {
		floor = DefaultConfidenceFloor
	}
	return &Selector{floor: floor}
}

// Select returns the highest-scoring candidate as a [Result], with ties
// broken by earliest first sighting. When candidates is empty or the winner
// scores below the confidence floor, the explicit not-found value is returned
// instead of a low-confidence guess.
func (s *Selector) Select(candidates []Aggregated) Result {
	var best *Aggregated
	for i := range candidates {
		// Strictly greater keeps the earliest-seen candidate on ties.
		if best == nil || candidates[i].Score > best.Score {
			best = &candidates[i]
		}
	}
	if best == nil || best.Score < s.floor {
		return NotFound()
	}

	first, last := splitName(best.Name)
	return Result{
		Found:      true,
		FirstName:  first,
		LastName:   last,
		Confidence: best.Score,
		SourceURL:  bestSource(best.Occurrences),
	}
}

// splitName splits on the last whitespace boundary: everything before is the
// first name, the final token is the last name.
func splitName(name string) (first, last string) {
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// bestSource returns the URL of the highest-baseScore occurrence, first among
// ties.
func bestSource(occurrences []validate.Validated) string {
	url := ""
	best := -1.0
	for _, occ := range occurrences {
		if occ.BaseScore > best {
			best = occ.BaseScore
			url = occ.URL
		}
	}
	return url
}
