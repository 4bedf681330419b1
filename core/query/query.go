package query

import (
	"fmt"
	"strings"
)

// RoleQuery is the immutable input to a pipeline run.
type RoleQuery struct {
	Role    string
	Company string
}

// Expanded is one search query derived from a [RoleQuery]. Ordering across a
// slice of Expanded reflects priority: canonical-role queries come first,
// alias queries after.
type Expanded struct {
	Text        string
	RoleVariant string
}

// DefaultAliases maps upper-cased canonical roles to synonym phrases used to
// widen search recall.
var DefaultAliases = map[string][]string{
	"CEO":       {"Chief Executive Officer", "Chief Executive"},
	"CTO":       {"Chief Technology Officer", "Chief Technical Officer"},
	"CFO":       {"Chief Financial Officer"},
	"CMO":       {"Chief Marketing Officer", "Marketing Director"},
	"COO":       {"Chief Operating Officer"},
	"FOUNDER":   {"Co-Founder", "Founding Partner"},
	"DIRECTOR":  {"Managing Director", "Executive Director"},
	"MANAGER":   {"General Manager", "Senior Manager"},
	"PRESIDENT": {"President & CEO"},
}

// Expander turns a (role, company) pair into an ordered, deterministic set of
// search queries using a role-alias table.
type Expander struct {
	aliases map[string][]string
}

// NewExpander constructs an Expander. A nil alias table selects
// [DefaultAliases].
func NewExpander(aliases map[string][]string) *Expander {
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Expander{aliases: aliases}
}

// Variants returns the role phrase followed by its aliases, deduplicated and
// in stable order. Compound roles joined by "&" contribute the aliases of
// each part. Unknown roles yield only the literal phrase: a narrower search,
// not an error.
func (e *Expander) Variants(role string) []string {
	role = strings.TrimSpace(role)
	variants := []string{role}
	variants = append(variants, e.aliases[strings.ToUpper(role)]...)

	if strings.Contains(role, "&") {
		for _, part := range strings.Split(role, "&") {
			part = strings.TrimSpace(part)
			variants = append(variants, e.aliases[strings.ToUpper(part)]...)
		}
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, v := range variants {
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// Expand produces the ordered query set for q. The result is finite,
// non-empty, and identical for identical input, so downstream short-circuit
// behaviour is reproducible. Quoted pairings anchor exact phrases; the
// canonical role additionally gets unquoted widening queries.
func (e *Expander) Expand(q RoleQuery) []Expanded {
	company := strings.TrimSpace(q.Company)

	var out []Expanded
	for i, r := range e.Variants(q.Role) {
		out = append(out,
			Expanded{Text: fmt.Sprintf("%q %q", company, r), RoleVariant: r},
			Expanded{Text: fmt.Sprintf("Who is the %s of %s", r, company), RoleVariant: r},
		)
		if i == 0 {
			out = append(out,
				Expanded{Text: fmt.Sprintf("%s %s", company, r), RoleVariant: r},
				Expanded{Text: fmt.Sprintf("%s %s LinkedIn", company, r), RoleVariant: r},
				Expanded{Text: fmt.Sprintf("%s leadership %s", company, r), RoleVariant: r},
			)
		}
	}

	seen := make(map[string]bool, len(out))
	deduped := out[:0]
	for _, eq := range out {
		if seen[eq.Text] {
			continue
		}
		seen[eq.Text] = true
		deduped = append(deduped, eq)
	}
	return deduped
}
