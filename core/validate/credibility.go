package validate

import "strings"

// Credibility assigns a static trust weight to a source domain. Lookup order:
// exact domain match, then suffix categories (professional networks,
// encyclopedias, institutional TLDs), then known news outlets, then Default.
// Tables are immutable after construction and shared across requests.
type Credibility struct {
	Exact     map[string]float64
	Suffixes  map[string]float64
	News      []string
	NewsScore float64
	Default   float64
}

// DefaultCredibility returns the built-in domain-credibility table.
func DefaultCredibility() *Credibility {
	return &Credibility{
		Exact: map[string]float64{
			"linkedin.com":  0.95,
			"wikipedia.org": 0.90,
		},
		Suffixes: map[string]float64{
			".linkedin.com":  0.95,
			".wikipedia.org": 0.90,
			".gov":           0.85,
			".edu":           0.85,
		},
		News: []string{
			"bloomberg", "reuters", "wsj", "nytimes", "bbc", "forbes",
			"techcrunch", "cnbc", "ft.com", "economist", "apnews",
		},
		NewsScore: 0.80,
		Default:   0.60,
	}
}

// Score looks up the credibility of domain.
func (c *Credibility) Score(domain string) float64 {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return c.Default
	}
	if s, ok := c.Exact[d]; ok {
		return s
	}
	for suffix, s := range c.Suffixes {
		if strings.HasSuffix(d, suffix) {
			return s
		}
	}
	for _, outlet := range c.News {
		if strings.Contains(d, outlet) {
			return c.NewsScore
		}
	}
	return c.Default
}
