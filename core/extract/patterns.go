package extract

import "regexp"

// namePattern captures a run of two to four capitalised tokens adjacent to a
// role mention. Periods, apostrophes, and hyphens inside tokens cover middle
// initials and names like O'Brien or Smith-Jones.
const namePattern = `([A-Z][a-zA-Z.'-]*(?:\s+[A-Z][a-zA-Z.'-]*){1,3})`

// ci wraps a literal in a case-insensitive non-capturing group so the name
// span itself keeps its case-sensitive shape.
func ci(literal string) string {
	return `(?i:` + regexp.QuoteMeta(literal) + `)`
}

// rules compiles the pattern set for one (company, role variants) pair. Each
// rule anchors the captured name span to a literal or aliased role mention,
// covering the canonical "Name, Role of Company" and "Company Role Name"
// shapes plus role-adjacent variants.
func rules(company string, variants []string) []*regexp.Regexp {
	c := ci(company)

	var rs []*regexp.Regexp
	for _, v := range variants {
		r := ci(v)
		for _, expr := range []string{
			// "Sundar Pichai, CEO of Google"
			namePattern + `[,\s]+` + r + `\s+(?i:of)\s+` + c,
			// "Google CEO Sundar Pichai"
			c + `\s+` + r + `\s+` + namePattern,
			// "Sundar Pichai is the CEO of Google"
			namePattern + `\s+(?i:is)\s+(?:(?i:the)\s+)?` + r + `\s+(?i:of)\s+` + c,
			// "Sundar Pichai — CEO of Google"
			namePattern + `\s*[–—-]\s*` + r + `\s+(?i:of)\s+` + c,
			// "CEO: Sundar Pichai"
			r + `:\s*` + namePattern,
		} {
			rs = append(rs, regexp.MustCompile(expr))
		}
	}
	return rs
}
