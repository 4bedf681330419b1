// Package search defines the search-backend boundary of the rolefinder
// pipeline. A [Provider] turns a query string into URL/snippet results; the
// [Fallback] combinator layers a secondary backend behind a primary one and
// deduplicates results by URL.
//
// Concrete backends live in the subpackages duckduckgo and brave.
package search
