// Package duckduckgo implements the primary search backend by scraping the
// DuckDuckGo lite HTML interface. The lite page needs no API key and exposes
// result URLs, titles, and snippets in a simple table layout. A global
// one-query-per-second gate keeps scraping polite across goroutines.
package duckduckgo
