// Package brave implements a search backend on the Brave Search API. It is
// wired in as the secondary backend behind DuckDuckGo and is only consulted
// when the primary fails or returns nothing. Requires an API key.
package brave
