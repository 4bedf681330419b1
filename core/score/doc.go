// Package score merges validated name candidates across sources and picks
// the final answer. The [Aggregator] keys entries by normalised name and
// rewards corroboration across distinct domains; the [Selector] applies the
// confidence floor and converts the winner into a [Result].
package score
