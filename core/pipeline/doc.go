// Package pipeline orchestrates the name-resolution run: query expansion,
// concurrent multi-source retrieval, snippet-first candidate extraction,
// validation, cross-source score aggregation, and final selection.
//
// Per-source failures are recoverable and only logged; the run as a whole
// fails solely on invalid input. An exhausted deadline drains in-flight work
// and selects from whatever evidence was aggregated.
package pipeline
