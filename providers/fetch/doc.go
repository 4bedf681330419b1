// Package fetch retrieves web pages and reduces them to visible plain text
// for candidate extraction. HTML is first converted to Markdown, which drops
// scripts, styles, and other non-content markup, and the Markdown is then
// flattened to single-spaced text via [Flatten].
//
// Retrieval failures are reported as [*Error] and are recoverable by design:
// the pipeline skips the source and carries on.
package fetch
