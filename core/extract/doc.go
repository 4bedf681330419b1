// Package extract cuts raw name candidates out of unstructured snippet and
// page text. An ordered rule set matches name-role co-occurrence shapes
// anchored to the request's role variants; an optional NER capability
// contributes additional candidates, which are merged rather than
// prioritised. Validation of candidates happens downstream.
package extract
