package ner

import "context"

// Span is a person-name span located in a text by a [Provider]. Start and End
// are byte offsets into the analysed text.
type Span struct {
	Text  string
	Start int
	End   int
}

// Provider is the optional named-entity-recognition capability. Absence of a
// provider must not change extraction correctness, only recall, so the
// extractor treats a missing provider as [Noop] rather than branching.
type Provider interface {
	FindPersonSpans(ctx context.Context, text string) ([]Span, error)
}

// Noop is the no-op strategy used when no NER capability is configured.
type Noop struct{}

// FindPersonSpans implements [Provider] by finding nothing.
func (Noop) FindPersonSpans(ctx context.Context, text string) ([]Span, error) {
	return nil, nil
}
