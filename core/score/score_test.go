package score

import (
	"sync"
	"testing"

	"github.com/leofalp/rolefinder/core/extract"
	"github.com/leofalp/rolefinder/core/validate"
)

func occurrence(name, url, domain string, base float64) validate.Validated {
	return validate.Validated{
		Candidate: extract.Candidate{Name: name, URL: url, Domain: domain, Method: extract.MethodPattern},
		BaseScore: base,
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Sundar Pichai", "  SUNDAR   PICHAI ", "sundar\tpichai"}
	for _, in := range inputs {
		once := Normalize(in)
		if Normalize(once) != once {
			t.Errorf("Normalize not idempotent for %q", in)
		}
		if once != "sundar pichai" {
			t.Errorf("Normalize(%q) = %q, want %q", in, once, "sundar pichai")
		}
	}
}

func TestIngestMergesCaseAndWhitespaceVariants(t *testing.T) {
	a := NewAggregator(0)
	a.Ingest(occurrence("Sundar Pichai", "u1", "a.com", 0.6))
	a.Ingest(occurrence("SUNDAR  PICHAI", "u2", "b.com", 0.6))
	a.Ingest(occurrence(" sundar pichai ", "u3", "c.com", 0.6))

	snap := a.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected one merged entry, got %d", len(snap))
	}
	if len(snap[0].Occurrences) != 3 {
		t.Errorf("expected 3 occurrences, got %d", len(snap[0].Occurrences))
	}
	if snap[0].Name != "Sundar Pichai" {
		t.Errorf("display name must keep first sighting's casing, got %q", snap[0].Name)
	}
}

func TestScoreMonotoneAndCapped(t *testing.T) {
	a := NewAggregator(0.1)
	prev := 0.0
	domains := []string{"a.com", "b.com", "c.com", "d.com", "e.com", "f.com"}
	for _, d := range domains {
		a.Ingest(occurrence("Jane Doe", "https://"+d, d, 0.9))
		s := a.Snapshot()[0].Score
		if s < prev {
			t.Fatalf("score decreased from %v to %v", prev, s)
		}
		if s > 1.0 {
			t.Fatalf("score exceeded cap: %v", s)
		}
		prev = s
	}
	if prev != 1.0 {
		t.Errorf("expected score to reach the cap, got %v", prev)
	}
}

func TestSameDomainRepeatAddsNoBonus(t *testing.T) {
	a := NewAggregator(0.05)
	a.Ingest(occurrence("Jane Doe", "u1", "a.com", 0.8))
	a.Ingest(occurrence("Jane Doe", "u2", "a.com", 0.8))

	if got := a.Snapshot()[0].Score; got != 0.8 {
		t.Errorf("second same-domain occurrence must add no bonus, got %v", got)
	}

	a.Ingest(occurrence("Jane Doe", "u3", "b.com", 0.7))
	want := 0.8 + 0.05
	if got := a.Snapshot()[0].Score; got != want {
		t.Errorf("distinct-domain occurrence must add bonus, got %v want %v", got, want)
	}
}

func TestIngestConcurrentNoLostUpdates(t *testing.T) {
	a := NewAggregator(0.01)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Ingest(occurrence("Jane Doe", "u", "same.com", 0.5))
		}()
	}
	wg.Wait()

	snap := a.Snapshot()
	if len(snap) != 1 || len(snap[0].Occurrences) != 50 {
		t.Fatalf("expected 50 serialized occurrences, got %+v", snap)
	}
}

func TestCorroborationScenario(t *testing.T) {
	// linkedin snippet and a news page corroborate the same name.
	a := NewAggregator(0)
	a.Ingest(occurrence("Sundar Pichai", "https://www.linkedin.com/in/sundarpichai", "linkedin.com", 0.95))
	a.Ingest(occurrence("Sundar Pichai", "https://www.reuters.com/article", "reuters.com", 0.80))

	snap := a.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected merged candidate, got %d", len(snap))
	}
	if snap[0].Score <= 0.95 {
		t.Errorf("corroboration bonus must lift score above 0.95, got %v", snap[0].Score)
	}

	res := NewSelector(0).Select(snap)
	if !res.Found {
		t.Fatal("expected a result")
	}
	if res.FirstName != "Sundar" || res.LastName != "Pichai" {
		t.Errorf("unexpected name split: %q %q", res.FirstName, res.LastName)
	}
	if res.Confidence <= 0.95 {
		t.Errorf("expected confidence > 0.95, got %v", res.Confidence)
	}
	if res.SourceURL != "https://www.linkedin.com/in/sundarpichai" {
		t.Errorf("source must be the highest-credibility occurrence, got %q", res.SourceURL)
	}
}

func TestSelectEmptyIsNotFound(t *testing.T) {
	res := NewSelector(0).Select(nil)
	if res.Found || res.Confidence != 0 {
		t.Fatalf("expected not-found terminal value, got %+v", res)
	}
}

func TestSelectBelowFloorIsNotFound(t *testing.T) {
	a := NewAggregator(0)
	a.Ingest(occurrence("John Smith", "https://random-blog.net/post", "random-blog.net", 0.6))

	res := NewSelector(0.7).Select(a.Snapshot())
	if res.Found {
		t.Fatalf("candidate below the floor must not be returned, got %+v", res)
	}
}

func TestSelectTieBreakFirstSeen(t *testing.T) {
	a := NewAggregator(0)
	a.Ingest(occurrence("Jane Doe", "u1", "a.com", 0.8))
	a.Ingest(occurrence("John Roe", "u2", "b.com", 0.8))

	res := NewSelector(0.7).Select(a.Snapshot())
	if res.FirstName != "Jane" || res.LastName != "Doe" {
		t.Errorf("tie must go to the earliest first-seen candidate, got %+v", res)
	}
}

func TestSelectThreePartName(t *testing.T) {
	a := NewAggregator(0)
	a.Ingest(occurrence("Mary J. Blige", "u1", "linkedin.com", 0.95))

	res := NewSelector(0).Select(a.Snapshot())
	if res.FirstName != "Mary J." || res.LastName != "Blige" {
		t.Errorf("split must be on the last whitespace boundary, got %q / %q", res.FirstName, res.LastName)
	}
}
