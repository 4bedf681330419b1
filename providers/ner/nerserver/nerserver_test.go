package nerserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindPersonSpans(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ents" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"entities":[
			{"text":"Sundar Pichai","label":"PERSON","start":0,"end":13},
			{"text":"Google","label":"ORG","start":25,"end":31},
			{"text":"Ruth Porat","label":"PER","start":40,"end":50}
		]}`)
	}))
	defer server.Close()

	c := New(server.URL)
	spans, err := c.FindPersonSpans(context.Background(), "Sundar Pichai leads Google alongside Ruth Porat")
	if err != nil {
		t.Fatalf("FindPersonSpans failed: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 person spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "Sundar Pichai" || spans[0].Start != 0 || spans[0].End != 13 {
		t.Errorf("unexpected span: %+v", spans[0])
	}
	if spans[1].Text != "Ruth Porat" {
		t.Errorf("expected PER label accepted, got %+v", spans[1])
	}
}

func TestFindPersonSpansRepairsSloppyJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Single quotes and a trailing comma: invalid JSON that
		// jsonrepair can fix.
		fmt.Fprint(w, `{'entities':[{'text':'Sundar Pichai','label':'PERSON','start':0,'end':13},]}`)
	}))
	defer server.Close()

	c := New(server.URL)
	spans, err := c.FindPersonSpans(context.Background(), "Sundar Pichai")
	if err != nil {
		t.Fatalf("expected sloppy JSON to be repaired, got error: %v", err)
	}
	if len(spans) != 1 || spans[0].Text != "Sundar Pichai" {
		t.Fatalf("unexpected spans: %+v", spans)
	}
}

func TestFindPersonSpansServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.FindPersonSpans(context.Background(), "text"); err == nil {
		t.Fatal("expected error on server failure")
	}
}
