package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leofalp/rolefinder/core/pipeline"
	"github.com/leofalp/rolefinder/core/query"
	"github.com/leofalp/rolefinder/core/score"
)

type stubResolver struct {
	result score.Result
	err    error
	got    query.RoleQuery
}

func (s *stubResolver) Resolve(ctx context.Context, q query.RoleQuery) (score.Result, error) {
	s.got = q
	return s.result, s.err
}

func TestHandleSearchFound(t *testing.T) {
	resolver := &stubResolver{result: score.Result{
		Found:      true,
		FirstName:  "Sundar",
		LastName:   "Pichai",
		Confidence: 1.0,
		SourceURL:  "https://www.linkedin.com/in/sundarpichai",
	}}
	server := httptest.NewServer(New(resolver, nil).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/search?company=Google&role=CEO")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.FirstName == nil || *body.FirstName != "Sundar" {
		t.Errorf("unexpected firstName: %v", body.FirstName)
	}
	if body.LastName == nil || *body.LastName != "Pichai" {
		t.Errorf("unexpected lastName: %v", body.LastName)
	}
	if body.Confidence != 1.0 || !body.Found {
		t.Errorf("unexpected confidence/found: %+v", body)
	}
	if resolver.got.Company != "Google" || resolver.got.Role != "CEO" {
		t.Errorf("resolver received %+v", resolver.got)
	}
}

func TestHandleSearchNotFound(t *testing.T) {
	server := httptest.NewServer(New(&stubResolver{result: score.NotFound()}, nil).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/search?company=Google&role=CEO")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("not-found is a valid answer, expected 200, got %d", resp.StatusCode)
	}
	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Found || body.Confidence != 0 {
		t.Errorf("expected empty answer, got %+v", body)
	}
	if body.FirstName != nil || body.LastName != nil || body.SourceURL != nil {
		t.Errorf("name fields must be null on not-found, got %+v", body)
	}
}

func TestHandleSearchInvalidInput(t *testing.T) {
	server := httptest.NewServer(New(&stubResolver{err: pipeline.ErrInvalidInput}, nil).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/search?company=&role=CEO")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing company, got %d", resp.StatusCode)
	}
}
