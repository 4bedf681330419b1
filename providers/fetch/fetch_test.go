package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchPageStripsMarkup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		html := `
<!DOCTYPE html>
<html>
<head>
  <title>Leadership</title>
  <script>var tracking = "do not extract";</script>
  <style>body { color: red; }</style>
</head>
<body>
  <h1>Our Leadership</h1>
  <p><strong>Sundar Pichai</strong>, CEO of <a href="https://about.google">Google</a>.</p>
</body>
</html>`
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html)
	}))
	defer server.Close()

	f := New()
	text, err := f.FetchPage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}

	if !strings.Contains(text, "Sundar Pichai, CEO of Google") {
		t.Errorf("expected visible text preserved, got %q", text)
	}
	if strings.Contains(text, "tracking") || strings.Contains(text, "color: red") {
		t.Errorf("script/style content must be stripped, got %q", text)
	}
	if strings.Contains(text, "**") || strings.Contains(text, "](") {
		t.Errorf("markdown syntax must be flattened, got %q", text)
	}
	if strings.Contains(text, "\n") || strings.Contains(text, "  ") {
		t.Errorf("text must be single-spaced, got %q", text)
	}
}

func TestFetchPageNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New()
	_, err := f.FetchPage(context.Background(), server.URL)

	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if fe.Status != http.StatusNotFound {
		t.Errorf("expected status 404 recorded, got %d", fe.Status)
	}
}

func TestFetchPageNonTextContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4")
	}))
	defer server.Close()

	f := New()
	_, err := f.FetchPage(context.Background(), server.URL)

	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *Error for non-text content, got %v", err)
	}
}

func TestFetchPageEmptyURL(t *testing.T) {
	f := New()
	if _, err := f.FetchPage(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestFetchPageTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "<html><body><p>%s</p></body></html>", strings.Repeat("word ", 5000))
	}))
	defer server.Close()

	f := New()
	text, err := f.FetchPage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(text) > DefaultMaxChars {
		t.Errorf("expected text capped at %d chars, got %d", DefaultMaxChars, len(text))
	}
}

func TestFlatten(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"**Sundar Pichai**, CEO", "Sundar Pichai, CEO"},
		{"[Sundar Pichai](https://example.com) is the CEO", "Sundar Pichai is the CEO"},
		{"# Leadership\n\nSundar   Pichai", "Leadership Sundar Pichai"},
		{"![logo](https://example.com/logo.png) Team", "Team"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
	}
	for _, c := range cases {
		if got := Flatten(c.in); got != c.want {
			t.Errorf("Flatten(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
