package nerserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"

	"github.com/leofalp/rolefinder/internal/utils"
	"github.com/leofalp/rolefinder/providers/ner"
)

// DefaultTimeout is the default request timeout for entity extraction calls.
const DefaultTimeout = 10 * time.Second

// Client implements [ner.Provider] against an HTTP entity-extraction service
// (a spaCy-style model server). The service receives the raw text and answers
// with labelled entity spans; only PERSON-type spans are returned.
type Client struct {
	baseURL string
	client  *http.Client
}

// New constructs a Client for the service at baseURL.
func New(baseURL string) *Client {
	return NewWithClient(baseURL, &http.Client{Timeout: DefaultTimeout})
}

// NewWithClient constructs a Client using the supplied HTTP client.
func NewWithClient(baseURL string, client *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type extractRequest struct {
	Text string `json:"text"`
}

type entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type extractResponse struct {
	Entities []entity `json:"entities"`
}

// FindPersonSpans implements [ner.Provider]. Model servers occasionally emit
// sloppy JSON, so a strict unmarshal failure falls back to jsonrepair before
// giving up.
func (c *Client) FindPersonSpans(ctx context.Context, text string) ([]ner.Span, error) {
	body, err := json.Marshal(extractRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ents", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ner server status %d: %s", resp.StatusCode, utils.TruncateString(string(respBody), 200))
	}

	parsed, err := decode(respBody)
	if err != nil {
		return nil, err
	}

	var spans []ner.Span
	for _, e := range parsed.Entities {
		switch e.Label {
		case "PERSON", "PER":
			spans = append(spans, ner.Span{Text: e.Text, Start: e.Start, End: e.End})
		}
	}
	return spans, nil
}

func decode(respBody []byte) (extractResponse, error) {
	var parsed extractResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(respBody))
		if repairErr != nil {
			return parsed, fmt.Errorf("failed to unmarshal ner response and failed to repair JSON: unmarshal error: %w, repair error: %v", err, repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
			return parsed, fmt.Errorf("failed to unmarshal repaired ner response: %w", err)
		}
	}
	return parsed, nil
}
