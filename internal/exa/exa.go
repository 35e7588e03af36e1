// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package exa is the typed client for the upstream semantic search and
// answer API. It deserializes the provider's loosely-shaped responses into
// explicit CandidateDocument and OverviewAnswer structures at this boundary,
// so nothing downstream handles partial or untyped objects.
package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/evidence-engine/internal/httputil"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// apiBase is the search API root. Declared as a var so tests can substitute
// an httptest server.
var apiBase = "https://api.exa.ai"

// textMaxCharacters bounds the pre-fetched text the provider returns per hit.
const textMaxCharacters = 5000

// Client calls the upstream search/answer API. Construct one explicitly and
// pass it by reference; there is no package-level client state.
type Client struct {
	HTTP      *http.Client
	APIKey    string
	UserAgent string
}

// SearchRequest holds one search call's parameters. IncludeDomains and
// ExcludeDomains are mutually exclusive; the API rejects requests carrying
// both.
type SearchRequest struct {
	Query          string
	NumResults     int
	Since          string
	IncludeDomains []string
	ExcludeDomains []string

	// WithText asks the provider to pre-fetch page text for each hit.
	WithText bool
}

// Wire-format request structures.
type searchBody struct {
	Query              string        `json:"query"`
	NumResults         int           `json:"numResults"`
	Type               string        `json:"type"`
	UseAutoprompt      bool          `json:"useAutoprompt"`
	StartPublishedDate string        `json:"startPublishedDate,omitempty"`
	IncludeDomains     []string      `json:"includeDomains,omitempty"`
	ExcludeDomains     []string      `json:"excludeDomains,omitempty"`
	Contents           *contentsBody `json:"contents,omitempty"`
}

type contentsBody struct {
	Text textOptions `json:"text"`
}

type textOptions struct {
	MaxCharacters int `json:"maxCharacters"`
}

// Wire-format response structures.
type searchResponse struct {
	Results []searchHit `json:"results"`
}

type searchHit struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	PublishedDate string `json:"publishedDate"`
	Text          string `json:"text"`
}

// Search queries the provider and returns candidate documents in the
// provider's own relevance order; callers must not re-sort them. A request
// the API rejects as invalid is retried once with the text-contents option
// dropped; if the reduced request also fails, the error surfaces and the
// caller renders an empty result set.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]types.CandidateDocument, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if len(req.IncludeDomains) > 0 && len(req.ExcludeDomains) > 0 {
		return nil, fmt.Errorf("includeDomains and excludeDomains are mutually exclusive")
	}

	numResults := req.NumResults
	if numResults <= 0 {
		numResults = 8
	}

	body := searchBody{
		Query:              req.Query,
		NumResults:         numResults,
		Type:               "auto",
		UseAutoprompt:      true,
		StartPublishedDate: req.Since,
		IncludeDomains:     req.IncludeDomains,
		ExcludeDomains:     req.ExcludeDomains,
	}
	if req.WithText {
		body.Contents = &contentsBody{Text: textOptions{MaxCharacters: textMaxCharacters}}
	}

	var sr searchResponse
	err := c.post(ctx, "/search", body, &sr)
	if err != nil && req.WithText && isRejection(err) {
		// One retry with the reduced parameter set (no content fetch).
		body.Contents = nil
		err = c.post(ctx, "/search", body, &sr)
	}
	if err != nil {
		return nil, fmt.Errorf("search API: %w", err)
	}

	docs := make([]types.CandidateDocument, 0, len(sr.Results))
	for _, hit := range sr.Results {
		title := hit.Title
		if title == "" {
			title = hit.URL
		}
		docs = append(docs, types.CandidateDocument{
			URL:       hit.URL,
			Title:     title,
			Published: hit.PublishedDate,
			Text:      hit.Text,
		})
	}
	return docs, nil
}

type answerBody struct {
	Query              string   `json:"query"`
	Text               bool     `json:"text"`
	StartPublishedDate string   `json:"startPublishedDate,omitempty"`
	IncludeDomains     []string `json:"includeDomains,omitempty"`
	ExcludeDomains     []string `json:"excludeDomains,omitempty"`
}

type answerResponse struct {
	Answer    string `json:"answer"`
	Citations []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"citations"`
}

// Answer asks the provider's answer endpoint for a generated natural-
// language answer with citations, under the same domain policy as Search.
func (c *Client) Answer(ctx context.Context, req SearchRequest) (types.OverviewAnswer, error) {
	if req.Query == "" {
		return types.OverviewAnswer{}, fmt.Errorf("empty answer query")
	}
	if len(req.IncludeDomains) > 0 && len(req.ExcludeDomains) > 0 {
		return types.OverviewAnswer{}, fmt.Errorf("includeDomains and excludeDomains are mutually exclusive")
	}

	body := answerBody{
		Query:              req.Query,
		Text:               true,
		StartPublishedDate: req.Since,
		IncludeDomains:     req.IncludeDomains,
		ExcludeDomains:     req.ExcludeDomains,
	}

	var ar answerResponse
	if err := c.post(ctx, "/answer", body, &ar); err != nil {
		return types.OverviewAnswer{}, fmt.Errorf("answer API: %w", err)
	}

	out := types.OverviewAnswer{Answer: ar.Answer}
	for _, cit := range ar.Citations {
		out.Citations = append(out.Citations, types.Citation{Title: cit.Title, URL: cit.URL})
	}
	return out, nil
}

// statusError marks a non-2xx response so Search can recognize rejections.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API returned HTTP %d: %s", e.code, e.body)
}

// isRejection reports whether err is a client-side rejection worth one
// reduced-parameter retry. Auth failures and rate limits are not; the
// former cannot improve and the latter is already handled by backoff.
func isRejection(err error) bool {
	se, ok := err.(*statusError)
	if !ok {
		return false
	}
	switch se.code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return false
	}
	return se.code >= 400 && se.code < 500
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, body: string(bytes.TrimSpace(snippet))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
