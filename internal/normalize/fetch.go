// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"context"
	"io"
	"net/http"
	"time"
)

// fetchBodyLimit caps how much of a page body is read. Lexical scoring only
// needs the leading content; unbounded reads would let one slow host stall a
// whole batch.
const fetchBodyLimit = 2 << 20

// Fetcher downloads pages whose text the upstream search did not pre-fetch.
// Every failure mode (timeout, non-2xx status, connection error) degrades to
// an empty string; transport errors never cross this boundary.
type Fetcher struct {
	Client    *http.Client
	UserAgent string

	// Timeout bounds each fetch. Zero means 8 seconds. There are no retries;
	// one timeout-then-give-up attempt per document.
	Timeout time.Duration
}

// Fetch returns the raw body of url, or "" on any failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) string {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, fetchBodyLimit))
	if err != nil {
		return ""
	}
	return string(body)
}

// FetchClean fetches url and normalizes the body in one step.
func (f *Fetcher) FetchClean(ctx context.Context, url string) string {
	return Clean(f.Fetch(ctx, url))
}
