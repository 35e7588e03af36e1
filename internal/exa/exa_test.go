// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exa

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/evidence-engine/internal/httputil"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

// withServer points apiBase at a test server for the duration of a test.
func withServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	old := apiBase
	apiBase = srv.URL
	t.Cleanup(func() {
		apiBase = old
		srv.Close()
	})
	return srv
}

func TestSearchDecodesResults(t *testing.T) {
	var gotBody map[string]any
	srv := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		if key := r.Header.Get("x-api-key"); key != "test-key" {
			t.Errorf("x-api-key = %q", key)
		}
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)

		io.WriteString(w, `{"results":[
			{"url":"https://nih.gov/a","title":"First","publishedDate":"2023-01-15","text":"body text"},
			{"url":"https://bmj.com/b","title":"","publishedDate":"2019"},
			{"url":"https://who.int/c","title":"Third"}
		]}`)
	})

	c := &Client{HTTP: srv.Client(), APIKey: "test-key", UserAgent: "evidence-engine/test"}
	docs, err := c.Search(context.Background(), SearchRequest{
		Query:          "ckd guideline",
		NumResults:     3,
		Since:          "2019-01-01",
		IncludeDomains: []string{"nih.gov"},
		WithText:       true,
	})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("len(docs) = %d, want 3", len(docs))
	}
	// Provider order is preserved.
	if docs[0].URL != "https://nih.gov/a" || docs[2].URL != "https://who.int/c" {
		t.Errorf("order not preserved: %v", docs)
	}
	if docs[0].Text != "body text" || docs[0].Published != "2023-01-15" {
		t.Errorf("first doc fields = %+v", docs[0])
	}
	// Missing title falls back to URL.
	if docs[1].Title != "https://bmj.com/b" {
		t.Errorf("title fallback = %q", docs[1].Title)
	}

	if gotBody["startPublishedDate"] != "2019-01-01" {
		t.Errorf("startPublishedDate = %v", gotBody["startPublishedDate"])
	}
	if _, ok := gotBody["contents"]; !ok {
		t.Error("request missing contents option despite WithText")
	}
	if _, ok := gotBody["excludeDomains"]; ok {
		t.Error("excludeDomains must be omitted when unset")
	}
}

func TestSearchDomainPolicyMutuallyExclusive(t *testing.T) {
	c := &Client{}
	_, err := c.Search(context.Background(), SearchRequest{
		Query:          "q",
		IncludeDomains: []string{"nih.gov"},
		ExcludeDomains: []string{"reddit.com"},
	})
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("err = %v, want mutual-exclusivity rejection", err)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := &Client{}
	if _, err := c.Search(context.Background(), SearchRequest{}); err == nil {
		t.Error("Search(empty query) should fail")
	}
}

func TestSearchRetriesOnceWithReducedParams(t *testing.T) {
	var bodies []string
	srv := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(data))
		if strings.Contains(string(data), "contents") {
			http.Error(w, `{"error":"invalid filter combination"}`, http.StatusBadRequest)
			return
		}
		io.WriteString(w, `{"results":[{"url":"https://nih.gov/a","title":"A"}]}`)
	})

	c := &Client{HTTP: srv.Client(), APIKey: "k"}
	docs, err := c.Search(context.Background(), SearchRequest{Query: "q", WithText: true})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
	if len(bodies) != 2 {
		t.Fatalf("expected exactly one reduced retry, got %d requests", len(bodies))
	}
	if strings.Contains(bodies[1], "contents") {
		t.Errorf("retry body still carries contents: %s", bodies[1])
	}
}

func TestSearchNoRetryOnAuthFailure(t *testing.T) {
	var calls int
	srv := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad key", http.StatusUnauthorized)
	})

	c := &Client{HTTP: srv.Client(), APIKey: "bad"}
	_, err := c.Search(context.Background(), SearchRequest{Query: "q", WithText: true})
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on auth failure)", calls)
	}
}

func TestAnswer(t *testing.T) {
	srv := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/answer" {
			t.Errorf("path = %q, want /answer", r.URL.Path)
		}
		io.WriteString(w, `{"answer":"SGLT2 inhibitors slow CKD progression.",
			"citations":[{"title":"KDIGO 2023","url":"https://kdigo.org/g"},
			             {"title":"DAPA-CKD","url":"https://nejm.org/d"}]}`)
	})

	c := &Client{HTTP: srv.Client(), APIKey: "k"}
	ans, err := c.Answer(context.Background(), SearchRequest{Query: "sglt2 ckd"})
	if err != nil {
		t.Fatalf("Answer() error: %v", err)
	}
	if ans.Answer == "" || len(ans.Citations) != 2 {
		t.Fatalf("answer = %+v", ans)
	}
	want := types.Citation{Title: "KDIGO 2023", URL: "https://kdigo.org/g"}
	if ans.Citations[0] != want {
		t.Errorf("first citation = %+v, want %+v", ans.Citations[0], want)
	}
}
