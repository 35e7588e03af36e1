// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine is the calling layer around the scoring kernel: it expands
// the query, calls the upstream search collaborator, fans the per-document
// work (conditional fetch, summarization, scoring, classification) out over
// a bounded worker pool, and re-joins results by index so the provider's
// relevance order survives.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pdiddy/evidence-engine/internal/exa"
	"github.com/pdiddy/evidence-engine/internal/expand"
	"github.com/pdiddy/evidence-engine/internal/normalize"
	"github.com/pdiddy/evidence-engine/internal/score"
	"github.com/pdiddy/evidence-engine/internal/summarize"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// SearchClient is the upstream collaborator contract the engine consumes.
// *exa.Client implements it; tests substitute a fake.
type SearchClient interface {
	Search(ctx context.Context, req exa.SearchRequest) ([]types.CandidateDocument, error)
	Answer(ctx context.Context, req exa.SearchRequest) (types.OverviewAnswer, error)
}

// cacheKey identifies one cached search response.
type cacheKey struct {
	query string
	count int
	since string
	mode  types.Mode
}

// Engine runs evidence searches. Construct with New and share freely; the
// kernel packages it calls are stateless and the cache is safe for
// concurrent use.
type Engine struct {
	client  SearchClient
	fetcher *normalize.Fetcher
	workers int
	cache   *expirable.LRU[cacheKey, []types.ResultRecord]
}

// New builds an Engine around the given collaborator client and fetcher.
func New(client SearchClient, fetcher *normalize.Fetcher, cfg types.EngineConfig) *Engine {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = 64
	}
	return &Engine{
		client:  client,
		fetcher: fetcher,
		workers: workers,
		cache:   expirable.NewLRU[cacheKey, []types.ResultRecord](size, nil, cfg.CacheTTL),
	}
}

// SearchOutput holds one search's records plus the query forms that
// produced them.
type SearchOutput struct {
	Query         string
	ExpandedQuery string
	Records       []types.ResultRecord
	FromCache     bool
}

// Search runs the full pipeline for query: booster composition, synonym
// expansion, upstream search, and per-document scoring. Records come back in
// the provider's relevance order; the engine filters duplicate URLs and
// annotates, never re-sorts.
func (e *Engine) Search(ctx context.Context, query string, cfg types.SearchConfig) (SearchOutput, error) {
	composed := expand.Compose(query, cfg.Boosters)
	if composed == "" {
		return SearchOutput{}, fmt.Errorf("query is empty: provide a question or booster terms")
	}
	expanded := expand.Expand(composed)

	out := SearchOutput{Query: composed, ExpandedQuery: expanded}

	key := cacheKey{query: expanded, count: cfg.MaxResults, since: cfg.Since, mode: cfg.Mode}
	if records, ok := e.cache.Get(key); ok {
		out.Records = records
		out.FromCache = true
		return out, nil
	}

	req := exa.SearchRequest{
		Query:      expanded,
		NumResults: cfg.MaxResults,
		Since:      cfg.Since,
		WithText:   true,
	}
	applyDomainPolicy(&req, cfg.Mode)

	docs, err := e.client.Search(ctx, req)
	if err != nil {
		return SearchOutput{}, err
	}

	out.Records = e.process(ctx, composed, dedupeByURL(docs), cfg)
	e.cache.Add(key, out.Records)
	return out, nil
}

// applyDomainPolicy sets exactly one of the include/exclude lists; the
// upstream API rejects requests carrying both.
func applyDomainPolicy(req *exa.SearchRequest, mode types.Mode) {
	switch mode {
	case types.ModeClinical:
		req.IncludeDomains = score.TrustedDomains
	default:
		req.ExcludeDomains = score.LowQualityDomains
	}
}

// dedupeByURL drops later occurrences of a URL, keeping provider order.
func dedupeByURL(docs []types.CandidateDocument) []types.CandidateDocument {
	seen := make(map[string]bool, len(docs))
	deduped := docs[:0:0]
	for _, d := range docs {
		if d.URL != "" && seen[d.URL] {
			continue
		}
		seen[d.URL] = true
		deduped = append(deduped, d)
	}
	return deduped
}

// process scores every candidate document. Documents are independent, so the
// work fans out across workers; the records slice is indexed by the
// document's original position to preserve upstream order.
func (e *Engine) process(ctx context.Context, query string, docs []types.CandidateDocument, cfg types.SearchConfig) []types.ResultRecord {
	records := make([]types.ResultRecord, len(docs))

	workers := e.workers
	if workers > len(docs) {
		workers = len(docs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i] = e.processOne(ctx, query, docs[i], cfg)
			}
		}()
	}
	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return records
}

func (e *Engine) processOne(ctx context.Context, query string, doc types.CandidateDocument, cfg types.SearchConfig) types.ResultRecord {
	text := doc.Text
	if text == "" && cfg.FetchMissingText && e.fetcher != nil {
		text = e.fetcher.FetchClean(ctx, doc.URL)
	}

	k := cfg.SummarySentences
	if k <= 0 {
		k = 5
	}

	rec := types.ResultRecord{
		Title:     doc.Title,
		URL:       doc.URL,
		Published: doc.Published,
		Type:      score.Classify(doc.Title, doc.URL),
		Score:     score.Confidence(query, text, doc.URL, doc.Published, cfg.Mode),
		Summary:   strings.Join(summarize.TopK(query, text, k), " "),
	}
	if cfg.LookupImages && e.fetcher != nil {
		rec.ImageURL = e.fetcher.PreviewImage(ctx, doc.URL)
	}
	return rec
}

// Overview asks the answer collaborator for a generated overview under the
// same domain policy and truncates the citation list to cfg.MaxCitations.
func (e *Engine) Overview(ctx context.Context, query string, cfg types.SearchConfig) (types.OverviewAnswer, error) {
	composed := expand.Compose(query, cfg.Boosters)
	if composed == "" {
		return types.OverviewAnswer{}, fmt.Errorf("query is empty")
	}

	req := exa.SearchRequest{Query: composed, Since: cfg.Since}
	applyDomainPolicy(&req, cfg.Mode)

	ans, err := e.client.Answer(ctx, req)
	if err != nil {
		return types.OverviewAnswer{}, err
	}

	max := cfg.MaxCitations
	if max <= 0 {
		max = 10
	}
	if len(ans.Citations) > max {
		ans.Citations = ans.Citations[:max]
	}
	return ans, nil
}
