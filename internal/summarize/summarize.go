// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize selects the most query-relevant sentences from a
// document using BM25 over the document's own sentences: each sentence is a
// mini-document and the sentence collection is the corpus.
package summarize

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Okapi BM25 parameters.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

var wordRe = regexp.MustCompile(`\w+`)

// Tokenize lowercases s and returns its word tokens (alphanumeric runs).
func Tokenize(s string) []string {
	return wordRe.FindAllString(strings.ToLower(s), -1)
}

// SplitSentences splits text on sentence-terminal punctuation (. ! ?)
// followed by whitespace. This heuristic mis-splits abbreviations and
// decimal numbers; that is an accepted limitation of the lexical model, not
// something to compensate for.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			if i+1 < len(runes) && isSpace(runes[i+1]) {
				if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
					sentences = append(sentences, s)
				}
				for i+1 < len(runes) && isSpace(runes[i+1]) {
					i++
				}
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// TopK returns at most k sentences of text, highest BM25 relevance to query
// first. Ties resolve to the earlier sentence. Sentences are returned
// verbatim. Empty text, an empty query token set, or k <= 0 all yield nil.
func TopK(query, text string, k int) []string {
	if k <= 0 || text == "" {
		return nil
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	queryTokens := Tokenize(query)
	scores := bm25Scores(queryTokens, sentences)

	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	top := make([]string, k)
	for i := 0; i < k; i++ {
		top[i] = sentences[order[i]]
	}
	return top
}

// bm25Scores computes an Okapi BM25 score per sentence for the query tokens.
func bm25Scores(queryTokens []string, sentences []string) []float64 {
	n := len(sentences)

	docs := make([]map[string]int, n)
	docLens := make([]float64, n)
	docFreq := make(map[string]int)
	var totalLen float64

	for i, s := range sentences {
		tf := make(map[string]int)
		for _, tok := range Tokenize(s) {
			tf[tok]++
		}
		docs[i] = tf
		docLens[i] = 0
		for _, c := range tf {
			docLens[i] += float64(c)
		}
		totalLen += docLens[i]
		for tok := range tf {
			docFreq[tok]++
		}
	}

	avgLen := totalLen / float64(n)
	if avgLen == 0 {
		avgLen = 1
	}

	scores := make([]float64, n)
	for _, q := range queryTokens {
		df := docFreq[q]
		if df == 0 {
			continue
		}
		idf := math.Log((float64(n-df)+0.5)/(float64(df)+0.5) + 1)
		for i := 0; i < n; i++ {
			tf := float64(docs[i][q])
			if tf == 0 {
				continue
			}
			norm := tf * (bm25K1 + 1) / (tf + bm25K1*(1-bm25B+bm25B*docLens[i]/avgLen))
			scores[i] += idf * norm
		}
	}
	return scores
}
