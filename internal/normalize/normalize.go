// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts raw fetched markup into clean, whitespace-
// collapsed plaintext suitable for lexical scoring. It is total over its
// input domain: malformed or empty markup yields an empty string, never an
// error.
package normalize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// mainContentMinChars is the minimum amount of paragraph text a container
// must hold before the readability pass trusts it as the article body.
const mainContentMinChars = 140

// Clean extracts visible plaintext from raw markup. It first attempts a
// readability-style main-content pass (densest paragraph container, with
// navigation and boilerplate subtrees skipped); when that finds nothing
// substantial it falls back to collecting all visible text from the whole
// document. Script, style, and noscript content is always removed and
// whitespace runs collapse to single spaces.
func Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return ""
	}

	if body := mainContent(doc); body != nil {
		if text := collapse(collectText(body)); text != "" {
			return text
		}
	}
	return collapse(collectText(doc))
}

// mainContent returns the container element holding the most paragraph text,
// or nil when no container passes the minimum. Paragraph text is attributed
// to the nearest article/main/section/div ancestor, so chrome wrapped around
// the article body does not dilute its score.
func mainContent(doc *html.Node) *html.Node {
	scores := make(map[*html.Node]int)

	var walk func(n, candidate *html.Node)
	walk = func(n, candidate *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript,
				atom.Nav, atom.Header, atom.Footer, atom.Aside, atom.Form:
				return
			case atom.Article, atom.Main, atom.Section, atom.Div:
				candidate = n
			case atom.P:
				if candidate != nil {
					scores[candidate] += len(collectText(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, candidate)
		}
	}
	walk(doc, nil)

	var best *html.Node
	bestScore := mainContentMinChars
	for n, score := range scores {
		if score > bestScore {
			best, bestScore = n, score
		}
	}
	return best
}

// collectText gathers all visible text in a subtree, skipping script, style,
// and noscript nodes.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// collapse reduces every whitespace run (including newlines) to one space
// and trims the ends. It is idempotent on already-clean text.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
