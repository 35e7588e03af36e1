// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PreviewImage fetches pageURL and returns its preview image: the og:image
// or twitter:image meta content when present, otherwise the page favicon
// resolved to an absolute URL. Returns "" when the page is unreachable or
// declares no image.
func (f *Fetcher) PreviewImage(ctx context.Context, pageURL string) string {
	raw := f.Fetch(ctx, pageURL)
	if raw == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return ""
	}

	if img := findMetaImage(doc); img != "" {
		return resolveRef(pageURL, img)
	}
	if icon := findFavicon(doc); icon != "" {
		return resolveRef(pageURL, icon)
	}
	return ""
}

func findMetaImage(doc *html.Node) string {
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Meta {
			var key, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "property", "name":
					key = strings.ToLower(a.Val)
				case "content":
					content = a.Val
				}
			}
			if (key == "og:image" || key == "twitter:image") && content != "" {
				found = content
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func findFavicon(doc *html.Node) string {
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Link {
			var rel, href string
			for _, a := range n.Attr {
				switch a.Key {
				case "rel":
					rel = strings.ToLower(a.Val)
				case "href":
					href = a.Val
				}
			}
			if strings.Contains(rel, "icon") && href != "" {
				found = href
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

// resolveRef makes ref absolute against base. A ref that is already absolute
// is returned as-is; an unparsable base or ref yields "".
func resolveRef(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if r.IsAbs() {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return b.ResolveReference(r).String()
}
