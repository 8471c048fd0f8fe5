package savant

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Clip URLs also appear inside inline JSON, which the DOM walk cannot see.
var clipURLPattern = regexp.MustCompile(`(?i)https://sporty-clips\.mlb\.com/[^"'\s<>\\]*\.mp4`)

// extractVideoURLs returns mp4 URLs found on a sporty-videos page in document order, deduplicated.
func extractVideoURLs(body []byte) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if !isMP4URL(raw) {
			return
		}
		if _, ok := seen[raw]; ok {
			return
		}
		seen[raw] = struct{}{}
		out = append(out, raw)
	}

	if doc, err := html.Parse(bytes.NewReader(body)); err == nil {
		walkMedia(doc, add)
	}
	for _, m := range clipURLPattern.FindAllString(string(body), -1) {
		add(m)
	}
	return out
}

func walkMedia(n *html.Node, add func(string)) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Video, atom.Source:
			add(attr(n, "src"))
			add(attr(n, "data-src"))
		case atom.A:
			add(attr(n, "href"))
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkMedia(c, add)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isMP4URL(raw string) bool {
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "https://") && !strings.HasPrefix(lower, "http://") {
		return false
	}
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	return strings.HasSuffix(lower, ".mp4")
}
