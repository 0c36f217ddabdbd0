package parse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	wsRe        = regexp.MustCompile(`\s+`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
	slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// Tags that end a line when flattening markup to text.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"br": true, "tr": true, "table": true, "section": true,
	"article": true, "header": true, "footer": true, "nav": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true,
	"svg": true, "head": true,
}

// HTMLToText flattens a fragment of markup into plain text, keeping
// line breaks at block boundaries so later line-based cleanup works.
func HTMLToText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return NormalizeWhitespace(fragment)
	}
	var b strings.Builder
	for _, n := range doc.Nodes {
		flattenNode(&b, n)
	}
	return tidyLines(b.String())
}

// SelectionText is HTMLToText for an already-parsed selection.
func SelectionText(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	var b strings.Builder
	for _, n := range sel.Nodes {
		flattenNode(&b, n)
	}
	return tidyLines(b.String())
}

func flattenNode(b *strings.Builder, n *html.Node) {
	if n == nil {
		return
	}
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipTags[n.Data] {
			return
		}
		if blockTags[n.Data] {
			b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flattenNode(b, c)
	}
	if n.Type == html.ElementNode && blockTags[n.Data] {
		b.WriteString("\n")
	}
}

func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		out = append(out, NormalizeWhitespace(ln))
	}
	s = strings.Join(out, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// NormalizeWhitespace collapses runs of whitespace to single spaces.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// Lines a description never needs: chrome, share widgets, CTA buttons.
var descriptionNoise = []string{
	"apply now", "apply for this job", "quick apply", "save job",
	"share this job", "share job", "print this job", "report this job",
	"back to search", "back to results", "sign in", "log in", "register",
	"create alert", "email me jobs like this", "facebook", "twitter",
	"linkedin", "whatsapp", "cookie", "privacy policy", "terms of use",
	"similar jobs", "related jobs", "skip to content", "skip to main",
}

// CleanDescription drops navigation and share-widget lines from a
// flattened description and collapses leftover blank runs.
func CleanDescription(s string) string {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for _, ln := range lines {
		trimmed := NormalizeWhitespace(ln)
		if trimmed == "" {
			kept = append(kept, "")
			continue
		}
		lower := strings.ToLower(trimmed)
		noisy := false
		for _, n := range descriptionNoise {
			if lower == n || (len(trimmed) < 60 && strings.Contains(lower, n)) {
				noisy = true
				break
			}
		}
		if noisy {
			continue
		}
		kept = append(kept, trimmed)
	}
	s = strings.Join(kept, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Slugify produces a URL-safe slug from a free-text label.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStripRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
