// Package extractor derives the unread-message count from a rendered page.
//
// The extractor only ever sees page markup and a Sink that accepts counts.
// It has no access to the tray, the alert player or the notifier.
package extractor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// UnreadLabelSubstring matches [aria-label*="unread"].
	UnreadLabelSubstring = "unread"
	// UnreadTestID matches [data-testid="messenger_unread_count"].
	UnreadTestID = "messenger_unread_count"
)

// CountHTML parses an HTML document and returns the sum of all unread badges.
func CountHTML(r io.Reader) (int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("failed to parse document: %w", err)
	}
	return CountNode(doc), nil
}

// CountNode sums the badge values of every matching element under n.
// Nested matches are each counted with their own full text.
func CountNode(n *html.Node) int {
	total := 0
	for _, text := range BadgeTexts(n) {
		if v, ok := ParseBadgeText(text); ok {
			total += v
		}
	}
	return total
}

// BadgeTexts returns the visible text of every matching element in
// document order.
func BadgeTexts(n *html.Node) []string {
	var texts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isBadge(n) {
			texts = append(texts, innerText(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return texts
}

func isBadge(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		switch a.Key {
		case "aria-label":
			if strings.Contains(a.Val, UnreadLabelSubstring) {
				return true
			}
		case "data-testid":
			if a.Val == UnreadTestID {
				return true
			}
		}
	}
	return false
}

// innerText concatenates descendant text, skipping non-rendered elements.
func innerText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Template, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// ParseBadgeText strips every non-digit character from text and parses
// the remainder as a decimal integer. It reports false when no digits
// remain or the value does not fit an int.
func ParseBadgeText(text string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return v, true
}
