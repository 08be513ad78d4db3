// Package text turns fetched HTML into candidate sentences for extraction.
package text

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// hiddenParents hold text that never renders as body copy.
var hiddenParents = map[string]bool{
	"style":    true,
	"script":   true,
	"noscript": true,
	"head":     true,
	"title":    true,
	"meta":     true,
}

// VisibleText returns the text nodes of an HTML document in document order.
// A node is dropped when its direct parent is a hidden element or the
// document root; comments are never text nodes. Whitespace-only nodes are
// skipped, other nodes are returned untrimmed.
func VisibleText(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode && isVisible(n) && strings.TrimSpace(n.Data) != "" {
			out = append(out, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return out, nil
}

func isVisible(n *html.Node) bool {
	p := n.Parent
	if p == nil || p.Type == html.DocumentNode {
		return false
	}
	return !(p.Type == html.ElementNode && hiddenParents[p.Data])
}
