// Package ratings scrapes pollster names and letter grades from a ratings
// table.
package ratings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kittclouds/pollfinder/internal/fetch"
)

// ErrMismatch is returned when the page lists a different number of names
// and grades.
var ErrMismatch = errors.New("pollster and grade counts differ")

type Rating struct {
	Pollster string
	Grade    string
}

// Parse reads names from the data-mobile attribute of td.pollster cells and
// grades from the text of div.gradeText, pairing them in document order.
func Parse(r io.Reader) ([]Rating, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ratings page: %w", err)
	}

	var names, grades []string
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		switch {
		case n.DataAtom == atom.Td && hasClass(n, "pollster"):
			if name, ok := attr(n, "data-mobile"); ok {
				names = append(names, name)
			}
		case n.DataAtom == atom.Div && hasClass(n, "gradeText"):
			grades = append(grades, strings.TrimSpace(textOf(n)))
		}
	}

	if len(names) != len(grades) {
		return nil, fmt.Errorf("%w: %d names, %d grades", ErrMismatch, len(names), len(grades))
	}

	out := make([]Rating, len(names))
	for i := range names {
		out[i] = Rating{Pollster: names[i], Grade: grades[i]}
	}
	return out, nil
}

// Fetch downloads and parses a ratings page.
func Fetch(ctx context.Context, g fetch.Getter, url string) ([]Rating, error) {
	doc, err := g.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(doc.Body))
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	}
	return b.String()
}
