package pipeline

import (
	"strings"

	"github.com/kittclouds/pollfinder/internal/dataset"
	"github.com/kittclouds/pollfinder/internal/text"
	"github.com/kittclouds/pollfinder/pkg/scanner/pollster"
	"github.com/kittclouds/pollfinder/pkg/scanner/syntax"
)

// Comparison is how both extraction paths fared on one labelled case.
type Comparison struct {
	Text     string
	Expected string
	// Regex lists every capture, in pattern order.
	Regex []string
	Chunk string
}

// RegexHit reports whether any regex capture equals the label.
func (c Comparison) RegexHit() bool {
	for _, r := range c.Regex {
		if r == c.Expected {
			return true
		}
	}
	return false
}

// ChunkHit reports whether the chunk scanner returned the label.
func (c Comparison) ChunkHit() bool {
	return c.Chunk != "" && c.Chunk == c.Expected
}

// Report summarises a comparison run. The false counts are negative cases
// on which a path still produced a name.
type Report struct {
	Cases      []Comparison
	RegexHits  int
	ChunkHits  int
	Negatives  int
	RegexFalse int
	ChunkFalse int
}

// Classifier runs both extraction paths over free text.
type Classifier struct {
	Finder *pollster.Finder
	Syntax *syntax.SyntaxScanner
}

func NewClassifier() *Classifier {
	return &Classifier{Finder: pollster.NewFinder(), Syntax: syntax.New()}
}

// Compare runs both paths over labelled cases.
func (c *Classifier) Compare(positive []dataset.Positive, negative []string) *Report {
	r := &Report{Cases: make([]Comparison, 0, len(positive)), Negatives: len(negative)}

	for _, p := range positive {
		cmp := Comparison{
			Text:     p.Text,
			Expected: p.Pollster,
			Regex:    c.regex(p.Text),
			Chunk:    c.chunk(p.Text),
		}
		if cmp.RegexHit() {
			r.RegexHits++
		}
		if cmp.ChunkHit() {
			r.ChunkHits++
		}
		r.Cases = append(r.Cases, cmp)
	}

	for _, t := range negative {
		if len(c.regex(t)) > 0 {
			r.RegexFalse++
		}
		if c.chunk(t) != "" {
			r.ChunkFalse++
		}
	}
	return r
}

func (c *Classifier) regex(s string) []string {
	var out []string
	for _, m := range c.Syntax.Scan(s) {
		out = append(out, strings.TrimSpace(m.Pollster))
	}
	return out
}

// chunk returns the first name found in any sentence of s.
func (c *Classifier) chunk(s string) string {
	for _, sent := range text.Sentences(text.Fold(s)) {
		if name, ok := c.Finder.FindText(sent); ok {
			return name
		}
	}
	return ""
}
