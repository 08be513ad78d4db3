package text

import (
	"slices"
	"strings"

	"github.com/kittclouds/pollfinder/pkg/scanner/chunker"
)

// Candidate is a sentence that mentions the trigger word.
type Candidate struct {
	Text  string
	Words []string
}

// CandidateSentences keeps the blocks longer than minLen, folds and splits
// them into sentences, and returns those whose tokens include trigger.
// The trigger must appear as a whole token: "polls" does not match "poll".
func CandidateSentences(blocks []string, minLen int, trigger string) []Candidate {
	long := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if len(b) > minLen {
			long = append(long, strings.TrimSpace(b))
		}
	}
	if len(long) == 0 {
		return nil
	}

	document := Fold(strings.Join(long, " "))

	var out []Candidate
	for _, s := range Sentences(document) {
		words := chunker.Tokenize(s)
		if slices.Contains(words, trigger) {
			out = append(out, Candidate{Text: s, Words: words})
		}
	}
	return out
}
