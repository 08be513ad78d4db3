package text

import (
	"strings"

	"github.com/kittclouds/pollfinder/pkg/scanner/chunker"
)

// Sentences segments running text with the Punkt model. Abbreviations
// ("Mr.", "U.S.") and decimals do not end a sentence.
func Sentences(text string) []string {
	var out []string
	for _, s := range chunker.SplitSentences(text) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
