package pollster

import "github.com/kittclouds/pollfinder/pkg/scanner/chunker"

// IsPollPhrase reports whether a noun phrase denotes a poll or survey.
// Bare tokens never qualify; inside a phrase any token may be the head.
func IsPollPhrase(e chunker.Element) bool {
	if !e.IsPhrase() {
		return false
	}
	for _, t := range e.Tokens {
		if IsPollHead(t) {
			return true
		}
	}
	return false
}

// FindPollPhrase returns the index of the first poll phrase in the sentence.
func FindPollPhrase(s chunker.Sentence) (int, bool) {
	for i, e := range s {
		if IsPollPhrase(e) {
			return i, true
		}
	}
	return 0, false
}
