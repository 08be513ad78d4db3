// Package pollster extracts the organisation credited with a poll from a
// chunked sentence.
//
// The first noun phrase headed by "poll" or "survey" becomes the anchor.
// From there the sentence is scanned backward and forward for a run of
// proper nouns, and the nearer run wins. Everything is pure and stateless,
// so a Finder may be shared across goroutines as long as its Trace is safe
// for concurrent use.
package pollster

import "github.com/kittclouds/pollfinder/pkg/scanner/chunker"

// FindPollster resolves the first poll phrase of a chunked sentence.
// Later poll phrases are never consulted, even when the first yields nothing.
func FindPollster(s chunker.Sentence) (string, bool) {
	return findPollster(s, nil)
}

func findPollster(s chunker.Sentence, trace TraceFunc) (string, bool) {
	anchor, ok := FindPollPhrase(s)
	if !ok {
		return "", false
	}
	trace.emit(Backward, anchor, s[anchor], NoRunStarted, ActionPollPhrase)
	return resolve(s, anchor, trace)
}

// Finder runs raw text through a chunking pipeline and extracts pollsters.
type Finder struct {
	Pipeline *chunker.Pipeline
	Trace    TraceFunc
}

// NewFinder creates a Finder with the default tagger and chunk grammar.
func NewFinder() *Finder {
	return &Finder{Pipeline: chunker.New()}
}

// Find extracts from an already chunked sentence.
func (f *Finder) Find(s chunker.Sentence) (string, bool) {
	return findPollster(s, f.Trace)
}

// FindWords tags and chunks a tokenized sentence before extracting.
func (f *Finder) FindWords(words []string) (string, bool) {
	return f.Find(f.Pipeline.ParseWords(words))
}

// FindText tokenizes, tags and chunks one sentence before extracting.
func (f *Finder) FindText(sentence string) (string, bool) {
	return f.Find(f.Pipeline.Parse(sentence))
}
