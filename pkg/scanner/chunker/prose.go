package chunker

import (
	"sync"

	"github.com/jdkato/prose/tag"
	"github.com/jdkato/prose/tokenize"
)

// ============================================================================
// Tagging
// ============================================================================

// sharedModel loads the averaged perceptron weights once per process.
// Tagging only reads the model, so one instance serves every goroutine.
var sharedModel = sync.OnceValue(tag.NewPerceptronTagger)

// PerceptronTagger assigns Penn Treebank tags with prose's averaged
// perceptron model.
type PerceptronTagger struct {
	model *tag.PerceptronTagger
}

// NewTagger returns a tagger backed by the shared perceptron model.
func NewTagger() *PerceptronTagger {
	return &PerceptronTagger{model: sharedModel()}
}

// Tag tags a tokenized sentence. Empty words are dropped.
func (t *PerceptronTagger) Tag(words []string) []Token {
	tagged := t.model.Tag(words)
	out := make([]Token, len(tagged))
	for i, tok := range tagged {
		out[i] = Token{Text: tok.Text, Tag: Tag(tok.Tag)}
	}
	return out
}

// ============================================================================
// Tokenizing
// ============================================================================

var (
	wordTokenizer     = tokenize.NewTreebankWordTokenizer()
	sentenceTokenizer = sync.OnceValue(tokenize.NewPunktSentenceTokenizer)
)

// Tokenize splits one sentence into Treebank words: clitics ("n't", "'s")
// are separate words, double quotes become `` or '', and only a final
// period is split off.
func Tokenize(sentence string) []string {
	return wordTokenizer.Tokenize(sentence)
}

// SplitSentences segments text with the Punkt sentence model.
func SplitSentences(text string) []string {
	return sentenceTokenizer().Tokenize(text)
}
