// Package chunker implements Penn Treebank tagging and shallow noun-phrase chunking.
// The chunk grammar is fixed: NP: {<DT>?<JJ>*<NN>}.
package chunker

import (
	"strings"
)

// ============================================================================
// Tag (Penn Treebank)
// ============================================================================

// Tag is a Penn Treebank part-of-speech code. Codes without a constant
// below are still valid values and are treated as "other" by consumers.
type Tag string

const (
	CC   Tag = "CC"   // coordinating conjunction
	CD   Tag = "CD"   // cardinal number
	DT   Tag = "DT"   // determiner
	EX   Tag = "EX"   // existential there
	IN   Tag = "IN"   // preposition / subordinating conjunction
	JJ   Tag = "JJ"   // adjective
	JJR  Tag = "JJR"  // comparative adjective
	JJS  Tag = "JJS"  // superlative adjective
	MD   Tag = "MD"   // modal
	NN   Tag = "NN"   // common noun, singular
	NNS  Tag = "NNS"  // common noun, plural
	NNP  Tag = "NNP"  // proper noun, singular
	NNPS Tag = "NNPS" // proper noun, plural
	PDT  Tag = "PDT"  // predeterminer
	PRP  Tag = "PRP"  // personal pronoun
	PRPS Tag = "PRP$" // possessive pronoun
	RB   Tag = "RB"   // adverb
	RBR  Tag = "RBR"  // comparative adverb
	RBS  Tag = "RBS"  // superlative adverb
	RP   Tag = "RP"   // particle
	TO   Tag = "TO"   // to
	UH   Tag = "UH"   // interjection
	VB   Tag = "VB"   // verb, base form
	VBD  Tag = "VBD"  // verb, past tense
	VBG  Tag = "VBG"  // verb, gerund / present participle
	VBN  Tag = "VBN"  // verb, past participle
	VBP  Tag = "VBP"  // verb, non-3rd person singular present
	VBZ  Tag = "VBZ"  // verb, 3rd person singular present
	WDT  Tag = "WDT"  // wh-determiner
	WP   Tag = "WP"   // wh-pronoun
	WRB  Tag = "WRB"  // wh-adverb

	Possessive Tag = "POS"
	Period     Tag = "."
	Comma      Tag = ","
	Colon      Tag = ":"
	OpenQuote  Tag = "``"
	CloseQuote Tag = "''"
	OpenParen  Tag = "("
	CloseParen Tag = ")"
	Dollar     Tag = "$"
	Hash       Tag = "#"
	Symbol     Tag = "SYM"
)

// IsNoun reports whether the tag is any noun (common or proper).
func (t Tag) IsNoun() bool {
	return t == NN || t == NNS || t == NNP || t == NNPS
}

// IsVerb reports whether the tag is any verb form.
func (t Tag) IsVerb() bool {
	switch t {
	case VB, VBD, VBG, VBN, VBP, VBZ:
		return true
	}
	return false
}

// IsPunct reports whether the tag marks punctuation.
func (t Tag) IsPunct() bool {
	switch t {
	case Period, Comma, Colon, OpenQuote, CloseQuote, OpenParen, CloseParen:
		return true
	}
	return false
}

// ============================================================================
// Token
// ============================================================================

// Token is a tagged word. Tokens are values and never mutated after tagging.
type Token struct {
	Text string
	Tag  Tag
}

// T is shorthand for building a Token.
func T(text string, tag Tag) Token {
	return Token{Text: text, Tag: tag}
}

// String renders the token as word/TAG.
func (t Token) String() string {
	return t.Text + "/" + string(t.Tag)
}

// ============================================================================
// Element
// ============================================================================

// ElementKind distinguishes bare tokens from grouped chunks
type ElementKind int

const (
	Bare ElementKind = iota
	NounPhrase
)

// String returns a readable name
func (k ElementKind) String() string {
	switch k {
	case Bare:
		return "TOKEN"
	case NounPhrase:
		return "NP"
	default:
		return "UNKNOWN"
	}
}

// Element is one item of a chunked sentence: either a single bare token or
// a noun phrase holding one or more tokens.
type Element struct {
	Kind   ElementKind
	Tokens []Token
}

// Word wraps a token as a bare element.
func Word(t Token) Element {
	return Element{Kind: Bare, Tokens: []Token{t}}
}

// Phrase groups tokens into a noun-phrase element.
func Phrase(tokens ...Token) Element {
	return Element{Kind: NounPhrase, Tokens: tokens}
}

// IsPhrase reports whether the element is a chunk rather than a bare token.
func (e Element) IsPhrase() bool {
	return e.Kind == NounPhrase
}

// Token returns the bare token. For a phrase it returns the head (last) token.
func (e Element) Token() Token {
	if len(e.Tokens) == 0 {
		return Token{}
	}
	return e.Tokens[len(e.Tokens)-1]
}

// Text joins the surface forms of the element's tokens.
func (e Element) Text() string {
	words := make([]string, len(e.Tokens))
	for i, t := range e.Tokens {
		words[i] = t.Text
	}
	return strings.Join(words, " ")
}

// String renders bare tokens as word/TAG and phrases as (NP word/TAG ...).
func (e Element) String() string {
	if !e.IsPhrase() {
		return e.Token().String()
	}
	parts := make([]string, len(e.Tokens))
	for i, t := range e.Tokens {
		parts[i] = t.String()
	}
	return "(NP " + strings.Join(parts, " ") + ")"
}

// Sentence is a chunked sentence.
type Sentence []Element

// String renders the sentence in a bracketed tree-like form.
func (s Sentence) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return "(S " + strings.Join(parts, " ") + ")"
}

// Flatten returns the tagged tokens of the sentence in order.
func (s Sentence) Flatten() []Token {
	var out []Token
	for _, e := range s {
		out = append(out, e.Tokens...)
	}
	return out
}

// ============================================================================
// Capabilities
// ============================================================================

// Tagger assigns a part-of-speech tag to every word.
type Tagger interface {
	Tag(words []string) []Token
}

// Chunker groups tagged tokens into a chunked sentence.
type Chunker interface {
	Chunk(tokens []Token) Sentence
}

// Pipeline tokenizes, tags and chunks raw sentences.
type Pipeline struct {
	Tagger  Tagger
	Chunker Chunker
}

// New creates a Pipeline with the perceptron tagger and NP grammar.
func New() *Pipeline {
	return &Pipeline{
		Tagger:  NewTagger(),
		Chunker: GrammarChunker{},
	}
}

// Parse runs the full pipeline over one sentence of text.
func (p *Pipeline) Parse(sentence string) Sentence {
	return p.ParseWords(Tokenize(sentence))
}

// ParseWords tags and chunks an already tokenized sentence.
func (p *Pipeline) ParseWords(words []string) Sentence {
	return p.Chunker.Chunk(p.Tagger.Tag(words))
}

// ============================================================================
// Chunk Finding
// ============================================================================

// GrammarChunker implements NP: {<DT>?<JJ>*<NN>}. Matches are leftmost and
// non-overlapping; tokens outside a match stay bare.
type GrammarChunker struct{}

// Chunk applies the grammar to a tagged sentence.
func (GrammarChunker) Chunk(tokens []Token) Sentence {
	out := make(Sentence, 0, len(tokens))
	i := 0

	for i < len(tokens) {
		if consumed := tryNounPhrase(tokens, i); consumed > 0 {
			np := make([]Token, consumed)
			copy(np, tokens[i:i+consumed])
			out = append(out, Phrase(np...))
			i += consumed
			continue
		}
		out = append(out, Word(tokens[i]))
		i++
	}

	return out
}

// tryNounPhrase: DT? JJ* NN, exactly one singular common noun as head
func tryNounPhrase(tokens []Token, start int) int {
	i := start

	// Optional determiner
	if i < len(tokens) && tokens[i].Tag == DT {
		i++
	}

	// Zero or more adjectives
	for i < len(tokens) && tokens[i].Tag == JJ {
		i++
	}

	// Head noun (required)
	if i < len(tokens) && tokens[i].Tag == NN {
		return i + 1 - start
	}

	return 0
}
