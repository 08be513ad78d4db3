package pollster

import "github.com/kittclouds/pollfinder/pkg/scanner/chunker"

// TagSet is a closed set of part-of-speech tags used by one scanning rule.
type TagSet map[chunker.Tag]struct{}

// NewTagSet builds a TagSet from the given tags.
func NewTagSet(tags ...chunker.Tag) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s TagSet) Has(t chunker.Tag) bool {
	_, ok := s[t]
	return ok
}

// ============================================================================
// Rule Table
// ============================================================================

var (
	// ProperNoun tags extend a name run.
	ProperNoun = NewTagSet(chunker.NNP, chunker.NNPS)

	// RequiredProper must appear at least once in an accepted run.
	RequiredProper = chunker.NNP

	// PreRunStop aborts a direction when seen before any name token.
	PreRunStop = NewTagSet(chunker.VBZ, chunker.VBG, chunker.VB, chunker.JJS)

	// RunJoin tags may sit inside a run without ending it ("ABC and Ipsos").
	RunJoin = NewTagSet(chunker.CC)

	// TrailingVerb directly after a forward run marks it as a subject.
	TrailingVerb = NewTagSet(chunker.VBD, chunker.VBZ, chunker.VBG, chunker.VB)

	// PollHeadTag is the tag a poll head word must carry.
	PollHeadTag = chunker.NN
)

// pollHeads are matched case-sensitively.
var pollHeads = map[string]struct{}{
	"poll":   {},
	"survey": {},
}

// IsPollHead reports whether a token is a poll/survey common noun.
func IsPollHead(t chunker.Token) bool {
	if t.Tag != PollHeadTag {
		return false
	}
	_, ok := pollHeads[t.Text]
	return ok
}
