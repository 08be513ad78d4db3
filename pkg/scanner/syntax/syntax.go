// Package syntax provides regex-based pollster detection.
// It is an independent alternate path to the chunk scanner, kept for comparison.
package syntax

import (
	"regexp"
)

// PatternGroup is the named group every pattern captures the pollster in.
const PatternGroup = "poll"

// Match represents a pollster captured by one pattern
type Match struct {
	Pattern  int    // index into the ordered pattern list
	Start    int    // byte offset of the captured name
	End      int    // byte offset after the captured name
	Pollster string // captured name, untrimmed
}

// SyntaxScanner holds the compiled regexes in priority order
type SyntaxScanner struct {
	patterns []*regexp.Regexp
	groups   []int
}

// Patterns returns the default pattern sources. Every pattern is anchored at
// the start of the sentence and captures the name in a "poll" group.
func Patterns() []string {
	return []string{
		// "the Quinnipiac poll", "a new CNN poll"
		`.*?([Aa]|[Tt]he) (new)?(?P<poll>.{3,50}?) poll`,
		`Results for this (?P<poll>.{3,50}?) poll`,
		`(?P<poll>.{3,50}?) ran the survey`,
		`.*? a just-released (?P<poll>.{3,50}?) poll`,
		`.*? in (?P<poll>.{3,50}?) polling history`,
		`.*? a separate (?P<poll>.{3,50}?) survey`,
		`[Ii]n the (?P<poll>.{3,50}?) poll[,.]`,
		`The survey (?:.+) was conducted by (?P<poll>.{3,50}?) between`,
		`^(?P<poll>.{3,50}?) ran the survey.`,
		`.*?[Aa]ccording to a (new)?(national)?(?P<poll>.{3,50}?) poll.`,
		`.*?[Rr]esults from a (new)?(?P<poll>.{3,50}?) poll`,
		`.*? a new (?P<poll>.{3,50}?) poll reports`,
		`.*?([Tt]he)? (?P<poll>.{3,50}?) also released a (similar)? survey`,
		`.*?(a)? (new)? poll from (?P<poll>.{3,50}?).`,
	}
}

// New creates a scanner with the default patterns compiled
func New() *SyntaxScanner {
	s, err := Compile(Patterns())
	if err != nil {
		panic(err)
	}
	return s
}

// Compile builds a scanner from pattern sources. Each source is anchored at
// the start of the text and must define a "poll" group.
func Compile(sources []string) (*SyntaxScanner, error) {
	s := &SyntaxScanner{
		patterns: make([]*regexp.Regexp, 0, len(sources)),
		groups:   make([]int, 0, len(sources)),
	}
	for i, src := range sources {
		re, err := regexp.Compile(`\A(?:` + src + `)`)
		if err != nil {
			return nil, &PatternError{Index: i, Source: src, Err: err}
		}
		g := re.SubexpIndex(PatternGroup)
		if g < 0 {
			return nil, &PatternError{Index: i, Source: src, Err: errMissingGroup}
		}
		s.patterns = append(s.patterns, re)
		s.groups = append(s.groups, g)
	}
	return s, nil
}

// Len returns the number of compiled patterns
func (s *SyntaxScanner) Len() int {
	return len(s.patterns)
}

// Scan runs every pattern against the text and returns the hits in pattern order
func (s *SyntaxScanner) Scan(text string) []Match {
	var out []Match
	for i := range s.patterns {
		if m, ok := s.match(i, text); ok {
			out = append(out, m)
		}
	}
	return out
}

// First returns the hit of the highest-priority matching pattern
func (s *SyntaxScanner) First(text string) (Match, bool) {
	for i := range s.patterns {
		if m, ok := s.match(i, text); ok {
			return m, true
		}
	}
	return Match{}, false
}

func (s *SyntaxScanner) match(i int, text string) (Match, bool) {
	loc := s.patterns[i].FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}
	g := s.groups[i]
	start, end := loc[2*g], loc[2*g+1]
	if start < 0 {
		return Match{}, false
	}
	return Match{
		Pattern:  i,
		Start:    start,
		End:      end,
		Pollster: text[start:end],
	}, true
}
