package pollster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/kittclouds/pollfinder/pkg/scanner/chunker"
)

// w builds a bare token element
func w(text string, tag c.Tag) c.Element {
	return c.Word(c.T(text, tag))
}

// np builds a noun phrase from word/tag pairs
func np(pairs ...string) c.Element {
	toks := make([]c.Token, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		toks = append(toks, c.T(pairs[i], c.Tag(pairs[i+1])))
	}
	return c.Phrase(toks...)
}

// =============================================================================
// Detector
// =============================================================================

func TestIsPollPhrase(t *testing.T) {
	assert.True(t, IsPollPhrase(np("a", "DT", "new", "JJ", "poll", "NN")))
	assert.True(t, IsPollPhrase(np("the", "DT", "survey", "NN")))

	assert.False(t, IsPollPhrase(np("the", "DT", "report", "NN")), "other heads")
	assert.False(t, IsPollPhrase(np("Poll", "NN")), "case-sensitive")
	assert.False(t, IsPollPhrase(np("poll", "VB")), "must be a common noun")
	assert.False(t, IsPollPhrase(w("poll", c.NN)), "bare tokens are not phrases")
}

func TestFindPollPhraseFirstOnly(t *testing.T) {
	s := c.Sentence{w("In", c.IN), np("the", "DT", "poll", "NN"), np("a", "DT", "survey", "NN")}

	i, ok := FindPollPhrase(s)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = FindPollPhrase(c.Sentence{np("the", "DT", "report", "NN")})
	assert.False(t, ok)
}

// =============================================================================
// Scanner
// =============================================================================

func TestScanBackwardAdjacent(t *testing.T) {
	s := c.Sentence{w("Newsweek", c.NNP), np("poll", "NN")}

	cand, ok := Scan(s, 1, Backward)
	require.True(t, ok)
	assert.Equal(t, "Newsweek", cand.Name)
	assert.Equal(t, 1, cand.Distance)
}

func TestScanRunStartingAtIndexZero(t *testing.T) {
	s := c.Sentence{w("Gallup", c.NNP), w("released", c.VBD), np("a", "DT", "poll", "NN")}

	cand, ok := Scan(s, 2, Backward)
	require.True(t, ok, "VBD is skipped before a run starts")
	assert.Equal(t, "Gallup", cand.Name)
	assert.Equal(t, 2, cand.Distance)
}

func TestScanAbortsOnPreRunStop(t *testing.T) {
	for _, tag := range []c.Tag{c.VB, c.VBZ, c.VBG, c.JJS} {
		t.Run(string(tag), func(t *testing.T) {
			back := c.Sentence{w("Gallup", c.NNP), w("x", tag), np("poll", "NN")}
			_, ok := Scan(back, 2, Backward)
			assert.False(t, ok)

			fwd := c.Sentence{np("poll", "NN"), w("x", tag), w("Gallup", c.NNP)}
			_, ok = Scan(fwd, 0, Forward)
			assert.False(t, ok)
		})
	}
}

func TestScanSkipsOtherTagsBeforeRun(t *testing.T) {
	s := c.Sentence{
		np("a", "DT", "new", "JJ", "poll", "NN"),
		w("conducted", c.VBN), w("by", c.IN), w("the", c.DT), w("Pew", c.NNP),
		w("Research", c.NNP), w("Center", c.NNP), w(".", c.Period),
	}

	cand, ok := Scan(s, 0, Forward)
	require.True(t, ok)
	assert.Equal(t, "Pew Research Center", cand.Name)
	assert.Equal(t, 4, cand.Distance)
}

func TestScanUnknownTagIsOther(t *testing.T) {
	s := c.Sentence{w("Ipsos", c.NNP), w("~", c.Tag("XYZ")), np("poll", "NN")}

	cand, ok := Scan(s, 2, Backward)
	require.True(t, ok)
	assert.Equal(t, "Ipsos", cand.Name)
}

func TestScanConjunctionInsideRun(t *testing.T) {
	s := c.Sentence{
		w("ABC", c.NNP), w("News", c.NNP), w("and", c.CC), w("Washington", c.NNP),
		w("Post", c.NNP), np("poll", "NN"),
	}

	cand, ok := Scan(s, 5, Backward)
	require.True(t, ok)
	assert.Equal(t, "ABC News and Washington Post", cand.Name)
	assert.Equal(t, 1, cand.Distance)
}

func TestScanTrailingConjunctionNotIncluded(t *testing.T) {
	s := c.Sentence{
		np("a", "DT", "poll", "NN"), w("by", c.IN), w("Gallup", c.NNP),
		w("and", c.CC), w("others", c.NNS),
	}

	cand, ok := Scan(s, 0, Forward)
	require.True(t, ok)
	assert.Equal(t, "Gallup", cand.Name)
}

func TestScanPhraseBeforeRunIsSkipped(t *testing.T) {
	s := c.Sentence{w("Gallup", c.NNP), np("this", "DT", "week", "NN"), np("poll", "NN")}

	cand, ok := Scan(s, 2, Backward)
	require.True(t, ok)
	assert.Equal(t, "Gallup", cand.Name)
	assert.Equal(t, 2, cand.Distance)
}

func TestScanPhraseEndsRun(t *testing.T) {
	s := c.Sentence{w("Pew", c.NNP), np("report", "NN"), w("Gallup", c.NNP), np("poll", "NN")}

	cand, ok := Scan(s, 3, Backward)
	require.True(t, ok)
	assert.Equal(t, "Gallup", cand.Name)
}

func TestScanForwardTrailingVerbDiscards(t *testing.T) {
	for _, tag := range []c.Tag{c.VBD, c.VBZ, c.VBG, c.VB} {
		t.Run(string(tag), func(t *testing.T) {
			s := c.Sentence{np("a", "DT", "poll", "NN"), w("Gallup", c.NNP), w("x", tag)}
			_, ok := Scan(s, 0, Forward)
			assert.False(t, ok)
		})
	}
}

func TestScanForwardTrailingPhraseKeeps(t *testing.T) {
	s := c.Sentence{np("a", "DT", "poll", "NN"), w("Gallup", c.NNP), np("the", "DT", "week", "NN")}

	cand, ok := Scan(s, 0, Forward)
	require.True(t, ok)
	assert.Equal(t, "Gallup", cand.Name)
}

func TestScanBackwardIgnoresTrailingVerb(t *testing.T) {
	// the verb check applies forward only
	s := c.Sentence{w("said", c.VBD), w("Gallup", c.NNP), np("poll", "NN")}

	cand, ok := Scan(s, 2, Backward)
	require.True(t, ok)
	assert.Equal(t, "Gallup", cand.Name)
}

func TestScanRejectsPluralOnlyRun(t *testing.T) {
	s := c.Sentence{w("Democrats", c.NNPS), np("poll", "NN")}
	_, ok := Scan(s, 1, Backward)
	assert.False(t, ok)

	mixed := c.Sentence{w("Fox", c.NNP), w("Democrats", c.NNPS), np("poll", "NN")}
	cand, ok := Scan(mixed, 2, Backward)
	require.True(t, ok)
	assert.Equal(t, "Fox Democrats", cand.Name)
}

func TestScanSentenceBoundary(t *testing.T) {
	s := c.Sentence{np("poll", "NN")}

	_, ok := Scan(s, 0, Backward)
	assert.False(t, ok)
	_, ok = Scan(s, 0, Forward)
	assert.False(t, ok)
	_, ok = Scan(s, 5, Forward)
	assert.False(t, ok, "out of range anchor")
}

// =============================================================================
// Resolver
// =============================================================================

func TestResolveForwardOnly(t *testing.T) {
	s := c.Sentence{
		np("a", "DT", "new", "JJ", "poll", "NN"), w("from", c.IN), w("Gallup", c.NNP),
	}

	name, ok := Resolve(s, 0)
	require.True(t, ok)
	assert.Equal(t, "Gallup", name)
}

func TestResolveNearerWins(t *testing.T) {
	s := c.Sentence{
		w("ABC", c.NNP), w(",", c.Comma), w("said", c.VBD), np("the", "DT", "poll", "NN"),
		w("from", c.IN), w("Gallup", c.NNP),
	}

	name, ok := Resolve(s, 3)
	require.True(t, ok)
	assert.Equal(t, "Gallup", name)

	s = c.Sentence{
		w("ABC", c.NNP), np("poll", "NN"), w("by", c.IN), w("of", c.IN), w("Gallup", c.NNP),
	}
	name, ok = Resolve(s, 1)
	require.True(t, ok)
	assert.Equal(t, "ABC", name)
}

func TestResolveTiePrefersBackward(t *testing.T) {
	s := c.Sentence{
		w("ABC", c.NNP), w("from", c.IN), np("poll", "NN"), w("by", c.IN), w("Gallup", c.NNP),
	}

	name, ok := Resolve(s, 2)
	require.True(t, ok)
	assert.Equal(t, "ABC", name)
}

func TestResolveNone(t *testing.T) {
	s := c.Sentence{w("it", c.PRP), w("shows", c.VBZ), np("poll", "NN"), w("shows", c.VBZ)}

	_, ok := Resolve(s, 2)
	assert.False(t, ok)
}

// =============================================================================
// FindPollster
// =============================================================================

func TestFindPollsterExamples(t *testing.T) {
	tests := []struct {
		name     string
		sentence c.Sentence
		want     string
		found    bool
	}{
		{
			name:     "adjacent backward",
			sentence: c.Sentence{w("Newsweek", c.NNP), np("poll", "NN")},
			want:     "Newsweek",
			found:    true,
		},
		{
			name: "forward after preposition",
			sentence: c.Sentence{
				np("a", "DT", "new", "JJ", "poll", "NN"), w("from", c.IN), w("Gallup", c.NNP),
			},
			want:  "Gallup",
			found: true,
		},
		{
			name: "past tense verb skipped",
			sentence: c.Sentence{
				w("Gallup", c.NNP), w("released", c.VBD), np("a", "DT", "poll", "NN"),
			},
			want:  "Gallup",
			found: true,
		},
		{
			name:     "no poll phrase",
			sentence: c.Sentence{w("Gallup", c.NNP), np("the", "DT", "report", "NN")},
		},
		{
			name:     "bare poll token",
			sentence: c.Sentence{w("Gallup", c.NNP), w("poll", c.NN)},
		},
		{
			name:     "empty sentence",
			sentence: c.Sentence{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindPollster(tt.sentence)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindPollsterStopsAtFirstPollPhrase(t *testing.T) {
	s := c.Sentence{
		np("a", "DT", "poll", "NN"), w("shows", c.VBZ), np("a", "DT", "survey", "NN"),
		w("by", c.IN), w("Gallup", c.NNP),
	}

	_, ok := FindPollster(s)
	assert.False(t, ok, "the second survey phrase must not be consulted")
}

// =============================================================================
// Finder
// =============================================================================

func TestFinderTrace(t *testing.T) {
	var actions []Action
	f := NewFinder()
	f.Trace = func(s Step) { actions = append(actions, s.Action) }

	name, ok := f.Find(c.Sentence{w("Newsweek", c.NNP), np("poll", "NN")})
	require.True(t, ok)
	assert.Equal(t, "Newsweek", name)
	assert.Equal(t, []Action{ActionPollPhrase, ActionExtend, ActionAccept, ActionNoName}, actions)
}

func TestFinderFindText(t *testing.T) {
	f := NewFinder()

	tests := []struct {
		text  string
		want  string
		found bool
	}{
		{"Trump trails in a new poll from Monmouth University.", "Monmouth University", true},
		{"In the Quinnipiac University poll, Democrats lead.", "Quinnipiac University", true},
		// "Gallup shows" reads as a subject
		{"A new poll from Gallup shows support slipping.", "", false},
		{"Nobody asked about it.", "", false},
		// "Biden is" reads as a subject, so the name before the phrase wins
		{"Voters in Iowa told a Des Moines Register poll that Biden is ahead.", "Des Moines Register", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := f.FindText(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinderFindWords(t *testing.T) {
	f := NewFinder()

	got, ok := f.FindWords([]string{"A", "Newsweek", "poll", "found", "little", "change", "."})
	require.True(t, ok)
	assert.Equal(t, "Newsweek", got)
}

func TestRuleTable(t *testing.T) {
	assert.True(t, ProperNoun.Has(c.NNP))
	assert.True(t, ProperNoun.Has(c.NNPS))
	assert.False(t, ProperNoun.Has(c.NN))

	assert.False(t, PreRunStop.Has(c.VBD), "VBD may be skipped before a run")
	assert.True(t, TrailingVerb.Has(c.VBD))
	assert.True(t, RunJoin.Has(c.CC))
	assert.Len(t, RunJoin, 1)
}
