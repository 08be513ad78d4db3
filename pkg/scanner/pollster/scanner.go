package pollster

import (
	"strings"

	"github.com/kittclouds/pollfinder/pkg/scanner/chunker"
)

// Direction of a scan relative to the anchor.
type Direction int

const (
	Backward Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

func (d Direction) delta() int {
	if d == Forward {
		return 1
	}
	return -1
}

// Candidate is a name run found on one side of the anchor.
type Candidate struct {
	Name     string
	Distance int
}

// ============================================================================
// Scan State
// ============================================================================

// Phase of a directional scan.
type Phase int

const (
	NoRunStarted Phase = iota
	RunInProgress
	RunTerminated
)

func (p Phase) String() string {
	switch p {
	case NoRunStarted:
		return "no-run"
	case RunInProgress:
		return "in-run"
	case RunTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// index is an element position that may be absent. Position 0 is valid.
type index struct {
	pos int
	ok  bool
}

func (i *index) set(pos int) {
	i.pos, i.ok = pos, true
}

// run tracks the name run of one scan. first is the element nearest the
// anchor, last the furthest one reached so far.
type run struct {
	phase Phase
	first index
	last  index
}

func (r *run) extend(pos int) {
	if !r.first.ok {
		r.first.set(pos)
	}
	r.last.set(pos)
	r.phase = RunInProgress
}

// ============================================================================
// Trace
// ============================================================================

// Action names one decision taken by the scanner.
type Action string

const (
	ActionSkipPhrase     Action = "skip-phrase"
	ActionStopPhrase     Action = "stop-phrase"
	ActionExtend         Action = "extend"
	ActionAbort          Action = "abort"
	ActionSkip           Action = "skip"
	ActionJoin           Action = "join"
	ActionStop           Action = "stop"
	ActionNoName         Action = "no-name"
	ActionTrailingVerb   Action = "trailing-verb"
	ActionNoSingular     Action = "no-singular-proper"
	ActionAccept         Action = "accept"
	ActionPollPhrase     Action = "poll-phrase"
	ActionPreferBackward Action = "prefer-backward"
	ActionPreferForward  Action = "prefer-forward"
)

// Step is reported to a TraceFunc for every scanner decision.
type Step struct {
	Direction Direction
	Index     int
	Element   chunker.Element
	Phase     Phase
	Action    Action
}

// TraceFunc observes scanner decisions. It must not retain the element.
type TraceFunc func(Step)

func (f TraceFunc) emit(dir Direction, i int, e chunker.Element, p Phase, a Action) {
	if f != nil {
		f(Step{Direction: dir, Index: i, Element: e, Phase: p, Action: a})
	}
}

// ============================================================================
// Scanning
// ============================================================================

// Scan walks away from the anchor in one direction looking for a run of
// proper nouns. It reports false when the direction yields no candidate.
func Scan(s chunker.Sentence, anchor int, dir Direction) (Candidate, bool) {
	return scan(s, anchor, dir, nil)
}

func scan(s chunker.Sentence, anchor int, dir Direction, trace TraceFunc) (Candidate, bool) {
	if anchor < 0 || anchor >= len(s) {
		return Candidate{}, false
	}

	var r run
	step := dir.delta()

	for j := anchor + step; j >= 0 && j < len(s) && r.phase != RunTerminated; j += step {
		e := s[j]

		if e.IsPhrase() {
			if r.phase == NoRunStarted {
				trace.emit(dir, j, e, r.phase, ActionSkipPhrase)
				continue
			}
			r.phase = RunTerminated
			trace.emit(dir, j, e, r.phase, ActionStopPhrase)
			continue
		}

		tag := e.Token().Tag
		switch {
		case ProperNoun.Has(tag):
			r.extend(j)
			trace.emit(dir, j, e, r.phase, ActionExtend)

		case r.phase == NoRunStarted && PreRunStop.Has(tag):
			trace.emit(dir, j, e, r.phase, ActionAbort)
			return Candidate{}, false

		case r.phase == NoRunStarted:
			trace.emit(dir, j, e, r.phase, ActionSkip)

		case RunJoin.Has(tag):
			trace.emit(dir, j, e, r.phase, ActionJoin)

		default:
			r.phase = RunTerminated
			trace.emit(dir, j, e, r.phase, ActionStop)
		}
	}

	if !r.first.ok {
		trace.emit(dir, anchor, s[anchor], r.phase, ActionNoName)
		return Candidate{}, false
	}

	if dir == Forward {
		if next := r.last.pos + 1; next < len(s) {
			e := s[next]
			if !e.IsPhrase() && TrailingVerb.Has(e.Token().Tag) {
				trace.emit(dir, next, e, r.phase, ActionTrailingVerb)
				return Candidate{}, false
			}
		}
	}

	lo, hi := r.first.pos, r.last.pos
	if lo > hi {
		lo, hi = hi, lo
	}

	if !hasSingularProper(s[lo : hi+1]) {
		trace.emit(dir, anchor, s[anchor], r.phase, ActionNoSingular)
		return Candidate{}, false
	}

	c := Candidate{
		Name:     joinRun(s[lo : hi+1]),
		Distance: min(abs(anchor-lo), abs(anchor-hi)),
	}
	trace.emit(dir, anchor, s[anchor], r.phase, ActionAccept)
	return c, true
}

func hasSingularProper(elems []chunker.Element) bool {
	for _, e := range elems {
		if !e.IsPhrase() && e.Token().Tag == RequiredProper {
			return true
		}
	}
	return false
}

func joinRun(elems []chunker.Element) string {
	words := make([]string, 0, len(elems))
	for _, e := range elems {
		words = append(words, e.Text())
	}
	return strings.Join(words, " ")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
