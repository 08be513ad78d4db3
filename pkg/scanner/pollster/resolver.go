package pollster

import "github.com/kittclouds/pollfinder/pkg/scanner/chunker"

// Resolve scans both directions from the anchor and picks the nearer
// candidate. Equal distances go to the backward candidate.
func Resolve(s chunker.Sentence, anchor int) (string, bool) {
	return resolve(s, anchor, nil)
}

func resolve(s chunker.Sentence, anchor int, trace TraceFunc) (string, bool) {
	if anchor < 0 || anchor >= len(s) {
		return "", false
	}

	back, okBack := scan(s, anchor, Backward, trace)
	fwd, okFwd := scan(s, anchor, Forward, trace)

	switch {
	case !okBack && !okFwd:
		return "", false
	case !okFwd:
		return back.Name, true
	case !okBack:
		return fwd.Name, true
	case back.Distance <= fwd.Distance:
		trace.emit(Backward, anchor, s[anchor], RunTerminated, ActionPreferBackward)
		return back.Name, true
	default:
		trace.emit(Forward, anchor, s[anchor], RunTerminated, ActionPreferForward)
		return fwd.Name, true
	}
}
