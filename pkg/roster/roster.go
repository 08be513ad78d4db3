// Package roster provides a case-sensitive dictionary of known pollsters.
// A single Aho-Corasick automaton scans a text block for every roster name.
package roster

import (
	"errors"
	"sort"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// ErrEmpty is returned when a roster is compiled from no usable names.
var ErrEmpty = errors.New("roster: no names")

// ============================================================================
// Name Expansion
// ============================================================================

// Expand adds the variants a pollster is commonly written as. Joint names
// such as "NBC News/Wall Street Journal" contribute each partner, unless the
// slash belongs to the name itself ("20/20"). Every name with "&" also gets
// an "and" spelling. The result is deduplicated in first-seen order.
func Expand(names []string) []string {
	all := make([]string, 0, len(names)*2)
	all = append(all, names...)

	for _, n := range names {
		if strings.Contains(n, "/") && !strings.Contains(n, "20") {
			all = append(all, strings.Split(n, "/")...)
		}
	}

	for _, n := range all {
		if strings.Contains(n, "&") {
			all = append(all, strings.ReplaceAll(n, "&", "and"))
		}
	}

	return dedupe(all)
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// ============================================================================
// Roster
// ============================================================================

// Roster scans text for known pollster names.
type Roster struct {
	// The AC automaton built from all names
	ac ahocorasick.AhoCorasick

	// All names in order (pattern index -> name)
	names []string

	// Name -> pattern index
	index map[string]int
}

// Compile builds a Roster from names as given. Use Expand first to add
// joint-name and "&" variants.
func Compile(names []string) (*Roster, error) {
	r := &Roster{index: make(map[string]int)}

	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, exists := r.index[n]; exists {
			continue
		}
		r.index[n] = len(r.names)
		r.names = append(r.names, n)
	}

	if len(r.names) == 0 {
		return nil, ErrEmpty
	}

	// Overlapping iteration needs standard match semantics
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: false,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.StandardMatch,
		DFA:                  false,
	})
	r.ac = builder.Build(r.names)

	return r, nil
}

// Len returns the number of names in the roster
func (r *Roster) Len() int {
	return len(r.names)
}

// Names returns the roster names in compile order
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Contains reports whether name is an exact roster entry
func (r *Roster) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// ============================================================================
// Text Scanning
// ============================================================================

// Match is the first occurrence of a roster name in a text.
type Match struct {
	Name  string
	Start int // Byte offset start
	End   int // Byte offset end
}

// Scan reports every roster name occurring in text, once each, ordered by
// first occurrence. Names nested in longer names are reported too.
func (r *Roster) Scan(text string) []Match {
	first := make(map[int]Match)

	iter := r.ac.IterOverlapping(text)
	for {
		m := iter.Next()
		if m == nil {
			break
		}
		p := m.Pattern()
		if p >= len(r.names) {
			continue
		}
		if prev, seen := first[p]; seen && prev.Start <= m.Start() {
			continue
		}
		first[p] = Match{Name: r.names[p], Start: m.Start(), End: m.End()}
	}

	out := make([]Match, 0, len(first))
	for _, m := range first {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End > out[j].End
	})
	return out
}

// Label returns the roster names found in a text block. A block with no
// roster name is a negative case.
func (r *Roster) Label(text string) (positives []string, negative bool) {
	for _, m := range r.Scan(text) {
		positives = append(positives, m.Name)
	}
	return positives, len(positives) == 0
}
