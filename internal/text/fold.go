package text

import (
	"unicode"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// punct maps typographic punctuation to ASCII.
var punct = map[rune]string{
	'\u2018': "'", '\u2019': "'", '\u201a': "'", '\u2032': "'",
	'\u201c': `"`, '\u201d': `"`, '\u201e': `"`, '\u2033': `"`,
	'\u2010': "-", '\u2011': "-", '\u2012': "-", '\u2013': "-", '\u2014': "-", '\u2212': "-",
	'\u2026': "...",
	'\u00a0': " ", '\u2009': " ", '\u202f': " ", '\u200b': "",
	'\u00ab': `"`, '\u00bb': `"`,
}

// Fold reduces text to an ASCII-leaning form: accents are stripped through
// NFKD, typographic punctuation becomes ASCII, and non-letter symbols
// outside ASCII become spaces. Remaining letters and digits are
// transliterated ("ß" to "ss", Cyrillic to Latin).
func Fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	out := make([]rune, 0, len(folded))
	for _, r := range folded {
		if r <= unicode.MaxASCII {
			out = append(out, r)
			continue
		}
		if rep, ok := punct[r]; ok {
			out = append(out, []rune(rep)...)
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, []rune(unidecode.Unidecode(string(r)))...)
			continue
		}
		out = append(out, ' ')
	}
	return string(out)
}
