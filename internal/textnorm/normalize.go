// Package textnorm folds names and queries into a form suitable for
// locale-insensitive substring search.
package textnorm

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Apostrophe is the canonical apostrophe every variant folds to.
const Apostrophe = '\''

// apostrophes lists the curly, modifier and full-width forms seen in
// scraped names ("L’Ombre", "Ka`el").
var apostrophes = map[rune]bool{
	'‘': true, // left single quotation mark
	'’': true, // right single quotation mark
	'ʼ': true, // modifier letter apostrophe
	'＇': true, // full-width apostrophe
	'`': true, // grave accent
	'´': true, // acute accent
}

// A transform.Chain keeps internal buffers, so each caller borrows its own.
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			runes.Map(foldApostrophe),
			norm.NFC,
		)
	},
}

func foldApostrophe(r rune) rune {
	if apostrophes[r] {
		return Apostrophe
	}
	return r
}

// Normalize lower-cases s, strips combining diacritics and maps every
// apostrophe variant to '. It never fails: on a transform error the
// lower-cased input is returned with apostrophes folded.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	if isPlainASCII(s) {
		return s
	}
	s = strings.ToLower(s)

	t := chainPool.Get().(transform.Transformer)
	defer func() {
		t.Reset()
		chainPool.Put(t)
	}()

	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.Map(foldApostrophe, s)
	}
	return out
}

// isPlainASCII reports whether s is ASCII without upper-case letters and
// without the grave accent, so Normalize can return it untouched.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x80 || (b >= 'A' && b <= 'Z') || b == '`' {
			return false
		}
	}
	return true
}
