// Package slug turns titles into identifiers that are safe as directory names
package slug

import (
	"strings"
	"unicode"
)

// MaxLength is the longest slug Generate returns
const MaxLength = 50

const fallback = "untitled"

// Generate lowercases s and joins its letter and digit runs with single hyphens.
// Non-ASCII letters are dropped. An input with nothing usable yields "untitled".
func Generate(s string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(s) {
		if r >= unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			pendingHyphen = true
			continue
		}
		need := 1
		if pendingHyphen && b.Len() > 0 {
			need = 2
		}
		if b.Len()+need > MaxLength {
			break
		}
		if need == 2 {
			b.WriteByte('-')
		}
		pendingHyphen = false
		b.WriteRune(r)
	}

	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}
