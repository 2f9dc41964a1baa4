// Package names turns free-text name and gender fields from voter rolls
// into matching keys.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// honorifics are dropped from a name before matching. Relation markers
// ("s/o", "पिता") appear in relative-name fields copied from the rolls.
var honorifics = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "miss": {}, "dr": {},
	"shri": {}, "shree": {}, "sri": {}, "smt": {}, "shrimati": {}, "kumari": {}, "km": {},
	"late": {}, "lt": {}, "ji": {},
	"s/o": {}, "d/o": {}, "w/o": {}, "c/o": {},
	"father": {}, "mother": {}, "husband": {},
	"श्री": {}, "श्रीमती": {}, "सुश्री": {}, "कुमारी": {}, "कु": {},
	"स्व": {}, "स्वर्गीय": {}, "जी": {},
	"पिता": {}, "माता": {}, "पति": {},
}

// Normalize returns the matching key for a display name: NFC folded,
// lower-cased, honorifics removed and all separators squeezed out.
// Blank input yields "".
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	name = norm.NFC.String(strings.ToLower(name))

	var b strings.Builder
	for _, tok := range strings.FieldsFunc(name, isSeparator) {
		if _, ok := honorifics[tok]; ok {
			continue
		}
		b.WriteString(tok)
	}
	return b.String()
}

func isSeparator(r rune) bool {
	switch r {
	case '.', ',', ':', ';', '(', ')', '-', '_':
		return true
	}
	return unicode.IsSpace(r)
}
