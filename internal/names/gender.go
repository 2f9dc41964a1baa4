package names

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var femaleCodes = map[string]struct{}{
	"female": {},
	"f":      {},
	"woman":  {},
	"महिला":  {},
	"स्त्री": {},
	"म":      {},
}

var maleCodes = map[string]struct{}{
	"male":  {},
	"m":     {},
	"man":   {},
	"पुरुष": {},
	"पु":    {},
}

// IsFemale reports whether gender is one of the known female encodings.
// Anything unrecognised, including the empty string, is not female.
func IsFemale(gender string) bool {
	_, ok := femaleCodes[genderKey(gender)]
	return ok
}

// IsMale is the male counterpart of IsFemale. Unknown genders are neither.
func IsMale(gender string) bool {
	_, ok := maleCodes[genderKey(gender)]
	return ok
}

func genderKey(gender string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(gender)))
}
