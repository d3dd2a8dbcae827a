package shared

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeEmail trims, NFKC-normalizes and lower-cases an address so that
// lookups and the unique index agree on one spelling.
func NormalizeEmail(raw string) string {
	// A Caser carries state, so one is built per call.
	return cases.Lower(language.Und).String(norm.NFKC.String(strings.TrimSpace(raw)))
}

// NormalizeName trims surrounding whitespace and composes the name to NFC.
func NormalizeName(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}
