package curriculum

import (
	"regexp"
	"strings"
)

// Catalog course names start with a code like "IME04-10817". Some older
// records use a looser "ABC-123456" form instead.
var (
	codePattern         = regexp.MustCompile(`^([A-Z]{2,5}\d{1,2}-?\d{4,})\s`)
	codeFallbackPattern = regexp.MustCompile(`^([A-Z]{2,5}-\d{2,7})\s`)
	idStripPattern      = regexp.MustCompile(`[^A-Z0-9]`)
)

// ExtractCode pulls the course code prefix out of a free-text course name.
// It never fails: when neither catalog format matches it degrades to the
// first whitespace-delimited token, or the whole string when there is none.
// Malformed upstream names must yield a best-effort code, not an error.
func ExtractCode(name string) string {
	if m := codePattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	if m := codeFallbackPattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

// NodeID derives the internal graph id from a course code: uppercase
// alphanumerics only, so "IME04-10817" becomes "IME0410817".
func NodeID(code string) string {
	return idStripPattern.ReplaceAllString(strings.ToUpper(code), "")
}
