package db

import (
	"strings"
	"unicode"
)

// significantSymbols change what a name refers to and survive normalization ("C++" vs "C#", "AT&T")
const significantSymbols = "+#&"

// NormalizeName converts a company name to a normalized form for matching.
// Letters, digits and marks of any script are kept lowercased; so are the symbols in
// significantSymbols. A non-blank name that would lose every rune normalizes to its
// lowercased, trimmed self.
// Example: "Affirm, Inc." -> "affirminc"
func NormalizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
			sb.WriteRune(unicode.ToLower(r))
		case strings.ContainsRune(significantSymbols, r):
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return strings.ToLower(strings.TrimSpace(name))
	}
	return sb.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so s matches literally
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// containsPattern builds an ILIKE pattern matching names that contain s
func containsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
