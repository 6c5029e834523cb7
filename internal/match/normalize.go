package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lower-cases an identifier and drops separators so that
// "plateNo", "plate_no" and "Plate-No" compare equal.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// suffixTokens are trailing tokens that rarely carry meaning on their own.
var suffixTokens = map[string]bool{
	"id":     true,
	"no":     true,
	"num":    true,
	"number": true,
	"code":   true,
	"at":     true,
}

// NormalizeIdentWithSuffixStrip normalizes and drops one trailing
// suffix token ("plate_no" -> "plate"). Single-token names are kept whole.
func NormalizeIdentWithSuffixStrip(s string) string {
	tokens := TokenizeIdent(s)
	if len(tokens) > 1 && suffixTokens[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}

	return strings.Join(tokens, "")
}

// TokenizeIdent splits an identifier into lower-case tokens on separators
// (_ - . space) and case transitions.
// Examples:
//   - "plate_no" -> ["plate", "no"]
//   - "ownerName" -> ["owner", "name"]
//   - "VINCode" -> ["vin", "code"]
func TokenizeIdent(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports a lower→upper transition or the end of an acronym
// ("VINCode": split before 'C').
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
