package domain

import "strings"

// NormalizeLemma prepares a lemma for use as a dictionary key:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//
// Umlauts and ß are preserved; "Tür" and "tür" normalize to the same key
// but remain distinct from "tur".
func NormalizeLemma(lemma string) string {
	return strings.ToLower(strings.TrimSpace(lemma))
}
