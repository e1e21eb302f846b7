package model

import "unicode/utf16"

// DefaultVariants are assigned when an experiment declares none
var DefaultVariants = []string{"control", "variant_a", "variant_b"}

// AssignVariant deterministically picks a variant for a session. The same
// session always lands in the same bucket of the same experiment.
func AssignVariant(sessionID, experimentID string, variants []string) string {
	if len(variants) == 0 {
		variants = DefaultVariants
	}
	return variants[stringHash(sessionID+experimentID)%int64(len(variants))]
}

// stringHash is the 31-multiplier hash over UTF-16 code units with 32-bit
// wraparound, returned as an absolute value. Browsers compute the same value,
// so client and server agree on assignments.
func stringHash(s string) int64 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
