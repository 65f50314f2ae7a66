package constants

import (
	"strings"
)

// LateFeeType is the canonical late fee structure named in a lease.
type LateFeeType string

const (
	LateFeePercentage LateFeeType = "percentage"
	LateFeeFlat       LateFeeType = "flat_amount"
	LateFeeNone       LateFeeType = ""
)

// CanonicalizeLateFeeType maps free-form model output onto a stable type.
// Unrecognized input maps to LateFeeNone.
func CanonicalizeLateFeeType(input string) (LateFeeType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return LateFeeNone, false
	}

	// synonyms map
	synonyms := map[string]LateFeeType{
		"percent":     LateFeePercentage,
		"pct":         LateFeePercentage,
		"%":           LateFeePercentage,
		"flat":        LateFeeFlat,
		"fixed":       LateFeeFlat,
		"flat fee":    LateFeeFlat,
		"flat rate":   LateFeeFlat,
		"fixed fee":   LateFeeFlat,
		"flat amount": LateFeeFlat,
		"dollar":      LateFeeFlat,
	}

	if t, ok := synonyms[normalized]; ok {
		return t, true
	}

	switch normalized {
	case string(LateFeePercentage):
		return LateFeePercentage, true
	case string(LateFeeFlat):
		return LateFeeFlat, true
	}

	return LateFeeNone, false
}
