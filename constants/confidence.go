package constants

// ConfidenceLevel buckets an extraction confidence score for display.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// ClassifyConfidence maps a score to a level. 0.8 and above is High,
// 0.5 and above is Medium, everything below is Low.
func ClassifyConfidence(score float64) ConfidenceLevel {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
