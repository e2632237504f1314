package analyzer

// Intensity describes how strongly an emotion is expressed
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// ClassifyIntensity looks for intensity markers in normalized text.
// High markers win over low ones; no marker means medium.
func ClassifyIntensity(text string) Intensity {
	switch {
	case containsAny(text, highIntensityMarkers):
		return IntensityHigh
	case containsAny(text, lowIntensityMarkers):
		return IntensityLow
	default:
		return IntensityMedium
	}
}
