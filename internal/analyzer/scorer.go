package analyzer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Scores holds the weighted keyword score for each lexicon category
type Scores map[Category]float64

// Max returns the highest score, or 0 for an empty vector
func (s Scores) Max() float64 {
	best := 0.0
	for _, v := range s {
		if v > best {
			best = v
		}
	}
	return best
}

// TierWeights configures how much a match in each tier is worth
type TierWeights struct {
	Primary    float64
	Secondary  float64
	Contextual float64
}

// DefaultTierWeights returns the 3/2/1 weighting
func DefaultTierWeights() TierWeights {
	return TierWeights{Primary: 3, Secondary: 2, Contextual: 1}
}

// Scorer computes keyword scores from normalized text
type Scorer struct {
	lexicon Lexicon
	weights TierWeights
}

// NewScorer creates a Scorer for the given lexicon and weights
func NewScorer(lexicon Lexicon, weights TierWeights) *Scorer {
	return &Scorer{lexicon: lexicon, weights: weights}
}

// Score counts, per tier, how many phrases occur in text and returns the
// weighted sum for every category. Matching is plain substring containment,
// so "joyful" also counts "joy". Text is expected to be normalized already.
func (s *Scorer) Score(text string) Scores {
	scores := make(Scores, len(s.lexicon))
	for category, tiers := range s.lexicon {
		score := 0.0
		score += s.weights.Primary * float64(countMatches(text, tiers.Primary))
		score += s.weights.Secondary * float64(countMatches(text, tiers.Secondary))
		score += s.weights.Contextual * float64(countMatches(text, tiers.Contextual))
		scores[category] = score
	}
	return scores
}

// countMatches returns how many phrases are contained in text.
// A phrase counts once no matter how often it appears.
func countMatches(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			n++
		}
	}
	return n
}

// containsAny reports whether text contains at least one phrase
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Typographic apostrophes would otherwise never match "can't" and friends.
var apostrophes = strings.NewReplacer("\u2019", "'", "\u2018", "'")

// Normalize prepares raw input for keyword matching: NFC composition,
// straight apostrophes, then lower-casing.
func Normalize(text string) string {
	// Casers carry state and are not safe to share between goroutines.
	lower := cases.Lower(language.Und)
	return lower.String(apostrophes.Replace(norm.NFC.String(text)))
}
