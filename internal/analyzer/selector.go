package analyzer

import "sort"

// Selection is the outcome of picking categories from a score vector
type Selection struct {
	Primary   Category
	Secondary []Category
	MaxScore  float64
}

// Select picks the primary category and up to limit secondary categories.
//
// When every score is zero the result is Neutral with no secondaries.
// Otherwise the highest score wins; equal scores are resolved by
// declaration order (see Categories), earliest first. Secondaries are the
// remaining positive scores, highest first, with the same tie-break.
func Select(scores Scores, limit int) Selection {
	ranked := make([]Category, 0, len(scores))
	for c, v := range scores {
		if v > 0 {
			ranked = append(ranked, c)
		}
	}

	if len(ranked) == 0 {
		return Selection{Primary: Neutral, Secondary: []Category{}}
	}

	sort.Slice(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i]], scores[ranked[j]]
		if si != sj {
			return si > sj
		}
		return rankOf(ranked[i]) < rankOf(ranked[j])
	})

	primary := ranked[0]
	rest := ranked[1:]
	if limit < 0 {
		limit = 0
	}
	if len(rest) > limit {
		rest = rest[:limit]
	}

	secondary := make([]Category, len(rest))
	copy(secondary, rest)

	return Selection{
		Primary:   primary,
		Secondary: secondary,
		MaxScore:  scores[primary],
	}
}

// rankOf returns the declaration index; unknown categories sort last
func rankOf(c Category) int {
	if r, ok := categoryRank[c]; ok {
		return r
	}
	return len(categoryOrder)
}
