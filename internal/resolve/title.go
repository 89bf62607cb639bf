package resolve

import (
	"sort"
	"strings"
)

// TitleThreshold is the maximum normalized edit distance for a title to be
// considered a match against a free-text query.
const TitleThreshold = 0.5

// TitleCandidate is one member of a small enumerable set of titled things
// (works, scenes) a query may refer to.
type TitleCandidate struct {
	ID    string
	Title string
}

// TitleResult distinguishes a unique match from an ambiguous one. With more
// than one candidate under the threshold, Match stays nil and Options holds
// the ranked candidates: the caller must ask, never guess, before anything
// destructive.
type TitleResult struct {
	Match   *TitleCandidate
	Options []TitleCandidate
}

// MatchTitles fuzzy-matches a query against candidate titles using
// normalized edit distance.
func MatchTitles(query string, candidates []TitleCandidate) TitleResult {
	type scored struct {
		candidate TitleCandidate
		score     float64
	}
	var matches []scored
	q := strings.ToLower(query)
	for _, c := range candidates {
		d := NormalizedDistance(strings.ToLower(c.Title), q)
		if d < TitleThreshold {
			matches = append(matches, scored{candidate: c, score: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	switch len(matches) {
	case 0:
		return TitleResult{}
	case 1:
		m := matches[0].candidate
		return TitleResult{Match: &m}
	default:
		options := make([]TitleCandidate, len(matches))
		for i, m := range matches {
			options[i] = m.candidate
		}
		return TitleResult{Options: options}
	}
}
