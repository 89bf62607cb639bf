package resolve

import (
	"sort"
	"strings"

	"tidescraft/internal/entity"
)

// DefaultLimit caps the ranked candidate list returned to callers.
const DefaultLimit = 12

// Field weights for the token-overlap score. Names dominate, summaries only
// nudge.
const (
	weightName    = 5
	weightAlias   = 4
	weightTag     = 3
	weightSummary = 1
)

// Tokenize lower-cases the input, strips everything outside
// [a-z0-9-_' ], and splits into words.
func Tokenize(s string) []string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

func tokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func scoreField(text string, queryTokens []string, weight int) int {
	if text == "" {
		return 0
	}
	set := tokenSet(text)
	score := 0
	for _, qt := range queryTokens {
		if _, ok := set[qt]; ok {
			score += weight
		}
	}
	return score
}

// Score computes the weighted token-overlap relevance of one entity for the
// given query tokens. Zero means no overlap at all.
func Score(e *entity.Entity, queryTokens []string) int {
	s := scoreField(e.Name, queryTokens, weightName)
	for _, alias := range e.Aliases {
		s += scoreField(alias, queryTokens, weightAlias)
	}
	for _, tag := range e.Tags {
		s += scoreField(tag, queryTokens, weightTag)
	}
	s += scoreField(e.Summaries.Short, queryTokens, weightSummary)
	s += scoreField(e.Summaries.Medium, queryTokens, weightSummary)
	s += scoreField(e.Summaries.Long, queryTokens, weightSummary)
	return s
}

// Resolve ranks entities against a free-text query and returns up to limit
// IDs, best first. Entities with zero overlap are excluded entirely. Ties
// keep collection order, so repeated calls over the same collection are
// deterministic.
func Resolve(query string, col *entity.Collection, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	queryTokens := Tokenize(query)

	type scored struct {
		id    string
		score int
	}
	var candidates []scored
	for _, e := range col.All() {
		if s := Score(e, queryTokens); s > 0 {
			candidates = append(candidates, scored{id: e.ID, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, c := range candidates {
		key := strings.ToLower(c.id)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c.id)
		if len(out) >= limit {
			break
		}
	}
	return out
}
