package canon

import (
	"regexp"
	"sort"
)

var idShapePattern = regexp.MustCompile(`^[A-Za-z]+-[0-9]{4}$`)

// IsCanonicalID reports whether a string looks like a canonical ID
// (PREFIX-NNNN in either case). Anything else is ignored by the validator,
// never flagged.
func IsCanonicalID(s string) bool {
	return idShapePattern.MatchString(s)
}

// ExtractIDs collects every ID-shaped string from an arbitrarily nested
// frontmatter value: plain strings, lists, and maps (including the
// relationships form of {target_id: ...} objects) at any depth. Map keys are
// visited in sorted order so the output is deterministic.
func ExtractIDs(value any) []string {
	var ids []string
	collectIDs(value, &ids)
	return ids
}

func collectIDs(value any, ids *[]string) {
	switch v := value.(type) {
	case string:
		if IsCanonicalID(v) {
			*ids = append(*ids, v)
		}
	case []any:
		for _, item := range v {
			collectIDs(item, ids)
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			collectIDs(v[key], ids)
		}
	}
}
