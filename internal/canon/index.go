package canon

import (
	"regexp"
	"sort"
	"strings"

	"tidescraft/internal/entity"
)

// Index is the set of IDs considered valid reference targets for one run.
// Lookups are case-insensitive: the generated index document uses lower-case
// prefixes while entity frontmatter uses upper-case, and both forms must
// resolve to the same entry.
type Index struct {
	ids map[string]struct{}
}

var indexTokenPattern = regexp.MustCompile("`([A-Za-z]+-[0-9]{4})`")

func NewIndex() *Index {
	return &Index{ids: make(map[string]struct{})}
}

func (i *Index) Add(id string) {
	if id == "" {
		return
	}
	i.ids[strings.ToLower(id)] = struct{}{}
}

func (i *Index) Has(id string) bool {
	if i == nil {
		return false
	}
	_, ok := i.ids[strings.ToLower(id)]
	return ok
}

func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.ids)
}

// IDs returns the indexed IDs in sorted order.
func (i *Index) IDs() []string {
	out := make([]string, 0, len(i.ids))
	for id := range i.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IndexFromDocument extracts every inline-code canonical ID token from a
// generated index document such as CANONICAL_INDEX.md.
func IndexFromDocument(content []byte) *Index {
	idx := NewIndex()
	for _, match := range indexTokenPattern.FindAllSubmatch(content, -1) {
		idx.Add(string(match[1]))
	}
	return idx
}

// IndexFromEntities builds the index as the union of all loaded entity IDs.
func IndexFromEntities(col *entity.Collection) *Index {
	idx := NewIndex()
	for _, e := range col.All() {
		idx.Add(e.ID)
	}
	return idx
}
