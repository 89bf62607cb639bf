package entity

import "strings"

// Summaries holds the graduated description fields used for matching and
// prompt assembly. All are optional.
type Summaries struct {
	Short  string // summary_50
	Medium string // summary_200
	Long   string // summary_600
}

// Entity is a canonically identified record loaded from frontmatter or the
// lexicon. CrossRefs are weak references: a listed target may not exist,
// which is exactly what the reference validator reports on.
type Entity struct {
	ID           string
	Kind         Kind
	Name         string
	Aliases      []string
	Tags         []string
	Summaries    Summaries
	CrossRefs    map[string][]string
	RelatedTerms []string
	Invariants   []string
	Watchlist    []string
	Rules        []string
	Date         string
	Frontmatter  map[string]any
	Body         string
	SourcePath   string
}

// Collection is the loader output: entities in deterministic load order plus
// a case-insensitive ID lookup.
type Collection struct {
	entities []*Entity
	byID     map[string]*Entity
}

func NewCollection() *Collection {
	return &Collection{byID: make(map[string]*Entity)}
}

// Add indexes an entity by its ID. Entities without an ID are not indexed
// and are invisible to every downstream component. The first entity wins on
// duplicate IDs.
func (c *Collection) Add(e *Entity) {
	if e == nil || e.ID == "" {
		return
	}
	key := strings.ToLower(e.ID)
	if _, exists := c.byID[key]; exists {
		return
	}
	c.byID[key] = e
	c.entities = append(c.entities, e)
}

func (c *Collection) Get(id string) (*Entity, bool) {
	if c == nil {
		return nil, false
	}
	e, ok := c.byID[strings.ToLower(id)]
	return e, ok
}

func (c *Collection) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// All returns entities in load order. Callers must not mutate the slice.
func (c *Collection) All() []*Entity {
	if c == nil {
		return nil
	}
	return c.entities
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entities)
}

// FindByName returns the first entity whose name matches
// case-insensitively. Cross-references occasionally use display names where
// IDs are expected; this is the fallback lookup for those.
func (c *Collection) FindByName(name string) (*Entity, bool) {
	if c == nil || name == "" {
		return nil, false
	}
	for _, e := range c.entities {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return nil, false
}

// IDs returns all indexed IDs in load order.
func (c *Collection) IDs() []string {
	ids := make([]string, 0, len(c.entities))
	for _, e := range c.entities {
		ids = append(ids, e.ID)
	}
	return ids
}
