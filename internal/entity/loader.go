package entity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tidescraft/internal/parser"
)

// Loader walks content roots and produces a Collection. Loading is a pure
// read and is idempotent: an unchanged file set always yields the same
// collection, in the same order.
type Loader struct {
	DataRoots   []string
	StoryRoots  []string
	LexiconPath string
	Exclude     []string
}

// ParseError records a file whose frontmatter could not be parsed. One bad
// file never blocks the rest of the corpus.
type ParseError struct {
	Path string
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

type Result struct {
	Collection *Collection
	Errors     []ParseError
	Skipped    int
}

func (l *Loader) Load() (*Result, error) {
	result := &Result{Collection: NewCollection()}

	dataFiles, err := walkMarkdownFiles(l.DataRoots, l.Exclude)
	if err != nil {
		return nil, fmt.Errorf("walking data roots: %w", err)
	}
	for _, path := range dataFiles {
		l.loadFile(path, KindLore, result)
	}

	storyFiles, err := walkMarkdownFiles(l.StoryRoots, l.Exclude)
	if err != nil {
		return nil, fmt.Errorf("walking story roots: %w", err)
	}
	for _, path := range storyFiles {
		l.loadFile(path, KindStory, result)
	}

	if l.LexiconPath != "" {
		if err := loadLexicon(l.LexiconPath, result); err != nil {
			result.Errors = append(result.Errors, ParseError{Path: l.LexiconPath, Err: err})
		}
	}

	return result, nil
}

func (l *Loader) loadFile(path string, fallback Kind, result *Result) {
	doc, err := parser.ParseFile(path)
	if err != nil {
		if errors.Is(err, parser.ErrNoFrontmatter) {
			result.Skipped++
			return
		}
		result.Errors = append(result.Errors, ParseError{Path: path, Err: err})
		return
	}

	e := FromDocument(doc, fallback)
	if e == nil {
		result.Skipped++
		return
	}
	result.Collection.Add(e)
}

// FromDocument builds an entity from parsed frontmatter. A document without
// an id yields nil: such files are invisible downstream.
func FromDocument(doc *parser.Document, fallback Kind) *Entity {
	id := doc.StringField("id")
	if id == "" {
		return nil
	}

	kind, ok := ParseKind(doc.StringField("type"))
	if !ok {
		if kind, ok = KindFromID(id); !ok {
			kind = fallback
		}
	}

	name := doc.StringField("name")
	if name == "" {
		name = doc.StringField("title")
	}

	e := &Entity{
		ID:      id,
		Kind:    kind,
		Name:    name,
		Aliases: parser.StringList(doc.Frontmatter["aliases"]),
		Tags:    parser.StringList(doc.Frontmatter["tags"]),
		Summaries: Summaries{
			Short:  doc.StringField("summary_50"),
			Medium: doc.StringField("summary_200"),
			Long:   doc.StringField("summary_600"),
		},
		RelatedTerms: parser.StringList(doc.Frontmatter["related_terms"]),
		Rules:        parser.StringList(doc.Frontmatter["rules"]),
		Date:         dateString(doc.Frontmatter["date"]),
		Frontmatter:  doc.Frontmatter,
		Body:         doc.Body,
		SourcePath:   doc.SourceFile,
	}

	if refs, ok := doc.Frontmatter["cross_refs"].(map[string]any); ok {
		e.CrossRefs = make(map[string][]string, len(refs))
		for category, value := range refs {
			if ids := parser.StringList(value); ids != nil {
				e.CrossRefs[category] = ids
			}
		}
	}

	if continuity, ok := doc.Frontmatter["continuity"].(map[string]any); ok {
		e.Invariants = parser.StringList(continuity["invariants"])
		e.Watchlist = parser.StringList(continuity["watchlist"])
	}

	return e
}

func dateString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return ""
	}
}

func walkMarkdownFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && isExcluded(path, excluded) {
				return filepath.SkipDir
			}
			if d.IsDir() {
				return nil
			}
			name := strings.ToLower(d.Name())
			if !strings.HasSuffix(name, ".md") || name == "readme.md" {
				return nil
			}
			if isExcluded(path, excluded) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
