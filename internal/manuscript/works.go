package manuscript

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tidescraft/internal/parser"
)

// workCategories are the directories under the stories root that may hold
// works. The singular "novella" survives from an older layout.
var workCategories = []string{"shorts", "novellas", "novels", "novella"}

// Work is a discovered story work: a directory with a manuscript file whose
// frontmatter carries an ID and title.
type Work struct {
	ID          string
	Title       string
	Kind        string
	Path        string
	Manuscript  string
	Frontmatter map[string]any
}

// Scene is one scene file inside a work's scenes/ directory.
type Scene struct {
	ID    string
	Title string
	Path  string
	Work  string
}

// Clarification is returned when an identifier matches more than one
// candidate. The caller must present the options and ask, never pick one.
type Clarification struct {
	Identifier string
	Options    []string
}

func (c *Clarification) Error() string {
	return fmt.Sprintf("multiple matches for %q: %s", c.Identifier, strings.Join(c.Options, ", "))
}

// FindWorks discovers every work under the stories root, sorted by ID.
// Directories without a parseable manuscript are skipped silently.
func FindWorks(storiesRoot string) ([]Work, error) {
	var works []Work
	for _, category := range workCategories {
		categoryPath := filepath.Join(storiesRoot, category)
		entries, err := os.ReadDir(categoryPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			workPath := filepath.Join(categoryPath, entry.Name())
			manuscriptPath := filepath.Join(workPath, ManuscriptFile)
			content, err := os.ReadFile(manuscriptPath)
			if err != nil {
				continue
			}
			doc, err := parser.Parse(content)
			if err != nil {
				continue
			}
			id := doc.StringField("id")
			title := doc.StringField("title")
			if id == "" || title == "" {
				continue
			}
			kind := doc.StringField("kind")
			if kind == "" {
				kind = category
			}
			works = append(works, Work{
				ID:          id,
				Title:       title,
				Kind:        kind,
				Path:        workPath,
				Manuscript:  manuscriptPath,
				Frontmatter: doc.Frontmatter,
			})
		}
	}
	sort.Slice(works, func(i, j int) bool { return works[i].ID < works[j].ID })
	return works, nil
}

// FindScenes lists the scene files of one work, sorted by ID.
func FindScenes(work *Work) ([]Scene, error) {
	scenesDir := filepath.Join(work.Path, "scenes")
	entries, err := os.ReadDir(scenesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var scenes []Scene
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		scenePath := filepath.Join(scenesDir, entry.Name())
		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		title := id
		if content, err := os.ReadFile(scenePath); err == nil {
			if doc, err := parser.Parse(content); err == nil {
				if t := doc.StringField("title"); t != "" {
					title = t
				}
			}
		}
		scenes = append(scenes, Scene{ID: id, Title: title, Path: scenePath, Work: work.ID})
	}
	sort.Slice(scenes, func(i, j int) bool { return scenes[i].ID < scenes[j].ID })
	return scenes, nil
}

// ResolveWork finds a work by exact ID first, then by case-insensitive
// title substring. Zero matches is an error; more than one is a
// Clarification so callers can ask instead of guessing.
func ResolveWork(storiesRoot, identifier string) (*Work, error) {
	works, err := FindWorks(storiesRoot)
	if err != nil {
		return nil, err
	}

	for i := range works {
		if strings.EqualFold(works[i].ID, identifier) {
			return &works[i], nil
		}
	}

	needle := strings.ToLower(identifier)
	var matches []*Work
	for i := range works {
		if strings.Contains(strings.ToLower(works[i].Title), needle) {
			matches = append(matches, &works[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("work not found: %s", identifier)
	case 1:
		return matches[0], nil
	default:
		options := make([]string, len(matches))
		for i, m := range matches {
			options[i] = fmt.Sprintf("%s (%s)", m.Title, m.ID)
		}
		return nil, &Clarification{Identifier: identifier, Options: options}
	}
}

// ResolveScene finds a scene across all works by exact ID, then exact path,
// then case-insensitive path substring.
func ResolveScene(storiesRoot, identifier string) (*Scene, error) {
	works, err := FindWorks(storiesRoot)
	if err != nil {
		return nil, err
	}

	var all []Scene
	for i := range works {
		scenes, err := FindScenes(&works[i])
		if err != nil {
			return nil, err
		}
		all = append(all, scenes...)
	}

	for i := range all {
		if strings.EqualFold(all[i].ID, identifier) {
			return &all[i], nil
		}
	}
	abs, _ := filepath.Abs(identifier)
	for i := range all {
		if all[i].Path == identifier || all[i].Path == abs {
			return &all[i], nil
		}
	}

	needle := strings.ToLower(identifier)
	var matches []*Scene
	for i := range all {
		if strings.Contains(strings.ToLower(all[i].Path), needle) {
			matches = append(matches, &all[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("scene not found: %s", identifier)
	case 1:
		return matches[0], nil
	default:
		options := make([]string, len(matches))
		for i, m := range matches {
			options[i] = m.Path
		}
		return nil, &Clarification{Identifier: identifier, Options: options}
	}
}
