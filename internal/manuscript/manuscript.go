package manuscript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tidescraft/internal/parser"
)

// ManuscriptFile is the per-work file holding the scene include list in its
// frontmatter.
const ManuscriptFile = "manuscript.md"

// LoadIncludeList reads the scene ordering from a work's manuscript
// frontmatter. Both the current `scenes` field and the older `include`
// field are honored; entries may be plain paths or maps carrying a `file`
// or `id` key.
func LoadIncludeList(workDir string) ([]string, error) {
	path := filepath.Join(workDir, ManuscriptFile)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manuscript not found at %s: %w", path, err)
	}
	doc, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse manuscript frontmatter: %w", err)
	}

	raw, ok := doc.Frontmatter["scenes"]
	if !ok {
		raw = doc.Frontmatter["include"]
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, nil
	}

	var paths []string
	for _, item := range list {
		switch v := item.(type) {
		case string:
			if v != "" {
				paths = append(paths, v)
			}
		case map[string]any:
			if file, ok := v["file"].(string); ok && file != "" {
				paths = append(paths, file)
			} else if id, ok := v["id"].(string); ok && id != "" {
				paths = append(paths, "scenes/"+id+".md")
			}
		}
	}
	return paths, nil
}

// SaveIncludeList writes the scene ordering back into the manuscript's
// frontmatter, preserving every other frontmatter field and the body.
func SaveIncludeList(workDir string, includeList []string) error {
	path := filepath.Join(workDir, ManuscriptFile)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("manuscript not found at %s: %w", path, err)
	}
	doc, err := parser.Parse(content)
	if err != nil {
		return fmt.Errorf("parse manuscript frontmatter: %w", err)
	}

	if doc.Frontmatter == nil {
		doc.Frontmatter = make(map[string]any)
	}
	doc.Frontmatter["scenes"] = includeList
	delete(doc.Frontmatter, "include")

	fm, err := yaml.Marshal(doc.Frontmatter)
	if err != nil {
		return fmt.Errorf("marshal manuscript frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n")
	if doc.Body != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimLeft(doc.Body, "\n"))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
