package canon

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tidescraft/internal/parser"
)

// ReferenceFields are the frontmatter keys scanned for cross-references, in
// report order.
var ReferenceFields = []string{"cross_refs", "references", "appears_in", "rules_used", "relationships"}

// MissingRef is one unresolved reference inside a single document.
type MissingRef struct {
	ID    string `json:"id"`
	Field string `json:"field"`
}

// FileMissing and FileError are the two accumulated finding classes: missing
// references fail the run, parse errors are reported but block nothing.
type FileMissing struct {
	File string `json:"file"`
	ID   string `json:"id"`
}

type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type Report struct {
	GeneratedAt        time.Time     `json:"generated_at"`
	CanonicalIDsLoaded int           `json:"canonical_ids_loaded"`
	Missing            []FileMissing `json:"missing"`
	Errors             []FileError   `json:"errors"`
}

func (r *Report) Failed() bool {
	return len(r.Missing) > 0
}

// MissingRefs checks one document's reference fields against the index and
// returns the unresolved IDs in field order. IDs that do not match the
// canonical shape are ignored, not flagged.
func MissingRefs(frontmatter map[string]any, idx *Index) []MissingRef {
	var missing []MissingRef
	for _, field := range ReferenceFields {
		value, ok := frontmatter[field]
		if !ok {
			continue
		}
		for _, id := range ExtractIDs(value) {
			if !idx.Has(id) {
				missing = append(missing, MissingRef{ID: id, Field: field})
			}
		}
	}
	return missing
}

// Scan walks the given roots and validates every markdown document's
// references against the index. A file without frontmatter is skipped;
// malformed YAML is accumulated as a file error and scanning continues.
func Scan(roots []string, exclude []string, idx *Index) (*Report, error) {
	report := &Report{
		GeneratedAt:        time.Now().UTC(),
		CanonicalIDsLoaded: idx.Len(),
		Missing:            []FileMissing{},
		Errors:             []FileError{},
	}

	excluded := make([]string, 0, len(exclude))
	for _, path := range exclude {
		if path != "" {
			excluded = append(excluded, filepath.Clean(path))
		}
	}

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
			if d.IsDir() {
				if isExcludedPath(path, excluded) {
					return filepath.SkipDir
				}
				return nil
			}
			name := strings.ToLower(d.Name())
			if !strings.HasSuffix(name, ".md") || name == "readme.md" {
				return nil
			}
			scanFile(path, idx, report)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return report, nil
}

func scanFile(path string, idx *Index, report *Report) {
	doc, err := parser.ParseFile(path)
	if err != nil {
		if errors.Is(err, parser.ErrNoFrontmatter) {
			return
		}
		report.Errors = append(report.Errors, FileError{File: path, Error: err.Error()})
		return
	}

	for _, ref := range MissingRefs(doc.Frontmatter, idx) {
		report.Missing = append(report.Missing, FileMissing{File: path, ID: ref.ID})
	}
}

func isExcludedPath(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
