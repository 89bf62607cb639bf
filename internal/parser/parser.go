package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a markdown file split into YAML frontmatter and body.
// Field requirements are the caller's concern; a document with an empty
// frontmatter map is still a valid parse.
type Document struct {
	Frontmatter map[string]any
	Body        string
	SourceFile  string
}

var (
	ErrNoFrontmatter = errors.New("no frontmatter found")
	ErrInvalidYAML   = errors.New("invalid YAML in frontmatter")
)

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

func Parse(content []byte) (*Document, error) {
	// Windows-authored files carry CRLF line endings; normalize so marker
	// detection sees plain newlines.
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	trimmed := bytes.TrimLeft(content, "\ufeff\n\r\t ")
	if !bytes.HasPrefix(trimmed, []byte("---\n")) {
		return nil, ErrNoFrontmatter
	}

	rest := trimmed[len("---\n"):]
	end := bytes.Index(rest, []byte("---\n"))
	var yamlBytes, body []byte
	if end == -1 {
		// A closing marker at EOF without a trailing newline still counts.
		if bytes.HasSuffix(rest, []byte("\n---")) {
			yamlBytes = rest[:len(rest)-len("---")]
		} else {
			return nil, ErrNoFrontmatter
		}
	} else {
		yamlBytes = rest[:end]
		body = rest[end+len("---\n"):]
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal(yamlBytes, &frontmatter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return &Document{
		Frontmatter: frontmatter,
		Body:        string(body),
	}, nil
}

// StringField reads a scalar string out of frontmatter, tolerating absence.
func (d *Document) StringField(key string) string {
	if d == nil || d.Frontmatter == nil {
		return ""
	}
	s, _ := d.Frontmatter[key].(string)
	return s
}

// StringList coerces a frontmatter value that may be a scalar or a list
// into a string slice. Non-string items are dropped.
func StringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}
