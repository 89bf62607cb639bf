package checks

import (
	"bufio"
	"os"
	"regexp"
	"sort"
	"strings"
)

var (
	glossaryHeading = regexp.MustCompile(`###\s+([A-Z][a-zA-Z\s-]+)`)
	titleCaseTerm   = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`)
)

// GlossaryWarning flags a capitalized multiword term used in prose that the
// glossary does not define. These are warnings only: an undefined term is a
// gap in the glossary, not an error in the story.
type GlossaryWarning struct {
	File string `json:"file"`
	Term string `json:"term"`
}

// GlossaryTerms extracts defined terms from glossary markdown. Terms are
// "### Heading" entries in title case.
func GlossaryTerms(content string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, m := range glossaryHeading.FindAllStringSubmatch(content, -1) {
		terms[strings.TrimSpace(m[1])] = struct{}{}
	}
	return terms
}

// LoadIgnoreList reads one ignored term per line, skipping blanks. A
// missing file means an empty list.
func LoadIgnoreList(path string) (map[string]struct{}, error) {
	ignored := make(map[string]struct{})
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ignored, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if term := strings.TrimSpace(scanner.Text()); term != "" {
			ignored[term] = struct{}{}
		}
	}
	return ignored, scanner.Err()
}

// EnforceGlossary finds capitalized multiword terms in body text that are
// neither defined in the glossary nor on the ignore list. Each undefined
// term is reported once per file, in sorted order.
func EnforceGlossary(file, body string, terms, ignored map[string]struct{}) []GlossaryWarning {
	found := make(map[string]struct{})
	for _, m := range titleCaseTerm.FindAllStringSubmatch(body, -1) {
		found[m[1]] = struct{}{}
	}

	var undefined []string
	for term := range found {
		if _, ok := terms[term]; ok {
			continue
		}
		if _, ok := ignored[term]; ok {
			continue
		}
		undefined = append(undefined, term)
	}
	sort.Strings(undefined)

	warnings := make([]GlossaryWarning, 0, len(undefined))
	for _, term := range undefined {
		warnings = append(warnings, GlossaryWarning{File: file, Term: term})
	}
	return warnings
}
