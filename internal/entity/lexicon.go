package entity

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type lexiconFile struct {
	Terms []lexiconTerm `yaml:"terms"`
}

type lexiconTerm struct {
	ID         string   `yaml:"id"`
	Term       string   `yaml:"term"`
	Category   string   `yaml:"category"`
	Definition string   `yaml:"definition"`
	Related    []string `yaml:"related"`
}

// loadLexicon reads data/lexicon/terms.yaml and adds each term as a
// term-kind entity. Terms without an explicit id get a derived TERM- id so
// they remain addressable.
func loadLexicon(path string, result *Result) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var lx lexiconFile
	if err := yaml.Unmarshal(data, &lx); err != nil {
		return fmt.Errorf("parsing lexicon: %w", err)
	}

	for _, t := range lx.Terms {
		id := t.ID
		if id == "" {
			if t.Term == "" {
				continue
			}
			id = "TERM-" + strings.ReplaceAll(t.Term, " ", "-")
		}
		e := &Entity{
			ID:           id,
			Kind:         KindTerm,
			Name:         t.Term,
			Summaries:    Summaries{Short: t.Definition},
			RelatedTerms: t.Related,
			SourcePath:   path,
		}
		if t.Category != "" {
			e.Tags = []string{t.Category}
		}
		result.Collection.Add(e)
	}

	return nil
}
