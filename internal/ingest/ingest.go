// Package ingest synchronizes a loaded entity collection into the entity
// store, incrementally by source hash.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"tidescraft/internal/entity"
	"tidescraft/internal/store"
)

type Result struct {
	EntitiesUpserted int
	EdgesUpserted    int
	EntitiesRemoved  int
	FilesSkipped     int
	Errors           []error
}

type Options struct {
	Full bool
}

// edgeCategories maps cross_refs categories onto edge types.
var edgeCategories = []struct {
	category string
	edgeType string
}{
	{"characters", "character"},
	{"locations", "location"},
	{"factions", "faction"},
	{"mechanics", "mechanic"},
	{"stories", "story"},
	{"rules_used", "rule"},
}

// Run upserts every entity in the collection into the store and rebuilds
// its edges, then removes entities whose source files are gone. Unless
// Full is set, entities whose source hash is unchanged are skipped.
func Run(ctx context.Context, col *entity.Collection, db store.Store, options Options) (*Result, error) {
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	result := &Result{}

	var existingHashes map[string]string
	if !options.Full {
		var err error
		existingHashes, err = db.SourceHashes(ctx)
		if err != nil {
			return nil, fmt.Errorf("get source hashes: %w", err)
		}
	}

	var currentFiles []string
	var processed []*entity.Entity

	for _, e := range col.All() {
		currentFiles = append(currentFiles, e.SourcePath)

		hash, err := computeHash(e.SourcePath)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("hashing %s: %w", e.SourcePath, err))
			continue
		}
		if !options.Full {
			if existing, ok := existingHashes[e.SourcePath]; ok && existing == hash {
				result.FilesSkipped++
				continue
			}
		}

		summary := e.Summaries.Medium
		if summary == "" {
			summary = e.Summaries.Short
		}

		input := store.EntityInput{
			ID:         e.ID,
			Kind:       string(e.Kind),
			Name:       e.Name,
			Summary:    summary,
			SourceFile: e.SourcePath,
			SourceHash: hash,
			Tags:       e.Tags,
			Properties: e.Frontmatter,
			Body:       e.Body,
		}

		if err := db.UpsertEntity(ctx, input); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("upserting %s: %w", e.ID, err))
			continue
		}
		result.EntitiesUpserted++
		processed = append(processed, e)
	}

	for _, e := range processed {
		for _, ec := range edgeCategories {
			for _, target := range e.CrossRefs[ec.category] {
				if target == "" {
					continue
				}
				if err := db.UpsertEdge(ctx, e.ID, target, ec.edgeType); err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("upserting edge for %s: %w", e.ID, err))
					continue
				}
				result.EdgesUpserted++
			}
		}
		for _, related := range e.RelatedTerms {
			target := related
			if t, ok := col.Get(related); ok {
				target = t.ID
			} else if t, ok := col.FindByName(related); ok {
				target = t.ID
			}
			if err := db.UpsertEdge(ctx, e.ID, target, "related"); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("upserting related edge for %s: %w", e.ID, err))
				continue
			}
			result.EdgesUpserted++
		}
	}

	deleted, err := db.RemoveStale(ctx, currentFiles)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("removing stale entities: %w", err))
	} else {
		result.EntitiesRemoved = int(deleted)
	}

	return result, nil
}

func computeHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
