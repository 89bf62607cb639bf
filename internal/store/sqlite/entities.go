package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tidescraft/internal/store"
)

func (c *Client) UpsertEntity(ctx context.Context, e store.EntityInput) error {
	canonicalNorm := strings.ToLower(e.ID)

	propsJSON, err := json.Marshal(e.Properties)
	if err != nil {
		return fmt.Errorf("marshaling properties: %w", err)
	}

	tagsJSON, err := json.Marshal(e.Tags)
	if err != nil {
		return fmt.Errorf("marshaling tags: %w", err)
	}

	query := `
	INSERT INTO entities (canonical_id, canonical_norm, kind, name, summary, source_file, source_hash, tags, properties, body, last_indexed)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
	ON CONFLICT (canonical_norm) DO UPDATE SET
		canonical_id = excluded.canonical_id,
		kind = excluded.kind,
		name = excluded.name,
		summary = excluded.summary,
		source_file = excluded.source_file,
		source_hash = excluded.source_hash,
		tags = excluded.tags,
		properties = excluded.properties,
		body = excluded.body,
		last_indexed = datetime('now')
	`

	_, err = c.db.ExecContext(ctx, query,
		e.ID,
		canonicalNorm,
		e.Kind,
		e.Name,
		e.Summary,
		e.SourceFile,
		e.SourceHash,
		tagsJSON,
		propsJSON,
		e.Body,
	)
	if err != nil {
		return fmt.Errorf("upserting entity: %w", err)
	}
	return nil
}

func (c *Client) GetEntity(ctx context.Context, id string) (*store.Entity, error) {
	query := `
	SELECT canonical_id, kind, name, summary, source_file, source_hash, tags, properties, body
	FROM entities
	WHERE canonical_norm = ?
	`

	row := c.db.QueryRowContext(ctx, query, strings.ToLower(id))

	var e store.Entity
	var propsBytes, tagsBytes []byte
	err := row.Scan(
		&e.ID,
		&e.Kind,
		&e.Name,
		&e.Summary,
		&e.SourceFile,
		&e.SourceHash,
		&tagsBytes,
		&propsBytes,
		&e.Body,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting entity: %w", err)
	}
	if len(propsBytes) > 0 {
		if err := json.Unmarshal(propsBytes, &e.Properties); err != nil {
			return nil, fmt.Errorf("unmarshaling properties: %w", err)
		}
	}
	if len(tagsBytes) > 0 {
		if err := json.Unmarshal(tagsBytes, &e.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}
	if e.Properties == nil {
		e.Properties = map[string]any{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return &e, nil
}

func (c *Client) ListEntities(ctx context.Context, kind, tag string) ([]store.EntitySummary, error) {
	query := `
	SELECT canonical_id, kind, name, summary, tags
	FROM entities
	WHERE (? = '' OR kind = ?)
	ORDER BY canonical_id
	`

	rows, err := c.db.QueryContext(ctx, query, kind, kind)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var summaries []store.EntitySummary
	for rows.Next() {
		var s store.EntitySummary
		var tagsBytes []byte
		if err := rows.Scan(&s.ID, &s.Kind, &s.Name, &s.Summary, &tagsBytes); err != nil {
			return nil, fmt.Errorf("scanning entity summary: %w", err)
		}
		if len(tagsBytes) > 0 {
			if err := json.Unmarshal(tagsBytes, &s.Tags); err != nil {
				return nil, fmt.Errorf("unmarshaling tags: %w", err)
			}
		}
		if s.Tags == nil {
			s.Tags = []string{}
		}

		if tag != "" && !containsTag(s.Tags, tag) {
			continue
		}

		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity summaries: %w", err)
	}

	if summaries == nil {
		summaries = []store.EntitySummary{}
	}

	return summaries, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
