package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"tidescraft/internal/store"
)

func (c *Client) UpsertEntity(ctx context.Context, e store.EntityInput) error {
	canonicalNorm := strings.ToLower(e.ID)

	propsJSON, err := json.Marshal(e.Properties)
	if err != nil {
		return fmt.Errorf("marshaling properties: %w", err)
	}

	tags := e.Tags
	if len(tags) == 0 {
		tags = nil
	}

	query := `
INSERT INTO entities (canonical_id, canonical_norm, kind, name, summary, source_file, source_hash, tags, properties, body, last_indexed, search_vector)
VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, '{}'::text[]), $9, $10, now(),
    setweight(to_tsvector('simple', coalesce($4, '')), 'A') ||
    setweight(to_tsvector('english', coalesce(array_to_string(COALESCE($8, '{}'::text[]), ' '), '')), 'B') ||
    setweight(to_tsvector('english', coalesce($10, '')), 'C')
)
ON CONFLICT (canonical_norm) DO UPDATE SET
    canonical_id = EXCLUDED.canonical_id,
    kind = EXCLUDED.kind,
    name = EXCLUDED.name,
    summary = EXCLUDED.summary,
    source_file = EXCLUDED.source_file,
    source_hash = EXCLUDED.source_hash,
    tags = EXCLUDED.tags,
    properties = EXCLUDED.properties,
    body = EXCLUDED.body,
    last_indexed = now(),
    search_vector = EXCLUDED.search_vector
`

	_, err = c.pool.Exec(ctx, query,
		e.ID,
		canonicalNorm,
		e.Kind,
		e.Name,
		e.Summary,
		e.SourceFile,
		e.SourceHash,
		tags,
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
WHERE canonical_norm = $1
`

	row := c.pool.QueryRow(ctx, query, strings.ToLower(id))

	var e store.Entity
	var propsBytes []byte
	err := row.Scan(
		&e.ID,
		&e.Kind,
		&e.Name,
		&e.Summary,
		&e.SourceFile,
		&e.SourceHash,
		&e.Tags,
		&propsBytes,
		&e.Body,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting entity: %w", err)
	}
	if len(propsBytes) > 0 {
		if err := json.Unmarshal(propsBytes, &e.Properties); err != nil {
			return nil, fmt.Errorf("unmarshaling properties: %w", err)
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
WHERE ($1 = '' OR kind = $1)
  AND ($2 = '' OR $2 ILIKE ANY (tags))
ORDER BY canonical_id
`

	rows, err := c.pool.Query(ctx, query, kind, tag)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var summaries []store.EntitySummary
	for rows.Next() {
		var s store.EntitySummary
		if err := rows.Scan(&s.ID, &s.Kind, &s.Name, &s.Summary, &s.Tags); err != nil {
			return nil, fmt.Errorf("scanning entity summary: %w", err)
		}
		if s.Tags == nil {
			s.Tags = []string{}
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
