package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// All DDL runs in one call, which PostgreSQL executes atomically in an
	// implicit transaction. IF NOT EXISTS keeps repeated runs idempotent.
	ddl := `
CREATE TABLE IF NOT EXISTS entities (
    id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    canonical_id    TEXT NOT NULL,
    canonical_norm  TEXT NOT NULL,
    kind            TEXT NOT NULL,
    name            TEXT NOT NULL,
    summary         TEXT DEFAULT '',
    source_file     TEXT,
    source_hash     TEXT,
    tags            TEXT[] DEFAULT '{}',
    properties      JSONB DEFAULT '{}',
    body            TEXT DEFAULT '',
    last_indexed    TIMESTAMPTZ DEFAULT now(),
    CONSTRAINT uq_entity_canonical UNIQUE (canonical_norm)
);

ALTER TABLE entities ADD COLUMN IF NOT EXISTS search_vector TSVECTOR;

CREATE TABLE IF NOT EXISTS edges (
    id       BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    src_id   TEXT NOT NULL,
    dst_id   TEXT NOT NULL,
    rel_type TEXT NOT NULL,
    CONSTRAINT uq_edge UNIQUE (src_id, dst_id, rel_type)
);

CREATE INDEX IF NOT EXISTS idx_entities_search ON entities USING GIN (search_vector);
CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities (kind);
CREATE INDEX IF NOT EXISTS idx_entities_source_file ON entities (source_file);
CREATE INDEX IF NOT EXISTS idx_entities_canonical ON entities (canonical_norm);
CREATE INDEX IF NOT EXISTS idx_entities_tags ON entities USING GIN (tags);
CREATE INDEX IF NOT EXISTS idx_edges_src ON edges (src_id);
CREATE INDEX IF NOT EXISTS idx_edges_dst ON edges (dst_id);
CREATE INDEX IF NOT EXISTS idx_edges_type ON edges (rel_type);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
