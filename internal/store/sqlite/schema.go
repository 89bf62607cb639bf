package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS entities (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		canonical_id    TEXT NOT NULL,
		canonical_norm  TEXT NOT NULL,
		kind            TEXT NOT NULL,
		name            TEXT NOT NULL,
		summary         TEXT DEFAULT '',
		source_file     TEXT,
		source_hash     TEXT,
		tags            TEXT DEFAULT '[]',
		properties      TEXT DEFAULT '{}',
		body            TEXT DEFAULT '',
		last_indexed    TEXT DEFAULT (datetime('now')),
		CONSTRAINT uq_entity_canonical UNIQUE (canonical_norm)
	);

	CREATE TABLE IF NOT EXISTS edges (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		src_id   TEXT NOT NULL,
		dst_id   TEXT NOT NULL,
		rel_type TEXT NOT NULL,
		CONSTRAINT uq_edge UNIQUE (src_id, dst_id, rel_type)
	);

	CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities (kind);
	CREATE INDEX IF NOT EXISTS idx_entities_source_file ON entities (source_file);
	CREATE INDEX IF NOT EXISTS idx_entities_canonical ON entities (canonical_norm);
	CREATE INDEX IF NOT EXISTS idx_edges_src ON edges (src_id);
	CREATE INDEX IF NOT EXISTS idx_edges_dst ON edges (dst_id);
	CREATE INDEX IF NOT EXISTS idx_edges_type ON edges (rel_type);

	CREATE VIRTUAL TABLE IF NOT EXISTS entities_fts USING fts5(
		name,
		tags,
		body,
		content=entities,
		content_rowid=id
	);

	CREATE TRIGGER IF NOT EXISTS entities_ai AFTER INSERT ON entities BEGIN
		INSERT INTO entities_fts(rowid, name, tags, body)
		VALUES (new.id, new.name, new.tags, new.body);
	END;

	CREATE TRIGGER IF NOT EXISTS entities_ad AFTER DELETE ON entities BEGIN
		INSERT INTO entities_fts(entities_fts, rowid, name, tags, body)
		VALUES ('delete', old.id, old.name, old.tags, old.body);
	END;

	CREATE TRIGGER IF NOT EXISTS entities_au AFTER UPDATE ON entities BEGIN
		INSERT INTO entities_fts(entities_fts, rowid, name, tags, body)
		VALUES ('delete', old.id, old.name, old.tags, old.body);
		INSERT INTO entities_fts(rowid, name, tags, body)
		VALUES (new.id, new.name, new.tags, new.body);
	END;
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

// splitStatements cuts the DDL into statements on line-ending semicolons.
// Trigger bodies contain semicolons of their own, so splitting is suspended
// between a CREATE TRIGGER's BEGIN and its closing END;.
func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder
	inTrigger := false

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		upper := strings.ToUpper(stripped)
		if strings.HasPrefix(upper, "CREATE TRIGGER") {
			inTrigger = true
		}
		if inTrigger {
			if upper == "END;" {
				inTrigger = false
				statements = append(statements, current.String())
				current.Reset()
			}
			continue
		}

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}

	return statements
}
