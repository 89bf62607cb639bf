package postgres

import (
	"context"
	"fmt"
	"strings"

	"tidescraft/internal/store"
)

func (c *Client) UpsertEdge(ctx context.Context, fromID, toID, relType string) error {
	query := `
INSERT INTO edges (src_id, dst_id, rel_type)
VALUES ($1, $2, $3)
ON CONFLICT (src_id, dst_id, rel_type) DO NOTHING
`
	_, err := c.pool.Exec(ctx, query, strings.ToLower(fromID), strings.ToLower(toID), relType)
	if err != nil {
		return fmt.Errorf("upserting edge: %w", err)
	}
	return nil
}

func (c *Client) ListEdges(ctx context.Context, id string) ([]store.Edge, error) {
	query := `
SELECT src_id, dst_id, rel_type
FROM edges
WHERE src_id = $1 OR dst_id = $1
ORDER BY src_id, dst_id, rel_type
`

	rows, err := c.pool.Query(ctx, query, strings.ToLower(id))
	if err != nil {
		return nil, fmt.Errorf("listing edges: %w", err)
	}
	defer rows.Close()

	var edges []store.Edge
	for rows.Next() {
		var e store.Edge
		if err := rows.Scan(&e.From, &e.To, &e.Type); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		edges = append(edges, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edges: %w", err)
	}

	if edges == nil {
		edges = []store.Edge{}
	}

	return edges, nil
}
