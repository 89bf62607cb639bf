package postgres

import (
	"context"
	"fmt"
)

func (c *Client) RemoveStale(ctx context.Context, currentSourceFiles []string) (int64, error) {
	if len(currentSourceFiles) == 0 {
		return 0, nil
	}

	query := `
DELETE FROM entities
WHERE source_file IS NOT NULL
  AND source_file <> ''
  AND source_file <> ALL ($1)
`

	tag, err := c.pool.Exec(ctx, query, currentSourceFiles)
	if err != nil {
		return 0, fmt.Errorf("removing stale entities: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (c *Client) SourceHashes(ctx context.Context) (map[string]string, error) {
	query := `
SELECT source_file, source_hash FROM entities
WHERE source_file IS NOT NULL
  AND source_file <> ''
`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query source hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var sourceFile, sourceHash string
		if err := rows.Scan(&sourceFile, &sourceHash); err != nil {
			return nil, fmt.Errorf("scanning source hash: %w", err)
		}
		hashes[sourceFile] = sourceHash
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating source hashes: %w", err)
	}

	return hashes, nil
}
