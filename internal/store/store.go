// Package store defines the entity database the index command maintains
// and the serve command queries. Implementations exist for sqlite (the
// default, zero-setup) and postgres.
package store

import "context"

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	UpsertEntity(ctx context.Context, e EntityInput) error
	UpsertEdge(ctx context.Context, fromID, toID, relType string) error
	RemoveStale(ctx context.Context, currentSourceFiles []string) (int64, error)
	SourceHashes(ctx context.Context) (map[string]string, error)

	GetEntity(ctx context.Context, id string) (*Entity, error)
	ListEntities(ctx context.Context, kind, tag string) ([]EntitySummary, error)
	ListEdges(ctx context.Context, id string) ([]Edge, error)
	Search(ctx context.Context, query, kind string) ([]SearchResult, error)
}
