// Package mcp exposes the resolver, context builder, and entity store to
// model-context-protocol clients.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"tidescraft/internal/config"
	"tidescraft/internal/entity"
	"tidescraft/internal/store"
)

type Server struct {
	cfg *config.ProjectConfig
	col *entity.Collection
	db  store.Store
	mcp *sdk.Server
}

// NewServer wires the toolset over a loaded entity collection and an
// optional indexed store. With a nil store the search_lore tool degrades to
// the in-memory resolver.
func NewServer(cfg *config.ProjectConfig, col *entity.Collection, db store.Store, version string) *Server {
	s := &Server{
		cfg: cfg,
		col: col,
		db:  db,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "tidescraft",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
