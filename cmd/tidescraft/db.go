package main

import (
	"context"
	"fmt"
	"strings"

	"tidescraft/internal/config"
	"tidescraft/internal/store"
	"tidescraft/internal/store/postgres"
	"tidescraft/internal/store/sqlite"
)

// openDB dispatches on the DSN scheme: sqlite:// for the default local
// database, postgres:// or postgresql:// for a shared one.
func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	dsn := cfg.Database.DSN
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database DSN scheme: %s", dsn)
	}
}
