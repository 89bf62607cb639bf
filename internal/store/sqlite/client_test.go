package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// newTestClient opens a file-backed database in a temp directory and
// installs the schema. File-backed rather than :memory: because the
// connection pool would give each connection its own in-memory database.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	c, err := New(ctx, "sqlite://"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { c.Close(context.Background()) })

	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return c
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), ".tidescraft", "tidescraft.db")

	c, err := New(ctx, "sqlite://"+dbPath)
	if err != nil {
		t.Fatalf("expected missing parent directory to be created, got: %v", err)
	}
	defer c.Close(ctx)

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{
			name: "memory",
			dsn:  "sqlite://:memory:",
			want: ":memory:",
		},
		{
			name: "absolute path",
			dsn:  "sqlite:///var/lib/tides.db",
			want: "/var/lib/tides.db",
		},
		{
			name: "relative path gets anchored",
			dsn:  "sqlite://.tidescraft/tidescraft.db",
			want: "./.tidescraft/tidescraft.db",
		},
		{
			name: "already anchored",
			dsn:  "sqlite://./tides.db",
			want: "./tides.db",
		},
		{
			name: "query string preserved",
			dsn:  "sqlite://tides.db?cache=shared",
			want: "./tides.db?cache=shared",
		},
		{
			name: "escaped path",
			dsn:  "sqlite://my%20universe.db",
			want: "./my universe.db",
		},
		{
			name:    "wrong scheme",
			dsn:     "postgres://localhost/tides",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDSN(tt.dsn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDSN(%q): %v", tt.dsn, err)
			}
			if got != tt.want {
				t.Fatalf("parseDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}
