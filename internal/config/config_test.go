package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tidescraft/internal/contextpack"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tidescraft.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config loads over defaults", func(t *testing.T) {
		path := writeTempConfig(t, "project: test-tides\nversion: 1\ndatabase:\n  dsn: sqlite://local.db\ncontent:\n  data_roots: [world]\n  story_roots: [fiction]\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "test-tides" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.Database.DSN != "sqlite://local.db" {
			t.Fatalf("expected DSN override, got %q", cfg.Database.DSN)
		}
		if !reflect.DeepEqual(cfg.Content.DataRoots, []string{"world"}) {
			t.Fatalf("expected data roots override, got %v", cfg.Content.DataRoots)
		}
		// Unset fields keep the defaults.
		if cfg.Content.OutDir != "out" {
			t.Fatalf("expected default out dir, got %q", cfg.Content.OutDir)
		}
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "forgotten-tides" {
			t.Fatalf("expected default project, got %q", cfg.Project)
		}
		if cfg.Database.DSN != "sqlite://.tidescraft/tidescraft.db" {
			t.Fatalf("expected default DSN, got %q", cfg.Database.DSN)
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "project: \"\"\nversion: 1\ncontent:\n  data_roots: [world]\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 2\ncontent:\n  data_roots: [world]\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("no content roots", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ncontent:\n  data_roots: []\n  story_roots: []\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("profile without order", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nprofiles:\n  custom:\n    max_entities: 5\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("negative profile cap", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nprofiles:\n  custom:\n    order: [characters]\n    max_entities: -1\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "project: [\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestProfile(t *testing.T) {
	cfg := Default()
	cfg.Profiles = map[string]contextpack.Profile{
		"outline": {Order: []string{"stories"}, MaxEntities: 3},
	}

	t.Run("configured profile overrides built-in", func(t *testing.T) {
		p := cfg.Profile("outline")
		if p.MaxEntities != 3 {
			t.Fatalf("expected override, got %+v", p)
		}
	})

	t.Run("built-in used when not configured", func(t *testing.T) {
		p := cfg.Profile("brainstorm")
		if p.MaxEntities != 12 {
			t.Fatalf("expected built-in brainstorm profile, got %+v", p)
		}
	})

	t.Run("unknown name falls back to default", func(t *testing.T) {
		p := cfg.Profile("nonsense")
		if !reflect.DeepEqual(p, contextpack.DefaultProfile) {
			t.Fatalf("expected default profile, got %+v", p)
		}
	})
}
