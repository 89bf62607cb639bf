package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tidescraft/internal/contextpack"
)

// ProjectConfig is the root of tidescraft.yaml.
type ProjectConfig struct {
	Project  string                         `yaml:"project"`
	Version  int                            `yaml:"version"`
	Database DatabaseConfig                 `yaml:"database"`
	Content  ContentConfig                  `yaml:"content"`
	Profiles map[string]contextpack.Profile `yaml:"profiles"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ContentConfig locates the universe's markdown trees.
type ContentConfig struct {
	DataRoots      []string `yaml:"data_roots"`
	StoryRoots     []string `yaml:"story_roots"`
	Lexicon        string   `yaml:"lexicon"`
	Glossary       string   `yaml:"glossary"`
	GlossaryIgnore string   `yaml:"glossary_ignore"`
	SessionFile    string   `yaml:"session_file"`
	OutDir         string   `yaml:"out_dir"`
	Exclude        []string `yaml:"exclude"`
}

// DefaultFile is the config filename looked up in the working directory.
const DefaultFile = "tidescraft.yaml"

// Default returns the conventional repository layout, used when no config
// file is present.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Project: "forgotten-tides",
		Version: 1,
		Database: DatabaseConfig{
			DSN: "sqlite://.tidescraft/tidescraft.db",
		},
		Content: ContentConfig{
			DataRoots:      []string{"characters", "atlas", "factions", "mechanics", "lore", "data"},
			StoryRoots:     []string{"stories"},
			Lexicon:        "data/lexicon/terms.yaml",
			Glossary:       "lexicon/GLOSSARY.md",
			GlossaryIgnore: "docs/lint/glossary_ignore.txt",
			SessionFile:    "docs/session/state.json",
			OutDir:         "out",
			Exclude:        []string{"node_modules", ".git", "out"},
		},
	}
}

// Load reads the project config from path. A missing file yields the
// default layout rather than an error, so the tool works out of the box in
// a conventional repository.
func Load(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return cfg, nil
}

// Profile resolves a named ordering profile, preferring configured
// overrides to the built-ins.
func (cfg *ProjectConfig) Profile(name string) contextpack.Profile {
	if p, ok := cfg.Profiles[name]; ok {
		return p
	}
	return contextpack.GetProfile(name)
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if len(cfg.Content.DataRoots) == 0 && len(cfg.Content.StoryRoots) == 0 {
		return fmt.Errorf("at least one content root is required")
	}
	for name, profile := range cfg.Profiles {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("profile name is required")
		}
		if len(profile.Order) == 0 {
			return fmt.Errorf("profile %s order is required", name)
		}
		if profile.MaxEntities < 0 {
			return fmt.Errorf("profile %s max_entities must be non-negative", name)
		}
	}
	return nil
}
