package main

import (
	"fmt"
	"os"

	"tidescraft/internal/config"
	"tidescraft/internal/entity"
)

// loadProject reads the project config and walks the content roots into an
// entity collection. Parse errors are reported but never fatal: one broken
// file must not take the whole corpus down.
func loadProject() (*config.ProjectConfig, *entity.Result, error) {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		return nil, nil, err
	}

	loader := &entity.Loader{
		DataRoots:   cfg.Content.DataRoots,
		StoryRoots:  cfg.Content.StoryRoots,
		LexiconPath: cfg.Content.Lexicon,
		Exclude:     cfg.Content.Exclude,
	}
	result, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}

	for _, parseErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "%s parsing %s: %v\n", labelWarning, parseErr.Path, parseErr.Err)
	}

	return cfg, result, nil
}
