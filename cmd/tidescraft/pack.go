package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tidescraft/internal/pack"
)

func packCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <id> [id ...]",
		Short: "Export a prompt pack for the given canonical IDs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPack,
	}
}

func runPack(cmd *cobra.Command, args []string) error {
	cfg, loaded, err := loadProject()
	if err != nil {
		return err
	}

	payload := pack.Build(args, loaded.Collection)
	if len(payload.Entries) == 0 {
		return fmt.Errorf("no entities found for: %s", strings.Join(args, ", "))
	}

	stamp := payload.CreatedAt.Format("2006-01-02T15-04-05Z")
	dir := filepath.Join(cfg.Content.OutDir, "prompts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	jsonPath := filepath.Join(dir, stamp+"_pack.json")
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(jsonPath, append(data, '\n'), 0o644); err != nil {
		return err
	}

	mdPath := filepath.Join(dir, stamp+"_pack.md")
	if err := os.WriteFile(mdPath, []byte(payload.Markdown()), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Pack written: %s (%d entries)\n", jsonPath, len(payload.Entries))
	return nil
}
