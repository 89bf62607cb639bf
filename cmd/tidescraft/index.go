package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tidescraft/internal/graphexport"
	"tidescraft/internal/ingest"
)

var indexFull bool

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the entity database and reference artifacts from markdown",
		RunE:  runIndex,
	}
	cmd.Flags().BoolVar(&indexFull, "full", false, "Force full re-indexing (ignore incremental hashes)")
	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, loaded, err := loadProject()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := ingest.Run(ctx, loaded.Collection, db, ingest.Options{Full: indexFull})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Indexing complete.")
	fmt.Fprintf(os.Stdout, "  Entities upserted: %d\n", result.EntitiesUpserted)
	fmt.Fprintf(os.Stdout, "  Edges upserted:    %d\n", result.EdgesUpserted)
	fmt.Fprintf(os.Stdout, "  Entities removed:  %d\n", result.EntitiesRemoved)
	fmt.Fprintf(os.Stdout, "  Files skipped:     %d\n", result.FilesSkipped)

	rm := graphexport.Build(loaded.Collection)
	data, err := rm.MarshalIndentJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile("REFERENCE_MAP.json", data, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile("CANONICAL_INDEX.md", []byte(rm.CanonicalIndexMarkdown()), 0o644); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join("docs", "link_map"), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join("docs", "link_map", "LINK_MAP.md"), []byte(rm.LinkMapMarkdown()), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "  Reference map:     %d nodes, %d edges\n", len(rm.Nodes), len(rm.Edges))

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("indexing completed with errors")
	}

	return nil
}
