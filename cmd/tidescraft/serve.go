package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tidescraft/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, loaded, err := loadProject()
	if err != nil {
		return err
	}

	// Tools that need the search index degrade to in-memory scoring when the
	// database is unavailable, so a failed open is not fatal here.
	db, err := openDB(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s database unavailable, serving without search index: %v\n", labelWarning, err)
		db = nil
	} else {
		defer db.Close(ctx)
	}

	server := mcp.NewServer(cfg, loaded.Collection, db, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
