package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tidescraft/internal/resolve"
)

var resolveLimit int

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <query>",
		Short: "Resolve a free-text query to ranked canonical IDs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runResolve,
	}
	cmd.Flags().IntVar(&resolveLimit, "limit", resolve.DefaultLimit, "Maximum number of IDs to return")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	_, loaded, err := loadProject()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	intent := resolve.Classify(query)
	ids := resolve.Resolve(query, loaded.Collection, resolveLimit)

	fmt.Fprintf(os.Stdout, "Intent: %s\n", intent)
	if len(ids) == 0 {
		fmt.Fprintln(os.Stdout, "No matching entities.")
		return nil
	}
	for _, id := range ids {
		if e, ok := loaded.Collection.Get(id); ok {
			fmt.Fprintf(os.Stdout, "  %s  %s (%s)\n", id, e.Name, e.Kind)
		} else {
			fmt.Fprintf(os.Stdout, "  %s\n", id)
		}
	}
	return nil
}
