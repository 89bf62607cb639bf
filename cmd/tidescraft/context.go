package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tidescraft/internal/contextpack"
	"tidescraft/internal/expand"
	"tidescraft/internal/resolve"
)

var (
	contextProfile string
	contextMax     int
	contextExpand  string
	contextOut     string
)

func contextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context <query>",
		Short: "Resolve, expand one hop, and order a capped context set",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runContext,
	}
	cmd.Flags().StringVar(&contextProfile, "profile", "", "Ordering profile (defaults to the routed intent)")
	cmd.Flags().IntVar(&contextMax, "max", 0, "Override the profile's entity cap")
	cmd.Flags().StringVar(&contextExpand, "expand", "one", "Graph expansion: one hop or none")
	cmd.Flags().StringVar(&contextOut, "out", "", "Write the context export JSON to this path")
	return cmd
}

func runContext(cmd *cobra.Command, args []string) error {
	cfg, loaded, err := loadProject()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	intent := resolve.Classify(query)

	profileName := contextProfile
	if profileName == "" {
		profileName = string(intent)
	}
	profile := cfg.Profile(profileName)

	primary := resolve.Resolve(query, loaded.Collection, 0)

	var expanded []expand.Candidate
	switch contextExpand {
	case "one":
		expanded = expand.Expand(primary, loaded.Collection)
	case "none":
	default:
		return fmt.Errorf("invalid --expand value %q, expected one or none", contextExpand)
	}
	expandedIDs := make([]string, 0, len(expanded))
	for _, c := range expanded {
		expandedIDs = append(expandedIDs, c.ID)
	}
	order := contextpack.BuildOrder(primary, expandedIDs, profile, contextMax, loaded.Collection)

	fmt.Fprintf(os.Stdout, "Intent:  %s\n", intent)
	fmt.Fprintf(os.Stdout, "Profile: %s\n", profileName)
	fmt.Fprintf(os.Stdout, "Primary: %s\n", strings.Join(primary, ", "))
	for _, c := range expanded {
		fmt.Fprintf(os.Stdout, "  + %s (%s)\n", c.ID, c.Reason)
	}
	fmt.Fprintln(os.Stdout, "Order:")
	for i, id := range order {
		fmt.Fprintf(os.Stdout, "  %2d. %s\n", i+1, id)
	}

	outPath := contextOut
	if outPath == "" {
		outPath = filepath.Join(cfg.Content.OutDir, "prompts", "context.json")
	}
	maxEntities := profile.MaxEntities
	if contextMax > 0 {
		maxEntities = contextMax
	}
	export := &contextpack.Export{
		Query:      query,
		Intent:     string(intent),
		Profile:    profileName,
		PrimaryIDs: primary,
		Expanded:   expanded,
		Order:      order,
		Limits:     contextpack.Limits{MaxEntities: maxEntities},
		CreatedAt:  time.Now().UTC(),
	}
	if err := export.Write(outPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Export written to %s\n", outPath)
	return nil
}
