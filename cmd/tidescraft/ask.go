package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tidescraft/internal/checks"
	"tidescraft/internal/contextpack"
	"tidescraft/internal/expand"
	"tidescraft/internal/pack"
	"tidescraft/internal/resolve"
	"tidescraft/internal/session"
)

// maxCarriedIDs is the hard cap on the merged context after sticky IDs are
// carried in.
const maxCarriedIDs = 50

var (
	askProfile string
	askCarry   bool
	askClear   bool
)

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Run the full authoring pipeline: route, resolve, expand, lint, export",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
	cmd.Flags().StringVar(&askProfile, "profile", "", "Ordering profile (defaults to the routed intent)")
	cmd.Flags().BoolVar(&askCarry, "carry", false, "Carry sticky IDs from the previous session")
	cmd.Flags().BoolVar(&askClear, "clear", false, "Reset session state before running")
	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, loaded, err := loadProject()
	if err != nil {
		return err
	}

	sessionPath := cfg.Content.SessionFile
	if askClear {
		if err := session.Clear(sessionPath); err != nil {
			return err
		}
	}
	state, err := session.Load(sessionPath)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	intent := resolve.Classify(query)
	profileName := askProfile
	if profileName == "" {
		profileName = string(intent)
	}
	profile := cfg.Profile(profileName)

	primary := resolve.Resolve(query, loaded.Collection, 0)
	expanded := expand.Expand(primary, loaded.Collection)
	expandedIDs := make([]string, 0, len(expanded))
	for _, c := range expanded {
		expandedIDs = append(expandedIDs, c.ID)
	}
	order := contextpack.BuildOrder(primary, expandedIDs, profile, 0, loaded.Collection)

	finalIDs := order
	if askCarry {
		finalIDs = state.Carry(order)
		if len(finalIDs) > maxCarriedIDs {
			finalIDs = finalIDs[:maxCarriedIDs]
		}
	}

	fmt.Fprintf(os.Stdout, "Intent: %s\n", intent)
	fmt.Fprintf(os.Stdout, "Context: %s\n", strings.Join(finalIDs, ", "))

	// Lint substeps inform the session report but never abort the pipeline.
	canonReport, err := checks.LintCanon(cfg.Content.StoryRoots, cfg.Content.Exclude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s canon lint: %v\n", labelWarning, err)
		canonReport = &checks.CanonReport{}
	}
	continuityReport := checks.CheckContinuity(loaded.Collection)

	payload := pack.Build(finalIDs, loaded.Collection)
	stamp := payload.CreatedAt.Format("2006-01-02T15-04-05Z")
	packDir := filepath.Join(cfg.Content.OutDir, "prompts")
	if err := os.MkdirAll(packDir, 0o755); err != nil {
		return err
	}
	packPath := filepath.Join(packDir, stamp+"_pack.md")
	if err := os.WriteFile(packPath, []byte(payload.Markdown()), 0o644); err != nil {
		return err
	}

	reportPath := filepath.Join("docs", "session", fmt.Sprintf("%s_%s.md", stamp, intent))
	if err := writeSessionReport(reportPath, query, string(intent), finalIDs, canonReport, continuityReport); err != nil {
		return err
	}

	state.Record(query, string(intent), finalIDs)
	if err := state.Save(sessionPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Pack written: %s\n", packPath)
	fmt.Fprintf(os.Stdout, "Session report: %s\n", reportPath)
	return nil
}

func writeSessionReport(path, query, intent string, ids []string, canonReport *checks.CanonReport, continuity *checks.ContinuityReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Session: %s\n\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "**Query:** %s\n\n", query)
	fmt.Fprintf(&b, "**Intent:** %s\n\n", intent)
	b.WriteString("## Context\n\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "- `%s`\n", id)
	}
	b.WriteString("\n## Checks\n\n")
	fmt.Fprintf(&b, "- Canon lint: %d errors, %d warnings\n", canonReport.Errors, canonReport.Warnings)
	fmt.Fprintf(&b, "- Continuity: %d hard failures\n", continuity.Summary.HardFailures)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
