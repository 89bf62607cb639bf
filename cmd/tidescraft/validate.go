package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tidescraft/internal/canon"
	"tidescraft/internal/checks"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate content against the canonical index",
	}
	cmd.AddCommand(validateRefsCmd())
	return cmd
}

func validateRefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refs",
		Short: "Check that every cross-reference resolves to a canonical ID",
		RunE:  runValidateRefs,
	}
}

func runValidateRefs(cmd *cobra.Command, args []string) error {
	cfg, loaded, err := loadProject()
	if err != nil {
		return err
	}

	idx := canon.IndexFromEntities(loaded.Collection)
	if content, err := os.ReadFile("CANONICAL_INDEX.md"); err == nil {
		for _, id := range canon.IndexFromDocument(content).IDs() {
			idx.Add(id)
		}
	}

	roots := append(append([]string{}, cfg.Content.DataRoots...), cfg.Content.StoryRoots...)
	report, err := canon.Scan(roots, cfg.Content.Exclude, idx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Loaded %d canonical IDs\n", report.CanonicalIDsLoaded)

	for _, fileErr := range report.Errors {
		fmt.Fprintf(os.Stdout, "%s in %s: %s\n", labelWarning, fileErr.File, fileErr.Error)
	}
	for _, missing := range report.Missing {
		fmt.Fprintf(os.Stdout, "%s in %s: unresolved reference %s\n", labelError, missing.File, missing.ID)
	}

	reportPath := filepath.Join(cfg.Content.OutDir, "reports", "unresolved_refs.json")
	if err := checks.WriteReport(reportPath, report); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Report written to %s\n", reportPath)

	if report.Failed() {
		return fmt.Errorf("found %d unresolved references", len(report.Missing))
	}
	fmt.Fprintf(os.Stdout, "%s all references resolve\n", labelOK)
	return nil
}
