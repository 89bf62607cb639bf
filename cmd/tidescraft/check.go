package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tidescraft/internal/checks"
	"tidescraft/internal/entity"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run consistency checkers over entities and stories",
	}
	cmd.AddCommand(checkCanonCmd())
	cmd.AddCommand(checkContinuityCmd())
	cmd.AddCommand(checkTimelineCmd())
	cmd.AddCommand(checkGlossaryCmd())
	return cmd
}

func checkCanonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canon",
		Short: "Lint story prose against the canon red lines",
		RunE:  runCheckCanon,
	}
}

func runCheckCanon(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadProject()
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Running Canon Linter...")
	report, err := checks.LintCanon(cfg.Content.StoryRoots, cfg.Content.Exclude)
	if err != nil {
		return err
	}

	for _, finding := range report.Findings {
		if finding.Severity == checks.SeverityHard {
			printErrorLine(finding.File, finding.Line, finding.Message)
		} else {
			printWarningLine(finding.File, finding.Line, finding.Message)
		}
		fmt.Fprintf(os.Stdout, "  > %s\n", finding.Text)
	}

	reportPath := filepath.Join(cfg.Content.OutDir, "reports", "canon_lint.json")
	if err := checks.WriteReport(reportPath, report); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\nLinter finished with %d errors and %d warnings.\n", report.Errors, report.Warnings)
	fmt.Fprintf(os.Stdout, "Report written to %s\n", reportPath)
	if report.Failed() {
		return fmt.Errorf("canon lint failed")
	}
	return nil
}

func checkContinuityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "continuity",
		Short: "Check stories against character continuity invariants",
		RunE:  runCheckContinuity,
	}
}

func runCheckContinuity(cmd *cobra.Command, args []string) error {
	cfg, loaded, err := loadProject()
	if err != nil {
		return err
	}

	report := checks.CheckContinuity(loaded.Collection)

	reportPath := filepath.Join(cfg.Content.OutDir, "reports", "continuity.json")
	if err := checks.WriteReport(reportPath, report); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Continuity report written to: %s\n", reportPath)
	fmt.Fprintf(os.Stdout, "Summary: %d characters, %d stories\n", report.Summary.TotalCharacters, report.Summary.TotalStories)
	fmt.Fprintf(os.Stdout, "Hard failures: %d\n", report.Summary.HardFailures)
	fmt.Fprintf(os.Stdout, "Soft warnings: %d\n", report.Summary.SoftWarnings)

	if report.Failed() {
		return fmt.Errorf("continuity check failed")
	}
	return nil
}

func checkTimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Check story dates against the lore timeline",
		RunE:  runCheckTimeline,
	}
}

func runCheckTimeline(cmd *cobra.Command, args []string) error {
	cfg, loaded, err := loadProject()
	if err != nil {
		return err
	}

	report := checks.CheckTimeline(loaded.Collection)

	reportPath := filepath.Join(cfg.Content.OutDir, "reports", "timeline_variance.json")
	if err := checks.WriteReport(reportPath, report); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Timeline variance report written to: %s\n", reportPath)
	fmt.Fprintf(os.Stdout, "Summary: %d timeline events, %d stories\n", len(report.Events), report.Stories)
	fmt.Fprintf(os.Stdout, "Hard failures: %d\n", len(report.Hard))
	fmt.Fprintf(os.Stdout, "Soft warnings: %d\n", len(report.Soft))
	if report.Span != nil {
		fmt.Fprintf(os.Stdout, "Timeline span: %s to %s (%d days)\n",
			report.Span.Start.Format("2006-01-02"), report.Span.End.Format("2006-01-02"), report.Span.DurationDays)
	}

	if report.Failed() {
		return fmt.Errorf("timeline check failed")
	}
	return nil
}

func checkGlossaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "glossary",
		Short: "Flag capitalized multiword terms missing from the glossary",
		RunE:  runCheckGlossary,
	}
}

func runCheckGlossary(cmd *cobra.Command, args []string) error {
	cfg, loaded, err := loadProject()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(cfg.Content.Glossary)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stdout, "%s no glossary found at %s, skipping\n", labelWarning, cfg.Content.Glossary)
			return nil
		}
		return err
	}

	terms := checks.GlossaryTerms(string(content))
	if len(terms) == 0 {
		fmt.Fprintln(os.Stdout, "No glossary terms loaded, skipping check")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Loaded %d glossary terms\n", len(terms))

	ignored, err := checks.LoadIgnoreList(cfg.Content.GlossaryIgnore)
	if err != nil {
		return err
	}
	if len(ignored) > 0 {
		fmt.Fprintf(os.Stdout, "Ignoring %d terms from ignore list\n", len(ignored))
	}

	total := 0
	for _, e := range loaded.Collection.All() {
		if e.Kind != entity.KindStory {
			continue
		}
		warnings := checks.EnforceGlossary(e.SourcePath, e.Body, terms, ignored)
		if len(warnings) == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "\n%s\n", e.SourcePath)
		for _, w := range warnings {
			fmt.Fprintf(os.Stdout, "  %s term %q not found in glossary\n", labelWarning, w.Term)
		}
		total += len(warnings)
	}

	// Undefined terms are glossary gaps, not story errors: always exit 0.
	if total > 0 {
		fmt.Fprintf(os.Stdout, "\nFound %d terms not in glossary (warnings only)\n", total)
	} else {
		fmt.Fprintf(os.Stdout, "%s all capitalized multiword terms are in glossary\n", labelOK)
	}
	return nil
}
