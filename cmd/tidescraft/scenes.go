package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tidescraft/internal/config"
	"tidescraft/internal/manuscript"
)

func scenesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Manage works and their scene ordering",
	}
	cmd.AddCommand(scenesListCmd())
	cmd.AddCommand(scenesGraphCmd())
	cmd.AddCommand(scenesInsertCmd())
	cmd.AddCommand(scenesResolveCmd())
	return cmd
}

// storiesRoot picks the work discovery root. Multiple story roots are
// supported for loading, but works live under the first.
func storiesRoot(cfg *config.ProjectConfig) (string, error) {
	if len(cfg.Content.StoryRoots) == 0 {
		return "", fmt.Errorf("no story roots configured")
	}
	return cfg.Content.StoryRoots[0], nil
}

// sceneLabel shortens an include-list path to its file stem for graph nodes.
func sceneLabel(scenePath string) string {
	base := filepath.Base(scenePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printClarification(c *manuscript.Clarification) {
	fmt.Fprintf(os.Stdout, "Multiple matches for %q:\n", c.Identifier)
	for _, opt := range c.Options {
		fmt.Fprintf(os.Stdout, "  - %s\n", opt)
	}
	fmt.Fprintln(os.Stdout, "Re-run with a more specific identifier.")
}

func scenesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all works and their scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.DefaultFile)
			if err != nil {
				return err
			}
			root, err := storiesRoot(cfg)
			if err != nil {
				return err
			}
			works, err := manuscript.FindWorks(root)
			if err != nil {
				return err
			}
			if len(works) == 0 {
				fmt.Fprintln(os.Stdout, "No works found.")
				return nil
			}
			for i := range works {
				w := &works[i]
				fmt.Fprintf(os.Stdout, "%s  %s (%s)\n", w.ID, w.Title, w.Kind)
				scenes, err := manuscript.FindScenes(w)
				if err != nil {
					return err
				}
				for _, s := range scenes {
					fmt.Fprintf(os.Stdout, "    %s  %s\n", s.ID, s.Title)
				}
			}
			return nil
		},
	}
}

func scenesGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <work>",
		Short: "Show a work's manuscript scene ordering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.DefaultFile)
			if err != nil {
				return err
			}
			root, err := storiesRoot(cfg)
			if err != nil {
				return err
			}
			work, err := manuscript.ResolveWork(root, args[0])
			if err != nil {
				var c *manuscript.Clarification
				if errors.As(err, &c) {
					printClarification(c)
					return nil
				}
				return err
			}

			includeList, err := manuscript.LoadIncludeList(work.Path)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s (%s)\n", work.Title, work.ID)
			if len(includeList) == 0 {
				fmt.Fprintln(os.Stdout, "  (no scenes in manuscript)")
				return nil
			}
			for i, scenePath := range includeList {
				marker := ""
				if _, err := os.Stat(filepath.Join(work.Path, scenePath)); err != nil {
					marker = "  [missing]"
				}
				fmt.Fprintf(os.Stdout, "  %2d. %s%s\n", i+1, scenePath, marker)
			}

			// Mermaid rendition of the manuscript sequence.
			fmt.Fprintln(os.Stdout, "\n```mermaid")
			fmt.Fprintln(os.Stdout, "graph TD")
			for i, scenePath := range includeList {
				fmt.Fprintf(os.Stdout, "  S%d[%q]\n", i+1, sceneLabel(scenePath))
				if i > 0 {
					fmt.Fprintf(os.Stdout, "  S%d --> S%d\n", i, i+1)
				}
			}
			fmt.Fprintln(os.Stdout, "```")
			return nil
		},
	}
}

func scenesInsertCmd() *cobra.Command {
	var (
		modeFlag  string
		refFlag   string
		indexFlag int
	)
	cmd := &cobra.Command{
		Use:   "insert <work> <scene>",
		Short: "Insert a scene into a work's manuscript ordering",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.DefaultFile)
			if err != nil {
				return err
			}
			root, err := storiesRoot(cfg)
			if err != nil {
				return err
			}

			mode, err := manuscript.ParseMode(modeFlag)
			if err != nil {
				return err
			}

			work, err := manuscript.ResolveWork(root, args[0])
			if err != nil {
				var c *manuscript.Clarification
				if errors.As(err, &c) {
					printClarification(c)
					return nil
				}
				return err
			}
			scene, err := manuscript.ResolveScene(root, args[1])
			if err != nil {
				var c *manuscript.Clarification
				if errors.As(err, &c) {
					printClarification(c)
					return nil
				}
				return err
			}

			// Include-list entries are stored relative to the work directory.
			scenePath, err := filepath.Rel(work.Path, scene.Path)
			if err != nil || scenePath == "" || scenePath[0] == '.' {
				scenePath = scene.Path
			}

			includeList, err := manuscript.LoadIncludeList(work.Path)
			if err != nil {
				return err
			}
			updated, err := manuscript.Insert(includeList, scenePath, manuscript.InsertOp{
				Mode:  mode,
				Ref:   refFlag,
				Index: indexFlag,
			})
			if err != nil {
				return err
			}
			if err := manuscript.SaveIncludeList(work.Path, updated); err != nil {
				return err
			}
			if _, err := manuscript.TouchModified(work.Path); err != nil {
				fmt.Fprintf(os.Stderr, "%s update work metadata: %v\n", labelWarning, err)
			}

			fmt.Fprintf(os.Stdout, "Inserted %s into %s (%s mode)\n", scenePath, work.ID, mode)
			for i, item := range updated {
				fmt.Fprintf(os.Stdout, "  %2d. %s\n", i+1, item)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modeFlag, "mode", string(manuscript.ModeLast), "Insert mode: first, last, before, after, index, midpoint")
	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference scene for before/after modes")
	cmd.Flags().IntVar(&indexFlag, "index", 0, "Position for index mode")
	return cmd
}

func scenesResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <identifier>",
		Short: "Resolve a work or scene identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.DefaultFile)
			if err != nil {
				return err
			}
			root, err := storiesRoot(cfg)
			if err != nil {
				return err
			}

			if work, err := manuscript.ResolveWork(root, args[0]); err == nil {
				fmt.Fprintf(os.Stdout, "Work: %s (%s)\n  %s\n", work.Title, work.ID, work.Path)
				return nil
			} else {
				var c *manuscript.Clarification
				if errors.As(err, &c) {
					printClarification(c)
					return nil
				}
			}

			scene, err := manuscript.ResolveScene(root, args[0])
			if err != nil {
				var c *manuscript.Clarification
				if errors.As(err, &c) {
					printClarification(c)
					return nil
				}
				return err
			}
			fmt.Fprintf(os.Stdout, "Scene: %s (work %s)\n  %s\n", scene.Title, scene.Work, scene.Path)
			return nil
		},
	}
}
