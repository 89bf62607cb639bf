package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "tidescraft",
		Short: "Authoring support tooling for The Forgotten Tides universe",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(indexCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(resolveCmd())
	root.AddCommand(contextCmd())
	root.AddCommand(packCmd())
	root.AddCommand(askCmd())
	root.AddCommand(scenesCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
