package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for docs2md.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs2md",
		Short: "Convert documentation sites to Markdown",
		Long: `docs2md crawls a documentation site breadth-first and converts every
in-scope page to Markdown.

Output is either a single combined document (aggregate mode) or one file
per page mirroring the site's URL structure (mirror mode). Content can be
reduced to its essentials with DOM heuristics or an OpenAI model.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
