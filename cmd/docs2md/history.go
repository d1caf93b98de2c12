package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/docs2md/internal/config"
	"github.com/nao1215/docs2md/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [doc-name]",
		Short: "Show past crawl runs",
		Long: `History lists past crawl runs recorded in the local database, newest
first. With a doc-name argument, only runs for that documentation set
are shown.

Examples:
  # List all recorded runs
  docs2md history

  # List runs for one documentation set
  docs2md history exampledocs

  # Show the per-page outcomes of a specific run
  docs2md history --pages 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to show")
	cmd.Flags().Int64("pages", 0, "Show the per-page outcomes of the run with this ID")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	db, err := database.Open(config.XDGDataDir(), database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no crawl history found (run a crawl first): %w", err)
	}
	defer db.Close()

	runID, err := cmd.Flags().GetInt64("pages")
	if err != nil {
		return err
	}
	if runID > 0 {
		return showRunPages(cmd, db, runID)
	}

	docName := ""
	if len(args) == 1 {
		docName = args[0]
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	return showRuns(cmd, db, docName, limit)
}

// showRuns lists stored runs, newest first.
func showRuns(cmd *cobra.Command, db *database.HistoryDB, docName string, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), docName)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-5s %-19s %-20s %-10s %-10s %10s %8s\n",
		"ID", "DATE", "DOC", "MODE", "FILTER", "OK/FAIL", "ELAPSED")
	for _, run := range runs {
		date := run.Timestamp.Format("2006-01-02 15:04:05")
		if run.Timestamp.IsZero() {
			date = "unknown"
		}
		fmt.Fprintf(out, "%-5s %-19s %-20s %-10s %-10s %10s %8s\n",
			strconv.FormatInt(run.ID, 10),
			date,
			truncate(run.DocName, 20),
			run.OutputMode,
			run.FilterMode,
			fmt.Sprintf("%d/%d", run.Succeeded, run.Failed),
			run.Elapsed.Round(10*time.Millisecond),
		)
	}
	return nil
}

// showRunPages lists the per-page outcomes of one run.
func showRunPages(cmd *cobra.Command, db *database.HistoryDB, runID int64) error {
	pages, err := db.GetRunPages(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No pages recorded for run %d.\n", runID)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, page := range pages {
		if page.Success {
			fmt.Fprintf(out, "  [+] d%d %s\n", page.Depth, page.URL)
		} else {
			fmt.Fprintf(out, "  [x] d%d %s (%s)\n", page.Depth, page.URL, page.ErrorMessage)
		}
	}
	return nil
}

// truncate shortens a string to maxLen characters with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
