package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/highway-runner/internal/platform/tui"
	"github.com/vovakirdan/highway-runner/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse the run journal",
	Long: `Show recently recorded runs, newest first.

In the browser, Enter replays the selected run and reports whether it
reproduces. Use --plain for a text listing.

Examples:
  highway runs
  highway runs --plain --limit 5
  highway runs --clear`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text listing")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to list with --plain")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		logger.Info("run journal cleared")
		fmt.Println("Run journal cleared.")
		return nil
	}

	if flagPlain {
		return printRuns(store)
	}

	catalog, err := loadCatalog(flagAssetsPath, logger)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return tui.RunRunsBrowser(store, catalog, width, height)
}

func printRuns(store *storage.Store) error {
	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'highway play' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-6s  %-6s  %-8s  %-9s  %-12s  %s\n", "ID", "Score", "Ticks", "Cause", "Player", "Date")
	fmt.Printf("  %-6s  %-6s  %-8s  %-9s  %-12s  %s\n", "--", "-----", "-----", "-----", "------", "----")

	for _, row := range tui.RunRows(runs) {
		fmt.Printf("  %-6s  %-6s  %-8s  %-9s  %-12s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5])
	}

	fmt.Println()
	fmt.Println("Run 'highway replay <id>' to check a run.")
	return nil
}
