package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/highway-runner/internal/assets"
	"github.com/vovakirdan/highway-runner/internal/replay"
	"github.com/vovakirdan/highway-runner/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded run",
	Long: `Replay a journaled run headlessly with its recorded seed, tuning and
input, and check that it ends with the recorded score and tick count.

The sprite sheet must match the one the run was played with (see --assets),
since sprite sizes feed the simulation. A sheet that fails to load is
replaced by the embedded one, as it is during play.

Examples:
  highway replay 17
  highway replay 17 --assets ./sprites.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	catalog, err := loadCatalog(flagAssetsPath, logger)
	if err != nil {
		return err
	}

	res, run, err := replay.Verify(store, catalog, id)
	if run != nil {
		cause := run.Cause
		if cause == "" {
			cause = "quit"
		}
		fmt.Printf("Run %d (%s, seed %d)\n", run.ID, run.Session, run.Seed)
		fmt.Printf("  recorded: score %d in %d ticks, %s\n", run.Score, run.Ticks, cause)
	}
	if errors.Is(err, replay.ErrMismatch) {
		fmt.Printf("  replayed: score %d in %d ticks\n", res.Score, res.Ticks)
		logger.Warn("replay diverged", "id", id, "error", err)
		return errors.New("replay does not reproduce the recorded run")
	}
	if err != nil {
		return err
	}

	fmt.Printf("  replayed: score %d in %d ticks\n", res.Score, res.Ticks)
	fmt.Println("Replay matches.")
	logger.Info("replay verified", "id", id, "score", res.Score, "ticks", res.Ticks)
	return nil
}

// loadCatalog loads the sprite sheet synchronously. A sheet that cannot be
// loaded falls back to the embedded one, the same way a live run does, so
// runs played with it still replay.
func loadCatalog(path string, lg *log.Logger) (*assets.Catalog, error) {
	if lg == nil {
		lg = log.Default()
	}
	catalog := assets.NewCatalog(lg)
	err := catalog.Load(path)
	if err == nil || path == "" {
		return catalog, err
	}
	lg.Warn("custom sprite sheet failed, using embedded sheet", "path", path, "error", err)
	if err := catalog.Load(""); err != nil {
		return nil, err
	}
	return catalog, nil
}
