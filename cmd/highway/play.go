package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/highway-runner/internal/assets"
	"github.com/vovakirdan/highway-runner/internal/audio"
	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
	"github.com/vovakirdan/highway-runner/internal/games/highway"
	"github.com/vovakirdan/highway-runner/internal/platform/tui"
	"github.com/vovakirdan/highway-runner/internal/registry"
	"github.com/vovakirdan/highway-runner/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run in this terminal.

Controls:
  A/D, Left/Right  - Move
  Space/W/Up       - Jump (mouse click works too)
  J                - Attack
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

With --watch, edits to the tuning file are checked as you save them and
take effect at the next restart.

Examples:
  highway play
  highway play --seed 42
  highway play --config ./fast.yaml --watch
  highway play --mute --fps 30`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch the tuning file and reload it on change")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	catalog := assets.NewCatalog(logger)

	var player *audio.Player
	if !flagMute {
		player = audio.NewPlayer(logger)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "error", err)
			player = nil
		} else {
			defer player.Close()
		}
	}

	game, err := registry.Create(highway.ID, tui.NewServices(catalog, player))
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	// Open run journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		logger.Warn("could not open run journal", "error", err)
		store = nil // Continue without storage - game still works
	} else {
		defer store.Close()
	}

	var watcher *config.Watcher
	if flagWatch {
		watcher, err = startWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	logger.Info("starting run", "fps", flagFPS, "seed", flagSeed, "sound", player != nil)

	if err := tui.Run(game, tui.Options{
		Store:      store,
		Audio:      player,
		Catalog:    catalog,
		AssetsPath: flagAssetsPath,
		Watcher:    watcher,
		Logger:     logger,
		Session:    "local",
		Runtime:    cfg,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// startWatcher watches the tuning file in use. Without --config that is the
// user config file, created from the defaults if missing.
func startWatcher() (*config.Watcher, error) {
	path := flagConfigPath
	if path == "" {
		path = expandHome("~/.highway/configs/" + config.FileName)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := writeDefaultConfig(path); err != nil {
				return nil, err
			}
		}
	}

	w, err := config.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	logger.Info("watching config", "path", w.Path())
	return w, nil
}
