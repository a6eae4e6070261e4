// highway is a side-scrolling runner for the terminal.
//
// Usage:
//
//	highway play             - Play a run in this terminal
//	highway serve            - Start SSH server for remote play
//	highway runs             - Browse the run journal
//	highway replay <id>      - Re-simulate a journaled run and check it
//	highway config           - Print the default tuning YAML
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible runs
//	--db <path>      - Set run journal path (default: ~/.highway/runs.db)
//	--config <path>  - Use a custom tuning YAML
//	--assets <path>  - Use a custom sprite sheet
//	--mute           - Disable sound
//	--log <path>     - Log file (default: ~/.highway/highway.log)
//	--log-level <l>  - debug, info, warn or error
//
// Every flag can also be set through its HIGHWAY_* environment variable.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/games/highway"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
	flagAssetsPath string
	flagMute       bool
	flagLogPath    string
	flagLogLevel   string

	logger  *log.Logger
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "highway",
	Short: "Highway Runner - a side-scrolling runner in your terminal",
	Long: `Highway Runner is a side-scrolling runner for the terminal.
Run, jump and attack through waves of enemies, collect coins and dodge
rolling traps. Every run is journaled and can be replayed exactly.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  runs     - Browse recent runs
  replay   - Re-simulate a recorded run
  config   - Print the default tuning

Examples:
  highway play
  highway play --seed 42 --config ./fast.yaml --watch
  highway serve --ssh :2222
  highway runs --plain
  highway replay 17`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.highway/runs.db", "Path to run journal database")
	pf.StringVar(&flagConfigPath, "config", "", "Path to custom tuning YAML")
	pf.StringVar(&flagAssetsPath, "assets", "", "Path to custom sprite sheet YAML")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")
	pf.StringVar(&flagLogPath, "log", "~/.highway/highway.log", "Log file path")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies environment overrides and opens the log.
func setup(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	applyEnv(cmd, env)

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	highway.SetConfigPath(flagConfigPath)

	logger, err = openLogger(cmd.Name(), level)
	return err
}

// applyEnv copies HIGHWAY_* values into flags the user did not set.
func applyEnv(cmd *cobra.Command, env config.Env) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if env.FPS != nil && !changed("fps") {
		flagFPS = *env.FPS
	}
	if env.Seed != nil && !changed("seed") {
		flagSeed = *env.Seed
	}
	if env.DBPath != nil && !changed("db") {
		flagDBPath = *env.DBPath
	}
	if env.ConfigPath != nil && !changed("config") {
		flagConfigPath = *env.ConfigPath
	}
	if env.AssetsPath != nil && !changed("assets") {
		flagAssetsPath = *env.AssetsPath
	}
	if env.Mute != nil && !changed("mute") {
		flagMute = *env.Mute
	}
	if env.LogPath != nil && !changed("log") {
		flagLogPath = *env.LogPath
	}
	if env.LogLevel != nil && !changed("log-level") {
		flagLogLevel = *env.LogLevel
	}
}

// openLogger logs to stderr for the server and to the log file otherwise,
// since the TUI owns the terminal.
func openLogger(command string, level log.Level) (*log.Logger, error) {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "highway",
		Level:           level,
	}
	if command == "serve" {
		opts.Prefix = "highway-ssh"
		return log.NewWithOptions(os.Stderr, opts), nil
	}

	path := expandHome(flagLogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	return log.NewWithOptions(f, opts), nil
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
