// Package tui provides the Bubble Tea integration for the runner.
// It handles the terminal UI loop, input mapping, and run bookkeeping.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/highway-runner/internal/assets"
)

// TickMsg is sent once per display refresh. Chain identifies the model
// that scheduled it, so a stale loop cannot drive a newer run.
type TickMsg struct {
	At    time.Time
	Chain int64
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, chain int64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Chain: chain}
	})
}

// assetsLoadedMsg reports that the sprite catalog finished loading.
type assetsLoadedMsg struct {
	err error // Set when the custom sheet failed and defaults were used
}

// loadAssetsCmd loads the catalog off the UI goroutine. A broken custom
// sheet falls back to the embedded one.
func loadAssetsCmd(c *assets.Catalog, path string) tea.Cmd {
	return func() tea.Msg {
		if c.Ready() {
			return assetsLoadedMsg{}
		}
		err := c.Load(path)
		if err != nil && path != "" {
			if fallbackErr := c.Load(""); fallbackErr != nil {
				return assetsLoadedMsg{err: fallbackErr}
			}
		}
		return assetsLoadedMsg{err: err}
	}
}

// configChangedMsg carries a config file change from the watcher.
type configChangedMsg struct {
	path string
}

// configErrorMsg carries a watcher failure.
type configErrorMsg struct {
	err error
}

// waitForConfigCmd blocks until the watcher reports something.
func waitForConfigCmd(events <-chan string, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-events:
			if !ok {
				return nil
			}
			return configChangedMsg{path: path}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return configErrorMsg{err: err}
		}
	}
}
