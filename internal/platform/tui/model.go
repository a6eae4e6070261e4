package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/highway-runner/internal/assets"
	"github.com/vovakirdan/highway-runner/internal/audio"
	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
	"github.com/vovakirdan/highway-runner/internal/registry"
	"github.com/vovakirdan/highway-runner/internal/replay"
	"github.com/vovakirdan/highway-runner/internal/storage"
)

// holdTicks is how long a direction stays held after its last key event.
// Terminals send no key-up, and auto-repeat refreshes the press.
const holdTicks = 30

const noticeDuration = 3 * time.Second

// Options configures a run model.
type Options struct {
	Store      *storage.Store  // Run journal; nil disables saving
	Audio      *audio.Player   // nil for silent sessions
	Catalog    *assets.Catalog // Shared sprite catalog
	AssetsPath string          // Custom sprite sheet, "" for the embedded one
	Watcher    *config.Watcher // Optional config hot-reload watcher
	Logger     *log.Logger
	Palette    *Palette
	Session    string // Recorded with each run
	Runtime    core.RuntimeConfig
	AllowBack  bool // B returns to the title screen
}

// journaled is what the model needs from a game to store its runs.
type journaled interface {
	Config() config.HighwayConfig
	ConfigErr() error
	Cause() string
}

// NewServices binds the catalog and player to the simulation collaborators.
func NewServices(c *assets.Catalog, p *audio.Player) core.Services {
	var svc core.Services
	if c != nil {
		svc.Sprites = c
	}
	if p != nil {
		svc.Audio = p
	}
	return svc.WithDefaults()
}

// Model is the Bubble Tea model for one player's runs.
type Model struct {
	game        registry.Game
	opts        Options
	chain       int64 // Tags this model's tick loop
	screen      *core.Screen
	runtime     core.RuntimeConfig
	fixedSeed   bool
	keys        *KeyMapper
	input       core.InputFrame // Triggers since the previous tick
	pressed     *core.PressedSet
	clock       *core.Clock
	recorder    *replay.Recorder
	state       core.GameState
	loaded      bool
	saved       bool // Whether the current run has been journaled
	notice      string
	noticeUntil time.Time
	quitting    bool
	backToTitle bool
}

// NewModel creates a model for game. The game must be built with the same
// catalog (see NewServices).
func NewModel(game registry.Game, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Palette == nil {
		opts.Palette = NewPalette(nil)
	}
	if opts.Catalog == nil {
		opts.Catalog = assets.NewCatalog(opts.Logger)
	}

	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	fixed := rt.Seed != 0
	if !fixed {
		rt.Seed = time.Now().UnixNano()
	}

	return Model{
		game:      game,
		opts:      opts,
		chain:     time.Now().UnixNano(),
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH),
		runtime:   rt,
		fixedSeed: fixed,
		keys:      NewKeyMapper(),
		input:     core.NewInputFrame(),
		pressed:   core.NewPressedSet(holdTicks),
		clock:     core.NewClock(rt.TickRate, core.DefaultMaxElapsed),
		recorder:  replay.NewRecorder(),
	}
}

// Init starts the first run, the asset load and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.runtime)
	m.logConfigErr()

	cmds := []tea.Cmd{
		m.nextTick(),
		loadAssetsCmd(m.opts.Catalog, m.opts.AssetsPath),
	}
	if w := m.opts.Watcher; w != nil {
		cmds = append(cmds, waitForConfigCmd(w.Events, w.Errors))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if a := m.keys.MapMouse(msg); a != core.ActionNone {
			m.input.Set(a)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The world is projected onto the screen, so a resize keeps the run
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case assetsLoadedMsg:
		return m.handleAssets(msg)

	case configChangedMsg:
		m.handleConfigChange(msg.path)
		return m, waitForConfigCmd(m.opts.Watcher.Events, m.opts.Watcher.Errors)

	case configErrorMsg:
		m.opts.Logger.Warn("config watcher error", "error", msg.err)
		return m, waitForConfigCmd(m.opts.Watcher.Events, m.opts.Watcher.Errors)

	case TickMsg:
		if msg.Chain != m.chain {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.finishRun()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone, core.ActionConfirm:
	case core.ActionBack:
		if m.opts.AllowBack && (m.state.GameOver || m.state.Paused) {
			m.finishRun()
			m.backToTitle = true
		}
	case core.ActionRestart:
		if m.state.GameOver {
			m.input.Set(core.ActionRestart)
		}
	default:
		if IsHeld(action) {
			m.pressed.Press(action)
		} else {
			m.input.Set(action)
		}
	}
	return m, nil
}

// handleAssets opens the way for the first tick.
func (m Model) handleAssets(msg assetsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loaded = true
	if msg.err != nil {
		m.opts.Logger.Warn("custom sprites rejected, using defaults", "path", m.opts.AssetsPath, "error", msg.err)
		m.setNotice("Custom sprites rejected, using defaults")
	}
	if !m.opts.Catalog.Ready() {
		m.opts.Logger.Error("no usable sprites", "error", msg.err)
		m.setNotice("No usable sprites: " + errString(msg.err))
		return m, nil
	}
	m.startMusic()
	return m, nil
}

// handleConfigChange validates an edited config. Runs pick it up on restart.
func (m *Model) handleConfigChange(path string) {
	if _, err := config.LoadHighwayFile(path); err != nil {
		m.opts.Logger.Warn("config change rejected", "path", path, "error", err)
		m.setNotice("Config rejected, see log")
		return
	}
	m.opts.Logger.Info("config changed", "path", path)
	m.setNotice("Config reloaded, applies on restart")
}

// handleTick runs one display refresh.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) && m.state.GameOver {
		m.restart()
		return m, m.nextTick()
	}

	if !m.loaded {
		m.input.Clear()
		return m, m.nextTick()
	}

	frame := m.input.Clone()
	m.pressed.Snapshot(&frame)
	dt := m.clock.Tick(now)

	if !m.saved {
		m.recorder.Record(frame, dt)
	}
	result := m.game.Step(frame, dt)
	m.state = result.State

	if m.state.Paused || m.state.GameOver {
		// Time spent paused must not reach the next tick
		m.clock.Reset()
	}

	if m.state.GameOver && !m.saved {
		m.stopMusic()
		m.saveRun()
	}

	m.pressed.Age()
	m.input.Clear()
	return m, m.nextTick()
}

// restart starts a new run with a fresh seed unless the seed was fixed.
func (m *Model) restart() {
	if !m.fixedSeed {
		m.runtime.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.runtime)
	m.logConfigErr()

	m.state = m.game.State()
	m.saved = false
	m.recorder.Reset()
	m.clock.Reset()
	m.pressed.Reset()
	m.input.Clear()
	m.startMusic()
}

// finishRun journals a run that ends without a death.
func (m *Model) finishRun() {
	m.stopMusic()
	if !m.saved && m.state.Ticks > 0 {
		m.saveRun()
	}
	m.saved = true
}

// saveRun writes the current run to the journal, once.
func (m *Model) saveRun() {
	m.saved = true
	if m.opts.Store == nil || m.state.Ticks == 0 {
		return
	}
	j, ok := m.game.(journaled)
	if !ok {
		return
	}

	yml, err := config.Marshal(j.Config())
	if err != nil {
		m.opts.Logger.Error("cannot save run", "error", err)
		return
	}
	id, err := m.opts.Store.SaveRun(storage.RunRecord{
		GameID:  m.game.ID(),
		Session: m.opts.Session,
		Seed:    m.runtime.Seed,
		Config:  string(yml),
		Ticks:   m.state.Ticks,
		Score:   m.state.Score,
		Cause:   j.Cause(),
	}, m.recorder.Ticks())
	if err != nil {
		m.opts.Logger.Error("cannot save run", "error", err)
		return
	}
	m.opts.Logger.Info("run saved", "id", id, "score", m.state.Score, "ticks", m.state.Ticks, "cause", j.Cause())
}

func (m *Model) logConfigErr() {
	j, ok := m.game.(journaled)
	if !ok || j.ConfigErr() == nil {
		return
	}
	m.opts.Logger.Warn("config rejected, using defaults", "error", j.ConfigErr())
	m.setNotice("Config rejected, using defaults")
}

func (m *Model) startMusic() {
	if m.opts.Audio != nil {
		m.opts.Audio.StartMusic()
	}
}

func (m *Model) stopMusic() {
	if m.opts.Audio != nil {
		m.opts.Audio.StopMusic()
	}
}

func (m Model) nextTick() tea.Cmd {
	return tickCmd(m.runtime.TickRate, m.chain)
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeUntil = time.Now().Add(noticeDuration)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".highway", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.setNotice("Screenshot saved")
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.notice != "" && time.Now().Before(m.noticeUntil) {
		m.screen.DrawTextColored(1, m.screen.Height()-1, " "+m.notice+" ", core.ColorBrightYellow)
	}
	return m.opts.Palette.Render(m.screen)
}

// State returns the state after the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToTitle returns true if user requested the title screen.
func (m Model) BackToTitle() bool {
	return m.backToTitle
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer press jumps
	)

	_, err := p.Run()
	return err
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
