package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/highway-runner/internal/assets"
	"github.com/vovakirdan/highway-runner/internal/core"
	"github.com/vovakirdan/highway-runner/internal/games/highway"
	"github.com/vovakirdan/highway-runner/internal/registry"
	"github.com/vovakirdan/highway-runner/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.highway/host_key.
	HostKeyPath string

	// DBPath is the path to the run journal.
	DBPath string

	// AssetsPath is a custom sprite sheet, "" for the embedded one.
	AssetsPath string

	// TickRate is the display refresh rate of every session.
	TickRate int

	// Seed fixes the seed of every run; 0 picks a fresh one per run.
	Seed int64

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.highway/runs.db",
		TickRate:    60,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves one independent run per SSH session.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	catalog *assets.Catalog
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// Sprites are loaded up front and shared read-only by all sessions.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "highway-ssh",
		})
	}

	catalog := assets.NewCatalog(logger)
	if err := catalog.Load(cfg.AssetsPath); err != nil {
		return nil, fmt.Errorf("cannot load sprites: %w", err)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run journal", "error", err)
		store = nil // Continue without storage
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		catalog: catalog,
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".highway", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "highway needs an interactive terminal (ssh -t)")
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     s.config.Seed,
	}

	model := NewSessionModel(SessionOptions{
		Store:    s.store,
		Catalog:  s.catalog,
		Logger:   s.logger.With("user", sshSession.User()),
		Renderer: bubbletea.MakeRenderer(sshSession),
		Username: sshSession.User(),
		Runtime:  rt,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		s.Shutdown() //nolint:errcheck // Already failing
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures one interactive session.
type SessionOptions struct {
	Store    *storage.Store
	Catalog  *assets.Catalog
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
	Username string
	Runtime  core.RuntimeConfig
}

type sessionView int

const (
	viewTitle sessionView = iota
	viewGame
	viewRuns
)

// SessionModel manages the full session flow: title -> run -> title.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	palette  *Palette
	view     sessionView
	title    TitleModel
	game     *Model
	runs     *RunsModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return SessionModel{
		opts:    opts,
		palette: NewPalette(opts.Renderer),
		title:   NewTitleModel(opts.Runtime.ScreenW, opts.Runtime.ScreenH, opts.Renderer),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.title.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewRuns:
		return m.updateRuns(msg)
	default:
		return m.updateTitle(msg)
	}
}

// updateTitle handles updates on the title screen.
func (m SessionModel) updateTitle(msg tea.Msg) (tea.Model, tea.Cmd) {
	newTitle, cmd := m.title.Update(msg)
	if t, ok := newTitle.(TitleModel); ok {
		m.title = t
	}

	switch m.title.Chosen() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceStart:
		svc := NewServices(m.opts.Catalog, nil)
		game, err := registry.Create(highway.ID, svc)
		if err != nil {
			m.opts.Logger.Error("cannot create game", "error", err)
			m.title = NewTitleModel(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, m.opts.Renderer)
			return m, nil
		}
		gm := NewModel(game, Options{
			Store:     m.opts.Store,
			Catalog:   m.opts.Catalog,
			Logger:    m.opts.Logger,
			Palette:   m.palette,
			Session:   m.opts.Username,
			Runtime:   m.opts.Runtime,
			AllowBack: true,
		})
		m.game = &gm
		m.view = viewGame
		return m, m.game.Init()

	case ChoiceRuns:
		rm := NewRunsModel(m.opts.Store, m.opts.Catalog, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, m.opts.Renderer)
		m.runs = &rm
		m.view = viewRuns
		return m, m.runs.Init()
	}

	return m, cmd
}

// updateGame handles updates during a run.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToTitle() {
		return m.backToTitle()
	}

	return m, cmd
}

// updateRuns handles updates in the runs browser. Its own quit commands are
// replaced, since the session program outlives it.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runs.Update(msg)
	if rm, ok := newModel.(RunsModel); ok {
		m.runs = &rm
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.runs.IsGoingBack() {
		return m.backToTitle()
	}

	return m, cmd
}

func (m SessionModel) backToTitle() (tea.Model, tea.Cmd) {
	m.view = viewTitle
	m.game = nil
	m.runs = nil
	m.title = NewTitleModel(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, m.opts.Renderer)
	return m, m.title.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewRuns:
		return m.runs.View()
	default:
		return m.title.View()
	}
}
