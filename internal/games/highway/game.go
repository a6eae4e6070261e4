// Package highway implements the side-scrolling runner: a hero that runs,
// jumps and attacks through waves of enemies, coins and rolling traps while
// a parallax background scrolls behind it.
//
// The simulation is a pure function of the config, the seed, and the
// (input, delta) sequence fed to Step. Rendering and audio are reached
// through core.Services only.
package highway

import (
	"math/rand"

	"github.com/vovakirdan/highway-runner/internal/assets"
	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
	"github.com/vovakirdan/highway-runner/internal/registry"
)

// ID is the registry id of the runner.
const ID = "highway"

// defaultHeroHeight is used until the hero sprite is known.
const defaultHeroHeight = 64

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the runner on top of the registries.
type Game struct {
	svc       core.Services
	runtime   core.RuntimeConfig
	cfg       config.HighwayConfig
	pinned    *config.HighwayConfig // Overrides file lookup (replays, tests)
	configErr error
	rng       *rand.Rand
	hero      *Hero
	enemies   *EnemyManager
	coins     *CoinManager
	traps     *TrapManager
	bg        *Background
	outcome   Outcome
	ready     bool // Readiness gate, latched on the first open check
	paused    bool
	ticks     int
}

// New creates a runner using the given collaborators.
func New(svc core.Services) *Game {
	return &Game{svc: svc.WithDefaults()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Highway Runner"
}

// PinConfig makes every following Reset use cfg instead of loading a file.
func (g *Game) PinConfig(cfg config.HighwayConfig) {
	g.pinned = &cfg
}

// Config returns the config of the current run.
func (g *Game) Config() config.HighwayConfig {
	return g.cfg
}

// ConfigErr returns the error from the last config load, if the run fell
// back to defaults because of it.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// Reset discards all registries and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg, g.configErr = g.loadConfig()

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.hero = NewHero(g.cfg, defaultHeroHeight, g.svc.Audio)
	g.enemies = NewEnemyManager(g.cfg, g.svc.Sprites)
	g.coins = NewCoinManager(g.cfg, g.svc.Sprites, g.rng)
	g.traps = NewTrapManager(g.cfg, g.svc.Sprites)
	g.bg = &Background{}
	g.outcome = Outcome{}
	g.ready = false
	g.paused = false
	g.ticks = 0
}

func (g *Game) loadConfig() (config.HighwayConfig, error) {
	if g.pinned != nil {
		return *g.pinned, nil
	}
	cfg, err := config.LoadHighway(configPath)
	if err != nil {
		return config.DefaultHighwayConfig(), err
	}
	return cfg, nil
}

// Step runs at most one simulation tick. No tick happens until the sprite
// source is ready, after the run is over, or while paused.
func (g *Game) Step(in core.InputFrame, dt core.Delta) core.StepResult {
	if !g.ready {
		if !g.svc.Sprites.Ready() {
			return core.StepResult{State: g.State()}
		}
		g.openGate()
	}

	if g.outcome.Over {
		return core.StepResult{State: g.State(), Dead: true}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	scroll := g.cfg.Physics.ScrollSpeed

	g.bg.Update(scroll)
	g.enemies.Update(dt.Frames)
	g.coins.Update(dt.Millis, scroll)
	g.traps.Update(dt.Millis)

	res := g.hero.Update(in, dt, World{Enemies: g.enemies, Coins: g.coins, Traps: g.traps})
	g.outcome.Record(res)

	return core.StepResult{
		State:      g.State(),
		Ticked:     true,
		ScoreDelta: res.ScoreDelta,
		Dead:       res.Dead,
	}
}

// openGate latches readiness and sizes everything that depends on sprites.
func (g *Game) openGate() {
	g.ready = true
	if s, ok := g.svc.Sprites.Sprite(assets.Hero); ok {
		g.hero.Height = s.Height
	}
	g.bg = NewBackground(g.cfg, g.svc.Sprites)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.outcome.Score,
		GameOver: g.outcome.Over,
		Paused:   g.paused,
		Ready:    g.ready,
		Ticks:    g.ticks,
	}
}

// Cause returns what ended the run, or "" while it is running.
func (g *Game) Cause() string {
	return g.outcome.Cause
}

// Hero returns the hero. Tests and renderers read it; only Step mutates it.
func (g *Game) Hero() *Hero {
	return g.hero
}

// Enemies returns the enemy registry.
func (g *Game) Enemies() *EnemyManager {
	return g.enemies
}

// Coins returns the coin registry.
func (g *Game) Coins() *CoinManager {
	return g.coins
}

// Traps returns the trap registry.
func (g *Game) Traps() *TrapManager {
	return g.traps
}

// Register the game with the registry
func init() {
	registry.Register(ID, func(svc core.Services) registry.Game {
		return New(svc)
	})
}
