package highway

import (
	"github.com/vovakirdan/highway-runner/internal/assets"
	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
)

// EnemyKind tags an enemy. Speed and value come from the kind table.
type EnemyKind int

const (
	KindDevil EnemyKind = iota
	KindZombie
	KindMinotaur
	kindCount
)

// sequence is the wave order; it wraps around forever.
var sequence = [kindCount]EnemyKind{KindDevil, KindZombie, KindMinotaur}

// String returns the kind name used in config and sprite sheets.
func (k EnemyKind) String() string {
	switch k {
	case KindDevil:
		return config.KindDevil
	case KindZombie:
		return config.KindZombie
	case KindMinotaur:
		return config.KindMinotaur
	default:
		return "unknown"
	}
}

func (k EnemyKind) sprite() string {
	switch k {
	case KindDevil:
		return assets.Devil
	case KindZombie:
		return assets.Zombie
	default:
		return assets.Minotaur
	}
}

// kindStats is one row of the kind table.
type kindStats struct {
	Speed float64
	Value int
}

// EnemyPhase is the enemy lifecycle. Removal from the registry ends it.
type EnemyPhase int

const (
	PhaseAlive EnemyPhase = iota
	PhaseDying            // Killed, fading out in place
)

// Enemy is one live or dying enemy.
type Enemy struct {
	Kind      EnemyKind
	Pos       core.Vec2 // Feet
	Height    float64
	Phase     EnemyPhase
	HurtTimer float64 // Frames of fade-out left while Dying
}

// Alive reports whether the enemy can still hit or be hit.
func (e Enemy) Alive() bool {
	return e.Phase == PhaseAlive
}

// EnemyManager schedules waves and owns the enemy registry.
type EnemyManager struct {
	enemies   []Enemy
	kinds     [kindCount]kindStats
	cfg       config.EnemiesConfig
	sprites   core.SpriteSource
	spawnX    float64
	groundY   float64
	wave      int     // Index into sequence of the next spawn
	countdown float64 // Frames waited with no enemy alive
	spawned   int
}

// NewEnemyManager builds the kind table from cfg.
func NewEnemyManager(cfg config.HighwayConfig, sprites core.SpriteSource) *EnemyManager {
	m := &EnemyManager{
		enemies: make([]Enemy, 0, 4),
		cfg:     cfg.Enemies,
		sprites: sprites,
		spawnX:  cfg.World.Width + cfg.Enemies.SpawnOffset,
		groundY: cfg.World.GroundY(),
	}
	for _, k := range sequence {
		row := cfg.Enemies.Kinds[k.String()]
		m.kinds[k] = kindStats{Speed: row.Speed, Value: row.Value}
	}
	return m
}

// Update ages the wave countdown (only while no enemy is alive), spawns the
// next kind when it expires, then advances and prunes the registry.
func (m *EnemyManager) Update(frames float64) {
	if !m.AnyAlive() {
		m.countdown += frames
		if m.countdown >= m.cfg.SpawnDelayTicks {
			m.countdown = 0
			m.spawnNext()
		}
	}

	kept := m.enemies[:0]
	for _, e := range m.enemies {
		switch e.Phase {
		case PhaseDying:
			e.HurtTimer -= frames
			if e.HurtTimer <= 0 {
				continue
			}
		default:
			e.Pos.X -= m.kinds[e.Kind].Speed
			if e.Pos.X < m.cfg.DespawnX {
				continue
			}
		}
		kept = append(kept, e)
	}
	m.enemies = kept
}

// spawnNext advances the wave index even when the sprite is missing,
// so the sequence never stalls on one kind.
func (m *EnemyManager) spawnNext() {
	kind := sequence[m.wave]
	m.wave = (m.wave + 1) % len(sequence)

	sprite, ok := m.sprites.Sprite(kind.sprite())
	if !ok {
		return
	}
	m.enemies = append(m.enemies, Enemy{
		Kind:   kind,
		Pos:    core.Vec2{X: m.spawnX, Y: m.groundY},
		Height: sprite.Height,
	})
	m.spawned++
}

// Kill moves enemy i from Alive to Dying and returns its value.
// Killing a dying enemy is a no-op worth 0.
func (m *EnemyManager) Kill(i int) int {
	if i < 0 || i >= len(m.enemies) || !m.enemies[i].Alive() {
		return 0
	}
	m.enemies[i].Phase = PhaseDying
	m.enemies[i].HurtTimer = m.cfg.FadeTicks
	return m.kinds[m.enemies[i].Kind].Value
}

// AnyAlive reports whether some enemy is in the Alive phase.
func (m *EnemyManager) AnyAlive() bool {
	for _, e := range m.enemies {
		if e.Alive() {
			return true
		}
	}
	return false
}

// Opacity returns the fade level of e: 1 while alive, HurtTimer/FadeTicks while dying.
func (m *EnemyManager) Opacity(e Enemy) float64 {
	if e.Alive() {
		return 1
	}
	return core.ClampF(e.HurtTimer/m.cfg.FadeTicks, 0, 1)
}

// Enemies returns the registry. Callers must not append to it.
func (m *EnemyManager) Enemies() []Enemy {
	return m.enemies
}

// Countdown returns the frames waited toward the next wave.
func (m *EnemyManager) Countdown() float64 {
	return m.countdown
}

// NextKind returns the kind the next wave will spawn.
func (m *EnemyManager) NextKind() EnemyKind {
	return sequence[m.wave]
}

// Spawned returns how many enemies have entered the registry this run.
func (m *EnemyManager) Spawned() int {
	return m.spawned
}
