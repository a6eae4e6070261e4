package highway

import (
	"github.com/vovakirdan/highway-runner/internal/assets"
	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
)

// Trap is a ground hazard. Traps are never consumed.
type Trap struct {
	Pos    core.Vec2 // Feet
	Height float64
	Speed  float64
}

// TrapManager spawns traps on a wall-time interval and moves them.
type TrapManager struct {
	traps   []Trap
	cfg     config.TrapsConfig
	sprites core.SpriteSource
	spawnX  float64
	groundY float64
	elapsed float64
}

// NewTrapManager creates an empty trap registry.
func NewTrapManager(cfg config.HighwayConfig, sprites core.SpriteSource) *TrapManager {
	return &TrapManager{
		traps:   make([]Trap, 0, 4),
		cfg:     cfg.Traps,
		sprites: sprites,
		spawnX:  cfg.World.Width + cfg.Traps.SpawnOffset,
		groundY: cfg.World.GroundY(),
	}
}

// Update drains the spawn accumulator, then moves and prunes traps.
// It returns the number of spawn attempts.
func (m *TrapManager) Update(ms float64) int {
	m.elapsed += ms

	n := 0
	for m.elapsed >= m.cfg.SpawnIntervalMs {
		m.elapsed -= m.cfg.SpawnIntervalMs
		m.spawn()
		n++
	}

	kept := m.traps[:0]
	for _, t := range m.traps {
		t.Pos.X -= t.Speed
		if t.Pos.X < m.cfg.DespawnX {
			continue
		}
		kept = append(kept, t)
	}
	m.traps = kept
	return n
}

func (m *TrapManager) spawn() {
	sprite, ok := m.sprites.Sprite(assets.Roller)
	if !ok {
		return
	}
	m.traps = append(m.traps, Trap{
		Pos:    core.Vec2{X: m.spawnX, Y: m.groundY},
		Height: sprite.Height,
		Speed:  m.cfg.Speed,
	})
}

// Traps returns the registry. Callers must not append to it.
func (m *TrapManager) Traps() []Trap {
	return m.traps
}

// Pending returns the milliseconds accumulated toward the next spawn.
func (m *TrapManager) Pending() float64 {
	return m.elapsed
}
