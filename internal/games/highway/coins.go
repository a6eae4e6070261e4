package highway

import (
	"math/rand"

	"github.com/vovakirdan/highway-runner/internal/assets"
	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
)

// Coin is a collectible.
type Coin struct {
	Pos    core.Vec2
	Height float64
	Value  int
}

// CoinManager spawns coins on a wall-time interval and scrolls them.
type CoinManager struct {
	coins   []Coin
	cfg     config.CoinsConfig
	sprites core.SpriteSource
	rng     *rand.Rand
	spawnX  float64
	groundY float64
	elapsed float64 // Milliseconds accumulated toward the next spawn
}

// NewCoinManager creates a coin registry drawing heights from rng.
func NewCoinManager(cfg config.HighwayConfig, sprites core.SpriteSource, rng *rand.Rand) *CoinManager {
	return &CoinManager{
		coins:   make([]Coin, 0, 8),
		cfg:     cfg.Coins,
		sprites: sprites,
		rng:     rng,
		spawnX:  cfg.World.Width + cfg.Coins.SpawnOffset,
		groundY: cfg.World.GroundY(),
	}
}

// Update drains the accumulator (several spawns per call when ms spans
// several intervals), then moves coins by scroll and prunes them.
// It returns the number of spawn attempts.
func (m *CoinManager) Update(ms, scroll float64) int {
	m.elapsed += ms

	n := 0
	for m.elapsed >= m.cfg.SpawnIntervalMs {
		m.elapsed -= m.cfg.SpawnIntervalMs
		m.spawn()
		n++
	}

	step := scroll * m.cfg.SpeedMultiplier
	kept := m.coins[:0]
	for _, c := range m.coins {
		c.Pos.X -= step
		if c.Pos.X < m.cfg.DespawnX {
			continue
		}
		kept = append(kept, c)
	}
	m.coins = kept
	return n
}

func (m *CoinManager) spawn() {
	// Draw the height even when the sprite is missing so the sequence of
	// heights does not depend on asset availability.
	y := m.groundY - m.cfg.MinHeight - m.rng.Float64()*m.cfg.HeightBand

	sprite, ok := m.sprites.Sprite(assets.Coin)
	if !ok {
		return
	}
	m.coins = append(m.coins, Coin{
		Pos:    core.Vec2{X: m.spawnX, Y: y},
		Height: sprite.Height,
		Value:  m.cfg.Value,
	})
}

// Collect removes every coin hit reports true for and returns their total value.
func (m *CoinManager) Collect(hit func(Coin) bool) int {
	total := 0
	kept := m.coins[:0]
	for _, c := range m.coins {
		if hit(c) {
			total += c.Value
			continue
		}
		kept = append(kept, c)
	}
	m.coins = kept
	return total
}

// Coins returns the registry. Callers must not append to it.
func (m *CoinManager) Coins() []Coin {
	return m.coins
}

// Pending returns the milliseconds accumulated toward the next spawn.
func (m *CoinManager) Pending() float64 {
	return m.elapsed
}
