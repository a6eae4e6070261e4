// Package config provides YAML-based tuning for the runner simulation,
// environment overrides for the CLI, and a file watcher for hot reload.
package config

import (
	"errors"
	"fmt"
)

// Enemy kind names as they appear in YAML, in spawn sequence order.
const (
	KindDevil    = "devil"
	KindZombie   = "zombie"
	KindMinotaur = "minotaur"
)

// EnemySequence is the fixed wave order.
var EnemySequence = []string{KindDevil, KindZombie, KindMinotaur}

// HighwayConfig contains all tuning for the runner.
type HighwayConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Hero       HeroConfig       `yaml:"hero"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Coins      CoinsConfig      `yaml:"coins"`
	Traps      TrapsConfig      `yaml:"traps"`
	Background BackgroundConfig `yaml:"background"`
}

// WorldConfig defines the logical playfield in world units.
type WorldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GroundRatio float64 `yaml:"ground_ratio"` // Ground line as a fraction of height
}

// GroundY returns the y coordinate of the ground line.
func (w WorldConfig) GroundY() float64 {
	return w.Height * w.GroundRatio
}

// PhysicsConfig defines the discrete-time integrator constants.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // Added to vertical velocity every tick
	JumpVelocity float64 `yaml:"jump_velocity"` // Instant vertical velocity on jump (negative = up)
	ScrollSpeed  float64 `yaml:"scroll_speed"`  // Base scroll speed for coins and background
}

// HeroConfig defines hero movement and combat.
type HeroConfig struct {
	Speed       float64 `yaml:"speed"`        // Horizontal speed while a direction is held
	EdgeInset   float64 `yaml:"edge_inset"`   // Distance kept from both screen edges
	StartRatio  float64 `yaml:"start_ratio"`  // Start x as a fraction of world width
	AttackTicks float64 `yaml:"attack_ticks"` // Attack duration in frames
}

// EnemyKindConfig is one row of the enemy kind table.
type EnemyKindConfig struct {
	Speed float64 `yaml:"speed"`
	Value int     `yaml:"value"`
}

// EnemiesConfig defines the wave scheduler and enemy registry.
type EnemiesConfig struct {
	SpawnDelayTicks float64                    `yaml:"spawn_delay_ticks"`
	SpawnOffset     float64                    `yaml:"spawn_offset"` // Spawn x past the right edge
	DespawnX        float64                    `yaml:"despawn_x"`
	FadeTicks       float64                    `yaml:"fade_ticks"`
	HitRadius       float64                    `yaml:"hit_radius"`
	Kinds           map[string]EnemyKindConfig `yaml:"kinds"`
}

// CoinsConfig defines the coin scheduler and registry.
type CoinsConfig struct {
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	SpawnOffset     float64 `yaml:"spawn_offset"`
	MinHeight       float64 `yaml:"min_height"`  // Lowest spawn height above ground
	HeightBand      float64 `yaml:"height_band"` // Random extra height range
	DespawnX        float64 `yaml:"despawn_x"`
	HitRadius       float64 `yaml:"hit_radius"`
	Value           int     `yaml:"value"`
}

// TrapsConfig defines the trap scheduler and registry.
type TrapsConfig struct {
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"`
	Speed           float64 `yaml:"speed"`
	SpawnOffset     float64 `yaml:"spawn_offset"`
	DespawnX        float64 `yaml:"despawn_x"`
	HitRadius       float64 `yaml:"hit_radius"`
}

// BackgroundConfig lists parallax layers, back to front.
type BackgroundConfig struct {
	Layers []LayerConfig `yaml:"layers"`
}

// LayerConfig binds a background sprite to its scroll factor.
type LayerConfig struct {
	Sprite      string  `yaml:"sprite"`
	SpeedFactor float64 `yaml:"speed_factor"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate rejects configurations the simulation cannot run with.
func (c HighwayConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalid)
	case c.World.GroundRatio <= 0 || c.World.GroundRatio > 1:
		return fmt.Errorf("%w: ground_ratio must be in (0, 1]", ErrInvalid)
	case c.Coins.SpawnIntervalMs <= 0:
		return fmt.Errorf("%w: coins.spawn_interval_ms must be positive", ErrInvalid)
	case c.Traps.SpawnIntervalMs <= 0:
		return fmt.Errorf("%w: traps.spawn_interval_ms must be positive", ErrInvalid)
	case c.Enemies.SpawnDelayTicks <= 0:
		return fmt.Errorf("%w: enemies.spawn_delay_ticks must be positive", ErrInvalid)
	case c.Enemies.FadeTicks <= 0:
		return fmt.Errorf("%w: enemies.fade_ticks must be positive", ErrInvalid)
	case c.Hero.AttackTicks <= 0:
		return fmt.Errorf("%w: hero.attack_ticks must be positive", ErrInvalid)
	}

	for _, kind := range EnemySequence {
		if _, ok := c.Enemies.Kinds[kind]; !ok {
			return fmt.Errorf("%w: enemies.kinds.%s is missing", ErrInvalid, kind)
		}
	}
	return nil
}
