package config

import (
	_ "embed"
)

//go:embed defaults/highway.yaml
var defaultHighwayYAML []byte

// DefaultHighwayConfig returns the built-in tuning.
func DefaultHighwayConfig() HighwayConfig {
	return HighwayConfig{
		World: WorldConfig{
			Width:       960,
			Height:      540,
			GroundRatio: 0.78,
		},
		Physics: PhysicsConfig{
			Gravity:      0.9,
			JumpVelocity: -16,
			ScrollSpeed:  3,
		},
		Hero: HeroConfig{
			Speed:       5,
			EdgeInset:   40,
			StartRatio:  0.15,
			AttackTicks: 14,
		},
		Enemies: EnemiesConfig{
			SpawnDelayTicks: 120,
			SpawnOffset:     80,
			DespawnX:        -100,
			FadeTicks:       15,
			HitRadius:       40,
			Kinds: map[string]EnemyKindConfig{
				KindDevil:    {Speed: 3.5, Value: 5},
				KindZombie:   {Speed: 3, Value: 2},
				KindMinotaur: {Speed: 2, Value: 10},
			},
		},
		Coins: CoinsConfig{
			SpawnIntervalMs: 1200,
			SpeedMultiplier: 1.0,
			SpawnOffset:     40,
			MinHeight:       80,
			HeightBand:      100,
			DespawnX:        -60,
			HitRadius:       30,
			Value:           1,
		},
		Traps: TrapsConfig{
			SpawnIntervalMs: 4600,
			Speed:           4.5,
			SpawnOffset:     100,
			DespawnX:        -120,
			HitRadius:       35,
		},
		Background: BackgroundConfig{
			Layers: []LayerConfig{
				{Sprite: "blank_sky", SpeedFactor: 1.8},
				{Sprite: "near_clouds", SpeedFactor: 0.9},
				{Sprite: "far_mountains", SpeedFactor: 0.2},
				{Sprite: "mid_mountains", SpeedFactor: 0.5},
				{Sprite: "trees", SpeedFactor: 1.1},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultHighwayYAML
}
