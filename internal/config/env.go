package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds environment overrides for CLI flags. Nil fields were not set.
type Env struct {
	FPS        *int    `env:"HIGHWAY_FPS"`
	Seed       *int64  `env:"HIGHWAY_SEED"`
	DBPath     *string `env:"HIGHWAY_DB"`
	ConfigPath *string `env:"HIGHWAY_CONFIG"`
	AssetsPath *string `env:"HIGHWAY_ASSETS"`
	Mute       *bool   `env:"HIGHWAY_MUTE"`
	LogPath    *string `env:"HIGHWAY_LOG"`
	LogLevel   *string `env:"HIGHWAY_LOG_LEVEL"`
}

// LoadEnv reads HIGHWAY_* variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}
