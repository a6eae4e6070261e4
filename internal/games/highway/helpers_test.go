package highway

import (
	"testing"

	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
)

// stubSprites is a SpriteSource with switchable readiness.
type stubSprites struct {
	ready   bool
	sprites map[string]core.Sprite
}

func newStubSprites() *stubSprites {
	one := map[string][][]string{"default": {{"#"}}}
	s := &stubSprites{ready: true, sprites: map[string]core.Sprite{}}
	for name, h := range map[string]float64{
		"hero": 64, "devil": 64, "zombie": 64, "minotaur": 64, "coin": 32, "roller": 60,
	} {
		s.sprites[name] = core.Sprite{Name: name, Width: 48, Height: h, Animations: one}
	}
	for _, name := range []string{"blank_sky", "near_clouds", "far_mountains", "mid_mountains", "trees"} {
		s.sprites[name] = core.Sprite{Name: name, Width: 480, Height: 100, Animations: one}
	}
	return s
}

func (s *stubSprites) Ready() bool { return s.ready }

func (s *stubSprites) Sprite(name string) (core.Sprite, bool) {
	sp, ok := s.sprites[name]
	return sp, ok
}

// cueRecorder collects audio cues.
type cueRecorder struct {
	cues []core.Cue
}

func (r *cueRecorder) Play(c core.Cue) { r.cues = append(r.cues, c) }

func (r *cueRecorder) count(c core.Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T, cfg config.HighwayConfig) (*Game, *stubSprites, *cueRecorder) {
	t.Helper()
	sprites := newStubSprites()
	audio := &cueRecorder{}
	g := New(core.Services{Sprites: sprites, Audio: audio})
	g.PinConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g, sprites, audio
}

// quietConfig returns the default tuning with coin and trap spawns pushed
// far into the future, so tests control every entity.
func quietConfig() config.HighwayConfig {
	cfg := config.DefaultHighwayConfig()
	cfg.Coins.SpawnIntervalMs = 1e12
	cfg.Traps.SpawnIntervalMs = 1e12
	cfg.Enemies.SpawnDelayTicks = 1e12
	return cfg
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func trigger(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Set(a)
	return f
}

func holding(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Hold(a)
	return f
}
