package highway

import (
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/highway-runner/internal/assets"
	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
	"github.com/vovakirdan/highway-runner/internal/registry"
)

func TestReadinessGate(t *testing.T) {
	g, sprites, _ := newTestGame(t, config.DefaultHighwayConfig())
	sprites.ready = false

	for i := 0; i < 5; i++ {
		res := g.Step(trigger(core.ActionJump), core.NominalDelta())
		if res.Ticked || res.State.Ready || res.State.Ticks != 0 {
			t.Fatalf("step %d ran with the gate closed: %+v", i, res)
		}
	}
	if !g.Hero().OnGround {
		t.Error("input must not reach the hero before the gate opens")
	}

	sprites.ready = true
	res := g.Step(idle(), core.NominalDelta())
	if !res.Ticked || !res.State.Ready || res.State.Ticks != 1 {
		t.Fatalf("first step after opening = %+v, expected tick 1", res)
	}

	// Latched: later flips do not close it again
	sprites.ready = false
	if res := g.Step(idle(), core.NominalDelta()); !res.Ticked {
		t.Error("gate should stay open once latched")
	}
}

func TestGateSizesHeroFromSprite(t *testing.T) {
	g, sprites, _ := newTestGame(t, config.DefaultHighwayConfig())
	hero := sprites.sprites["hero"]
	hero.Height = 80
	sprites.sprites["hero"] = hero

	g.Step(idle(), core.NominalDelta())
	if g.Hero().Height != 80 {
		t.Errorf("hero height = %v, expected 80 from the sprite", g.Hero().Height)
	}
	if len(g.View().Layers) != 5 {
		t.Errorf("layers = %d, expected 5 after the gate opened", len(g.View().Layers))
	}
}

func TestPauseToggle(t *testing.T) {
	g, _, _ := newTestGame(t, config.DefaultHighwayConfig())
	g.Step(idle(), core.NominalDelta())

	res := g.Step(trigger(core.ActionPause), core.NominalDelta())
	if res.Ticked || !res.State.Paused {
		t.Fatalf("pause step = %+v, expected paused without a tick", res)
	}
	for i := 0; i < 3; i++ {
		if res := g.Step(holding(core.ActionRight), core.NominalDelta()); res.Ticked {
			t.Fatal("ticked while paused")
		}
	}
	res = g.Step(trigger(core.ActionPause), core.NominalDelta())
	if !res.Ticked || res.State.Paused || res.State.Ticks != 2 {
		t.Errorf("resume step = %+v, expected tick 2", res)
	}
}

func TestGameOverFreezesRun(t *testing.T) {
	g, _, audio := newTestGame(t, quietConfig())
	g.Step(idle(), core.NominalDelta())
	g.Traps().traps = append(g.Traps().traps, Trap{Pos: g.Hero().Pos, Height: 60, Speed: 0})

	res := g.Step(idle(), core.NominalDelta())
	if !res.Dead || !res.State.GameOver || g.Cause() != CauseTrap {
		t.Fatalf("result = %+v cause=%q, expected game over by trap", res, g.Cause())
	}

	ticks := res.State.Ticks
	for i := 0; i < 10; i++ {
		res := g.Step(trigger(core.ActionJump), core.NominalDelta())
		if res.Ticked || !res.Dead || res.ScoreDelta != 0 || res.State.Ticks != ticks {
			t.Fatalf("step after game over: %+v", res)
		}
	}
	if n := audio.count(core.CueHurt); n != 1 {
		t.Errorf("hurt cues = %d, expected 1", n)
	}
}

func TestResetStartsFreshRun(t *testing.T) {
	g, _, _ := newTestGame(t, config.DefaultHighwayConfig())
	for i := 0; i < 500; i++ {
		g.Step(holding(core.ActionRight), core.NominalDelta())
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	st := g.State()
	if st.Ticks != 0 || st.Score != 0 || st.GameOver || st.Ready {
		t.Errorf("state after reset = %+v", st)
	}
	if len(g.Coins().Coins()) != 0 || len(g.Enemies().Enemies()) != 0 || len(g.Traps().Traps()) != 0 {
		t.Error("registries should be empty after reset")
	}
	cfg := g.Config()
	if g.Hero().Pos.X != cfg.World.Width*cfg.Hero.StartRatio {
		t.Errorf("hero x = %v, expected start position", g.Hero().Pos.X)
	}
}

// randomInputs produces a reproducible input/delta stream.
func randomInputs(seed int64, n int) ([]core.InputFrame, []core.Delta) {
	rng := rand.New(rand.NewSource(seed))
	ins := make([]core.InputFrame, n)
	dts := make([]core.Delta, n)
	for i := range ins {
		in := core.NewInputFrame()
		switch rng.Intn(10) {
		case 0:
			in.Set(core.ActionJump)
		case 1:
			in.Set(core.ActionAttack)
		}
		switch rng.Intn(3) {
		case 0:
			in.Hold(core.ActionLeft)
		case 1:
			in.Hold(core.ActionRight)
		}
		ins[i] = in
		dts[i] = core.DeltaFromMillis(10 + rng.Float64()*30)
	}
	return ins, dts
}

func TestHeroNeverBelowGround(t *testing.T) {
	cfg := config.DefaultHighwayConfig()
	g, _, _ := newTestGame(t, cfg)
	ground := cfg.World.GroundY()
	ins, dts := randomInputs(3, 3000)

	for i := range ins {
		g.Step(ins[i], dts[i])
		h := g.Hero()
		if h.Pos.Y > ground {
			t.Fatalf("tick %d: hero y %v below ground %v", i, h.Pos.Y, ground)
		}
		if h.OnGround && h.VY != 0 {
			t.Fatalf("tick %d: on ground with vy %v", i, h.VY)
		}
		if g.State().GameOver {
			break
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	catalog, err := assets.Default(log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	run := func() (core.GameState, Frame) {
		g := New(core.Services{Sprites: catalog})
		g.PinConfig(config.DefaultHighwayConfig())
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
		ins, dts := randomInputs(9, 4000)
		for i := range ins {
			g.Step(ins[i], dts[i])
		}
		return g.State(), g.View()
	}

	s1, f1 := run()
	s2, f2 := run()
	if s1 != s2 {
		t.Fatalf("states differ: %+v vs %+v", s1, s2)
	}
	if f1.Hero != f2.Hero || len(f1.Coins) != len(f2.Coins) || len(f1.Enemies) != len(f2.Enemies) {
		t.Fatalf("frames differ:\n%+v\n%+v", f1, f2)
	}
	for i := range f1.Coins {
		if f1.Coins[i] != f2.Coins[i] {
			t.Errorf("coin %d: %v vs %v", i, f1.Coins[i], f2.Coins[i])
		}
	}
}

func TestRenderDrawsWorld(t *testing.T) {
	catalog, err := assets.Default(log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	g := New(core.Services{Sprites: catalog})
	g.PinConfig(config.DefaultHighwayConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	g.Step(idle(), core.NominalDelta())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "Score: 0") {
		t.Error("HUD score missing")
	}
	ground := int(g.Config().World.GroundY() * 24 / g.Config().World.Height)
	if row := screen.Row(ground); strings.Count(row, string(GroundChar)) != 80 {
		t.Errorf("ground row %d = %q, expected a full ground line", ground, row)
	}
	if !strings.Contains(out, "O") {
		t.Error("hero head missing")
	}
}

func TestRenderMessages(t *testing.T) {
	g, sprites, _ := newTestGame(t, quietConfig())
	screen := core.NewScreen(80, 24)

	sprites.ready = false
	g.Step(idle(), core.NominalDelta())
	g.Render(screen)
	if !strings.Contains(screen.String(), "LOADING") {
		t.Error("expected loading message before the gate opens")
	}

	sprites.ready = true
	g.Step(idle(), core.NominalDelta())
	g.Traps().traps = append(g.Traps().traps, Trap{Pos: g.Hero().Pos, Height: 60})
	g.Step(idle(), core.NominalDelta())
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Hit by trap") {
		t.Errorf("expected game over box naming the trap:\n%s", out)
	}
}

func TestMirrorRow(t *testing.T) {
	got := string(mirrorRow([]rune("/|=>"), 5))
	if got != " <=|\\" {
		t.Errorf("mirrorRow() = %q, expected %q", got, " <=|\\")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatal("highway should register itself")
	}
	g, err := registry.Create(ID, core.Services{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Highway Runner" {
		t.Errorf("Title() = %q", g.Title())
	}
}
