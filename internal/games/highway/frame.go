package highway

import "github.com/vovakirdan/highway-runner/internal/core"

// HeroView is what a renderer needs to draw the hero.
type HeroView struct {
	Pos    core.Vec2
	Facing int
	Anim   string // idle, run, jump, attack or dead
}

// EnemyView is what a renderer needs to draw an enemy.
type EnemyView struct {
	Kind    EnemyKind
	Sprite  string
	Pos     core.Vec2
	Dying   bool
	Opacity float64 // 1 alive, fading toward 0 while dying
}

// LayerView is a background layer at its current scroll position.
type LayerView struct {
	Sprite core.Sprite
	Tiles  []float64
}

// Frame is a read-only snapshot of one tick for presentation.
type Frame struct {
	Width   float64
	Height  float64
	GroundY float64
	Ticks   int
	Score   int
	Ready   bool
	Paused  bool
	Over    bool
	Cause   string
	Hero    HeroView
	Enemies []EnemyView
	Coins   []core.Vec2
	Traps   []core.Vec2
	Layers  []LayerView
}

// View snapshots the current run.
func (g *Game) View() Frame {
	f := Frame{
		Width:   g.cfg.World.Width,
		Height:  g.cfg.World.Height,
		GroundY: g.cfg.World.GroundY(),
		Ticks:   g.ticks,
		Score:   g.outcome.Score,
		Ready:   g.ready,
		Paused:  g.paused,
		Over:    g.outcome.Over,
		Cause:   g.outcome.Cause,
		Hero: HeroView{
			Pos:    g.hero.Pos,
			Facing: g.hero.Facing,
			Anim:   g.hero.Anim(),
		},
	}

	for _, e := range g.enemies.Enemies() {
		f.Enemies = append(f.Enemies, EnemyView{
			Kind:    e.Kind,
			Sprite:  e.Kind.sprite(),
			Pos:     e.Pos,
			Dying:   !e.Alive(),
			Opacity: g.enemies.Opacity(e),
		})
	}
	for _, c := range g.coins.Coins() {
		f.Coins = append(f.Coins, c.Pos)
	}
	for _, t := range g.traps.Traps() {
		f.Traps = append(f.Traps, t.Pos)
	}
	for _, l := range g.bg.Layers() {
		tiles := make([]float64, len(l.Tiles))
		copy(tiles, l.Tiles)
		f.Layers = append(f.Layers, LayerView{Sprite: l.Sprite, Tiles: tiles})
	}
	return f
}
