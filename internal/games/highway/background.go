package highway

import (
	"math"

	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
)

// Layer is one parallax strip: copies of a sprite laid side by side.
type Layer struct {
	Sprite core.Sprite
	Factor float64   // Multiplies the scroll speed
	Tiles  []float64 // Left edge of each copy, world units
}

// Background scrolls the parallax layers. It never touches entities.
type Background struct {
	layers []Layer
}

// NewBackground lays out enough tiles per layer to cover width plus one.
// Layers whose sprite is missing are dropped.
func NewBackground(cfg config.HighwayConfig, sprites core.SpriteSource) *Background {
	b := &Background{}
	for _, lc := range cfg.Background.Layers {
		sprite, ok := sprites.Sprite(lc.Sprite)
		if !ok {
			continue
		}
		n := int(math.Ceil(cfg.World.Width/sprite.Width)) + 1
		tiles := make([]float64, n)
		for i := range tiles {
			tiles[i] = float64(i) * sprite.Width
		}
		b.layers = append(b.layers, Layer{Sprite: sprite, Factor: lc.SpeedFactor, Tiles: tiles})
	}
	return b
}

// Update moves every tile left by scroll*factor and wraps tiles that left
// the screen to the end of their strip.
func (b *Background) Update(scroll float64) {
	for li := range b.layers {
		l := &b.layers[li]
		move := scroll * l.Factor
		span := l.Sprite.Width * float64(len(l.Tiles))
		for i := range l.Tiles {
			l.Tiles[i] -= move
			if l.Tiles[i] <= -l.Sprite.Width {
				l.Tiles[i] += span
			}
		}
	}
}

// Layers returns the layers back to front.
func (b *Background) Layers() []Layer {
	return b.layers
}
