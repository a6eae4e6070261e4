package highway

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/highway-runner/internal/assets"
	"github.com/vovakirdan/highway-runner/internal/core"
)

// Visual characters for rendering
const (
	GroundChar = '═'
	SoilChar   = '░'
)

// scoreMultiplier scales the score for display only.
const scoreMultiplier = 5

// animEvery is the number of ticks each animation frame is shown.
const animEvery = 6

// mirrored maps glyphs to their left-right mirror image.
var mirrored = map[rune]rune{
	'/': '\\', '\\': '/',
	'(': ')', ')': '(',
	'<': '>', '>': '<',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
}

// projector maps world units to screen cells.
type projector struct {
	sx, sy float64
}

func newProjector(f Frame, dst *core.Screen) projector {
	return projector{
		sx: float64(dst.Width()) / f.Width,
		sy: float64(dst.Height()) / f.Height,
	}
}

func (p projector) col(x float64) int {
	return int(math.Floor(x * p.sx))
}

func (p projector) row(y float64) int {
	return int(math.Floor(y * p.sy))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	f := g.View()
	if !f.Ready {
		drawCenteredMessage(dst, "LOADING", "Waiting for sprites...")
		return
	}

	p := newProjector(f, dst)
	ground := p.row(f.GroundY)
	frame := f.Ticks / animEvery

	for _, l := range f.Layers {
		g.drawLayer(dst, p, l, ground)
	}

	dst.DrawHLine(0, ground, dst.Width(), GroundChar, core.ColorBrightGreen)
	for y := ground + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), SoilChar, core.ColorGreen)
	}

	if s, ok := g.svc.Sprites.Sprite(assets.Roller); ok {
		for _, pos := range f.Traps {
			drawArt(dst, s.Frame("default", frame), p.col(pos.X), p.row(pos.Y), s.Color, false)
		}
	}

	if s, ok := g.svc.Sprites.Sprite(assets.Coin); ok {
		for _, pos := range f.Coins {
			// Coins are drawn centered on their position
			drawArt(dst, s.Frame("default", frame), p.col(pos.X), p.row(pos.Y)+1, s.Color, false)
		}
	}

	for _, e := range f.Enemies {
		s, ok := g.svc.Sprites.Sprite(e.Sprite)
		if !ok || e.Opacity <= 0 {
			continue
		}
		color := s.Color
		if e.Dying {
			color = core.ColorRed
			if e.Opacity < 0.4 {
				color = core.ColorGray
			}
		}
		drawArt(dst, s.Frame("default", frame), p.col(e.Pos.X), p.row(e.Pos.Y), color, false)
	}

	if s, ok := g.svc.Sprites.Sprite(assets.Hero); ok {
		color := s.Color
		if f.Over {
			color = core.ColorGray
		}
		drawArt(dst, s.Frame(f.Hero.Anim, frame), p.col(f.Hero.Pos.X), p.row(f.Hero.Pos.Y), color, f.Hero.Facing < 0)
	}

	// HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", f.Score*scoreMultiplier), core.ColorBrightYellow)
	status := fmt.Sprintf(" %s ", f.Hero.Anim)
	dst.DrawText(dst.Width()-len(status)-2, 0, status)

	if f.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if f.Over {
		sub := fmt.Sprintf("Score: %d  |  Press R to restart", f.Score*scoreMultiplier)
		if f.Cause != "" {
			sub = fmt.Sprintf("Hit by %s  |  ", f.Cause) + sub
		}
		drawCenteredMessage(dst, "GAME OVER", sub)
	}
}

// drawLayer tiles one background strip. Ground-anchored art stands on the
// ground line; top-anchored art hangs below the HUD row.
func (g *Game) drawLayer(dst *core.Screen, p projector, l LayerView, ground int) {
	rows := l.Sprite.Frame("default", 0)
	if len(rows) == 0 {
		return
	}
	top := ground - len(rows)
	if l.Sprite.Anchor == core.AnchorTop {
		top = 1
	}
	for _, x := range l.Tiles {
		left := p.col(x)
		for dy, row := range rows {
			dx := 0
			for _, r := range row {
				if r != ' ' {
					dst.SetColored(left+dx, top+dy, r, l.Sprite.Color)
				}
				dx++
			}
		}
	}
}

// drawArt draws rows centered on column cx with the last row just above
// row bottom. Spaces are transparent.
func drawArt(dst *core.Screen, rows []string, cx, bottom int, color core.Color, mirror bool) {
	width := 0
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}
	left := cx - width/2
	top := bottom - len(rows)

	for dy, row := range rows {
		runes := []rune(row)
		if mirror {
			runes = mirrorRow(runes, width)
		}
		for dx, r := range runes {
			if r != ' ' {
				dst.SetColored(left+dx, top+dy, r, color)
			}
		}
	}
}

// mirrorRow flips a row left-right within width cells.
func mirrorRow(row []rune, width int) []rune {
	out := []rune(strings.Repeat(" ", width))
	for i, r := range row {
		if m, ok := mirrored[r]; ok {
			r = m
		}
		out[width-1-i] = r
	}
	return out
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
