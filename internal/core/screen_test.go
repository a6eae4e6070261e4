package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected plain space", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorBrightRed)
	c := s.GetCell(5, 5)
	if c.Rune != 'X' || c.Color != ColorBrightRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red X", c)
	}

	// Plain Set resets the color
	s.Set(5, 5, 'Y')
	if c := s.GetCell(5, 5); c.Color != ColorDefault {
		t.Errorf("Set should reset color, got %v", c.Color)
	}

	// Out of bounds should be silent
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextColored(1, 1, "◆═◆", ColorYellow)

	if s.Get(1, 1) != '◆' || s.Get(2, 1) != '═' || s.Get(3, 1) != '◆' {
		t.Errorf("multibyte text misplaced: %q", s.Row(1))
	}
	if s.GetCell(2, 1).Color != ColorYellow {
		t.Error("DrawTextColored should color every cell")
	}

	// Clipped at the right boundary
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColored(2, 2, 'Z', ColorGreen)

	s.Resize(20, 10)
	if c := s.GetCell(2, 2); c.Rune != 'Z' || c.Color != ColorGreen {
		t.Errorf("Resize lost content: %+v", c)
	}

	s.Resize(2, 2)
	if s.Width() != 2 || s.Height() != 2 {
		t.Errorf("size = %dx%d, expected 2x2", s.Width(), s.Height())
	}
}

func TestScreenDrawBoxAndString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3))
	s.DrawHLine(1, 1, 3, '═', ColorGreen)

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("String() has %d lines, expected 3", len(lines))
	}
	if lines[0] != "┌───┐" || lines[1] != "│═══│" || lines[2] != "└───┘" {
		t.Errorf("unexpected box:\n%s", s.String())
	}
}

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor(" Bright_Red "); !ok || c != ColorBrightRed {
		t.Errorf("ParseColor(bright_red) = %v, %v", c, ok)
	}
	if _, ok := ParseColor("ultraviolet"); ok {
		t.Error("unknown color should not parse")
	}
}
