package assets

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/highway-runner/internal/core"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestDefaultSheetHasAllSprites(t *testing.T) {
	c, err := Default(quietLogger())
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	if !c.Ready() {
		t.Fatal("default catalog should be ready")
	}

	names := []string{Hero, Devil, Zombie, Minotaur, Coin, Roller,
		FarMountains, MidMountains, NearClouds, Trees, BlankSky}
	for _, name := range names {
		s, ok := c.Sprite(name)
		if !ok {
			t.Errorf("sprite %q missing from default sheet", name)
			continue
		}
		if s.Height <= 0 || s.Width <= 0 {
			t.Errorf("sprite %q has size %vx%v", name, s.Width, s.Height)
		}
		if len(s.Frame("default", 0)) == 0 {
			t.Errorf("sprite %q has no drawable frame", name)
		}
	}

	hero, _ := c.Sprite(Hero)
	for _, anim := range []string{"idle", "run", "jump", "attack", "dead"} {
		if _, ok := hero.Animations[anim]; !ok {
			t.Errorf("hero animation %q missing", anim)
		}
	}

	sky, _ := c.Sprite(BlankSky)
	if sky.Anchor != core.AnchorTop {
		t.Errorf("blank_sky anchor = %v, expected top", sky.Anchor)
	}
}

func TestCatalogNotReadyBeforeLoad(t *testing.T) {
	c := NewCatalog(quietLogger())
	if c.Ready() {
		t.Error("empty catalog should not be ready")
	}
	if _, ok := c.Sprite(Hero); ok {
		t.Error("empty catalog should not return sprites")
	}
}

func TestLoadRejectsSheetWithoutHero(t *testing.T) {
	c := NewCatalog(quietLogger())
	sheet := "sprites:\n  coin:\n    width: 10\n    height: 10\n    animations:\n      default:\n        - ['o']\n"
	err := c.LoadBytes([]byte(sheet))
	if !errors.Is(err, ErrMissingRequired) {
		t.Errorf("LoadBytes() = %v, expected ErrMissingRequired", err)
	}
	if c.Ready() {
		t.Error("catalog should stay not ready after a failed load")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		want  string
	}{
		{"bad yaml", "sprites: [", "parse"},
		{"zero height", "sprites:\n  hero:\n    width: 1\n    height: 0\n    animations:\n      default:\n        - ['o']\n", "positive"},
		{"no animations", "sprites:\n  hero:\n    width: 1\n    height: 1\n", "no animations"},
		{"bad color", "sprites:\n  hero:\n    width: 1\n    height: 1\n    color: plaid\n    animations:\n      default:\n        - ['o']\n", "unknown color"},
		{"bad anchor", "sprites:\n  hero:\n    width: 1\n    height: 1\n    anchor: left\n    animations:\n      default:\n        - ['o']\n", "unknown anchor"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.sheet))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Parse() = %v, expected error containing %q", err, tc.want)
			}
		})
	}
}

func TestMissingSpriteWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	c := NewCatalog(logger)
	sheet := "sprites:\n  hero:\n    width: 10\n    height: 10\n    animations:\n      idle:\n        - ['@']\n"
	if err := c.LoadBytes([]byte(sheet)); err != nil {
		t.Fatalf("LoadBytes() failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, ok := c.Sprite(Devil); ok {
			t.Fatal("devil should be missing")
		}
	}
	if n := strings.Count(buf.String(), "sprite missing"); n != 1 {
		t.Errorf("warned %d times, expected 1\n%s", n, buf.String())
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	sheet := "sprites:\n  hero:\n    width: 10\n    height: 20\n    color: red\n    animations:\n      idle:\n        - ['@']\n"
	if err := os.WriteFile(path, []byte(sheet), 0o600); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog(quietLogger())
	if err := c.Load(path); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	hero, ok := c.Sprite(Hero)
	if !ok || hero.Height != 20 || hero.Color != core.ColorRed {
		t.Errorf("hero = %+v, expected height 20 and red", hero)
	}
	if got := c.Names(); len(got) != 1 || got[0] != Hero {
		t.Errorf("Names() = %v, expected [hero]", got)
	}

	if err := c.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
