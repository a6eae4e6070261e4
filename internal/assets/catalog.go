// Package assets loads the named sprites the runner draws and sizes its
// entities with. The catalog is the readiness gate: the simulation does not
// tick until it reports Ready.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/highway-runner/internal/core"
)

// Sprite names used by the runner.
const (
	Hero         = "hero"
	Devil        = "devil"
	Zombie       = "zombie"
	Minotaur     = "minotaur"
	Coin         = "coin"
	Roller       = "roller"
	FarMountains = "far_mountains"
	MidMountains = "mid_mountains"
	NearClouds   = "near_clouds"
	Trees        = "trees"
	BlankSky     = "blank_sky"
)

// Required lists the sprites without which a run cannot start.
var Required = []string{Hero}

//go:embed defaults/sprites.yaml
var defaultSprites []byte

// ErrMissingRequired is returned when a sheet lacks a required sprite.
var ErrMissingRequired = errors.New("assets: required sprite missing")

type sheetFile struct {
	Sprites map[string]spriteDef `yaml:"sprites"`
}

type spriteDef struct {
	Width      float64               `yaml:"width"`
	Height     float64               `yaml:"height"`
	Color      string                `yaml:"color"`
	Anchor     string                `yaml:"anchor"`
	Animations map[string][][]string `yaml:"animations"`
}

// Catalog holds loaded sprites. It is safe for concurrent use: loading
// usually happens in a background command while the UI polls Ready.
type Catalog struct {
	mu      sync.RWMutex
	sprites map[string]core.Sprite
	loaded  bool
	warned  map[string]bool
	logger  *log.Logger
}

// NewCatalog creates an empty, not yet ready catalog.
func NewCatalog(logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{
		sprites: make(map[string]core.Sprite),
		warned:  make(map[string]bool),
		logger:  logger,
	}
}

// Default returns a catalog loaded from the embedded sheet.
func Default(logger *log.Logger) (*Catalog, error) {
	c := NewCatalog(logger)
	if err := c.LoadBytes(defaultSprites); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a sprite sheet from path, or the embedded sheet when path is empty.
func (c *Catalog) Load(path string) error {
	if path == "" {
		return c.LoadBytes(defaultSprites)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("assets: read %s: %w", path, err)
	}
	if err := c.LoadBytes(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadBytes parses a sprite sheet and replaces the catalog contents.
// Sprites missing from the sheet are not an error unless they are Required.
func (c *Catalog) LoadBytes(data []byte) error {
	sprites, err := Parse(data)
	if err != nil {
		return err
	}
	for _, name := range Required {
		if _, ok := sprites[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingRequired, name)
		}
	}

	c.mu.Lock()
	c.sprites = sprites
	c.warned = make(map[string]bool)
	c.loaded = true
	c.mu.Unlock()

	c.logger.Debug("sprites loaded", "count", len(sprites))
	return nil
}

// Ready reports whether loading finished and every required sprite exists.
func (c *Catalog) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return false
	}
	for _, name := range Required {
		if _, ok := c.sprites[name]; !ok {
			return false
		}
	}
	return true
}

// Sprite looks up a sprite by name. A missing name is logged once.
func (c *Catalog) Sprite(name string) (core.Sprite, bool) {
	c.mu.RLock()
	s, ok := c.sprites[name]
	loaded := c.loaded
	c.mu.RUnlock()
	if ok || !loaded {
		return s, ok
	}

	c.mu.Lock()
	first := !c.warned[name]
	c.warned[name] = true
	c.mu.Unlock()
	if first {
		c.logger.Warn("sprite missing, skipping", "name", name)
	}
	return core.Sprite{}, false
}

// Names returns the loaded sprite names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.sprites))
	for name := range c.sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse decodes a sprite sheet.
func Parse(data []byte) (map[string]core.Sprite, error) {
	var sheet sheetFile
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("assets: parse: %w", err)
	}

	sprites := make(map[string]core.Sprite, len(sheet.Sprites))
	for name, def := range sheet.Sprites {
		s, err := def.sprite(name)
		if err != nil {
			return nil, err
		}
		sprites[name] = s
	}
	return sprites, nil
}

func (d spriteDef) sprite(name string) (core.Sprite, error) {
	if d.Width <= 0 || d.Height <= 0 {
		return core.Sprite{}, fmt.Errorf("assets: sprite %q: width and height must be positive", name)
	}
	if len(d.Animations) == 0 {
		return core.Sprite{}, fmt.Errorf("assets: sprite %q: no animations", name)
	}

	color := core.ColorDefault
	if d.Color != "" {
		c, ok := core.ParseColor(d.Color)
		if !ok {
			return core.Sprite{}, fmt.Errorf("assets: sprite %q: unknown color %q", name, d.Color)
		}
		color = c
	}

	var anchor core.Anchor
	switch strings.ToLower(d.Anchor) {
	case "", "ground":
		anchor = core.AnchorGround
	case "top":
		anchor = core.AnchorTop
	default:
		return core.Sprite{}, fmt.Errorf("assets: sprite %q: unknown anchor %q", name, d.Anchor)
	}

	return core.Sprite{
		Name:       name,
		Width:      d.Width,
		Height:     d.Height,
		Color:      color,
		Anchor:     anchor,
		Animations: d.Animations,
	}, nil
}
