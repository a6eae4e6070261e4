package core

// Sprite is a named visual asset: terminal glyph art plus the world-space
// size the simulation uses for collision centers.
type Sprite struct {
	Name       string
	Width      float64               // World units
	Height     float64               // World units
	Color      Color                 // Default cell color
	Anchor     Anchor                // Where background art is pinned
	Animations map[string][][]string // Animation name -> frames -> rows
}

// Anchor selects the vertical placement of background art.
type Anchor int

const (
	AnchorGround Anchor = iota // Bottom row sits on the ground line
	AnchorTop                  // Top row sits below the HUD
)

// Frame returns the rows of an animation frame. Unknown animations fall back
// to "default", then to any animation the sprite has.
func (s Sprite) Frame(anim string, n int) []string {
	frames, ok := s.Animations[anim]
	if !ok || len(frames) == 0 {
		frames, ok = s.Animations["default"]
	}
	if !ok || len(frames) == 0 {
		for _, f := range s.Animations {
			if len(f) > 0 {
				frames = f
				break
			}
		}
	}
	if len(frames) == 0 {
		return nil
	}
	if n < 0 {
		n = -n
	}
	return frames[n%len(frames)]
}

// SpriteSource is the asset collaborator. Ready is the readiness gate that
// must hold before the first tick.
type SpriteSource interface {
	Ready() bool
	Sprite(name string) (Sprite, bool)
}

// Cue is a named sound effect emitted by the simulation.
type Cue int

const (
	CueJump Cue = iota
	CueAttack
	CueHurt
	CueKill
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueAttack:
		return "attack"
	case CueHurt:
		return "hurt"
	case CueKill:
		return "kill"
	default:
		return "unknown"
	}
}

// Audio receives fire-and-forget cues.
type Audio interface {
	Play(c Cue)
}

// NopAudio discards every cue.
type NopAudio struct{}

// Play implements Audio.
func (NopAudio) Play(Cue) {}

// Services bundles the collaborators a game is created with.
type Services struct {
	Sprites SpriteSource
	Audio   Audio
}

// emptySprites never becomes ready.
type emptySprites struct{}

func (emptySprites) Ready() bool                  { return false }
func (emptySprites) Sprite(string) (Sprite, bool) { return Sprite{}, false }

// WithDefaults fills nil collaborators with inert ones.
func (s Services) WithDefaults() Services {
	if s.Sprites == nil {
		s.Sprites = emptySprites{}
	}
	if s.Audio == nil {
		s.Audio = NopAudio{}
	}
	return s
}
