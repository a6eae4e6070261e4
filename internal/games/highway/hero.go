package highway

import (
	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
)

// HeroState is the hero's logical state. Death is tracked separately.
type HeroState int

const (
	HeroIdle HeroState = iota
	HeroRun
	HeroJump
	HeroAttack
)

// String returns the state name, also used as the animation name.
func (s HeroState) String() string {
	switch s {
	case HeroIdle:
		return "idle"
	case HeroRun:
		return "run"
	case HeroJump:
		return "jump"
	case HeroAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Death causes reported in HeroResult.
const (
	CauseTrap = "trap"
)

// HeroResult is the outcome of one hero update.
type HeroResult struct {
	ScoreDelta int
	Dead       bool
	Cause      string // What killed the hero, set on the killing tick only
}

// World gives the hero access to the registries it collides with.
type World struct {
	Enemies *EnemyManager
	Coins   *CoinManager
	Traps   *TrapManager
}

// Hero is the player character and the per-tick orchestrator of collisions.
type Hero struct {
	Pos         core.Vec2 // Feet; y grows downward
	VY          float64
	Facing      int // +1 right, -1 left
	State       HeroState
	OnGround    bool
	Attacking   bool
	AttackTimer float64 // Frames left in the current attack
	Dead        bool
	Height      float64 // Visual height, for the collision center

	cfg     config.HeroConfig
	phys    config.PhysicsConfig
	coinR   float64
	enemyR  float64
	trapR   float64
	minX    float64
	maxX    float64
	groundY float64
	audio   core.Audio
}

// NewHero places a hero on the ground at the start position.
func NewHero(cfg config.HighwayConfig, height float64, audio core.Audio) *Hero {
	return &Hero{
		Pos:      core.Vec2{X: cfg.World.Width * cfg.Hero.StartRatio, Y: cfg.World.GroundY()},
		Facing:   1,
		State:    HeroIdle,
		OnGround: true,
		Height:   height,
		cfg:      cfg.Hero,
		phys:     cfg.Physics,
		coinR:    cfg.Coins.HitRadius,
		enemyR:   cfg.Enemies.HitRadius,
		trapR:    cfg.Traps.HitRadius,
		minX:     cfg.Hero.EdgeInset,
		maxX:     cfg.World.Width - cfg.Hero.EdgeInset,
		groundY:  cfg.World.GroundY(),
		audio:    audio,
	}
}

// Update runs one tick: triggers, horizontal move, gravity, attack timer,
// collisions, then the state rules. A dead hero reports (dead, 0) forever.
func (h *Hero) Update(in core.InputFrame, dt core.Delta, w World) HeroResult {
	if h.Dead {
		return HeroResult{Dead: true}
	}

	h.handleTriggers(in)

	vx := 0.0
	if !h.Attacking {
		if in.Holding(core.ActionLeft) {
			vx -= h.cfg.Speed
		}
		if in.Holding(core.ActionRight) {
			vx += h.cfg.Speed
		}
		h.Pos.X = core.ClampF(h.Pos.X+vx, h.minX, h.maxX)
		if vx > 0 {
			h.Facing = 1
		} else if vx < 0 {
			h.Facing = -1
		}
	}

	h.VY += h.phys.Gravity
	h.Pos.Y += h.VY
	if h.Pos.Y >= h.groundY {
		h.Pos.Y = h.groundY
		h.VY = 0
		h.OnGround = true
	} else {
		h.OnGround = false
	}

	if h.AttackTimer > 0 {
		h.AttackTimer -= dt.Frames
		if h.AttackTimer <= 0 {
			h.AttackTimer = 0
			h.Attacking = false
		}
	}

	res := h.collide(w)

	if !h.Dead && !h.Attacking {
		switch {
		case !h.OnGround:
			h.State = HeroJump
		case vx != 0:
			h.State = HeroRun
		default:
			h.State = HeroIdle
		}
	}

	res.Dead = h.Dead
	return res
}

// handleTriggers applies jump and attack presses. Jump only needs the hero
// on the ground, so it can cut into an attack; the attack keeps running.
// Attack needs the ground and no attack in progress. Jump is checked first.
func (h *Hero) handleTriggers(in core.InputFrame) {
	if !h.OnGround {
		return
	}
	switch {
	case in.Has(core.ActionJump):
		h.VY = h.phys.JumpVelocity
		h.OnGround = false
		h.State = HeroJump
		h.audio.Play(core.CueJump)
	case in.Has(core.ActionAttack) && !h.Attacking:
		h.Attacking = true
		h.AttackTimer = h.cfg.AttackTicks
		h.State = HeroAttack
		h.audio.Play(core.CueAttack)
	}
}

// collide resolves coins, then enemies, then traps. Hits are gathered by
// the registries before anything is removed.
func (h *Hero) collide(w World) HeroResult {
	var res HeroResult

	if w.Coins != nil {
		res.ScoreDelta += w.Coins.Collect(func(c Coin) bool {
			return overlaps(h.Pos, h.Height, c.Pos, c.Height, h.coinR)
		})
	}

	if w.Enemies != nil {
		for i, e := range w.Enemies.Enemies() {
			if !e.Alive() || !overlaps(h.Pos, h.Height, e.Pos, e.Height, h.enemyR) {
				continue
			}
			if h.Attacking {
				res.ScoreDelta += w.Enemies.Kill(i)
				h.audio.Play(core.CueKill)
				continue
			}
			if h.die() {
				res.Cause = e.Kind.String()
			}
		}
	}

	if w.Traps != nil {
		for _, t := range w.Traps.Traps() {
			if overlaps(h.Pos, h.Height, t.Pos, t.Height, h.trapR) && h.die() {
				res.Cause = CauseTrap
			}
		}
	}

	return res
}

// die latches the dead flag. It reports true only the first time.
func (h *Hero) die() bool {
	if h.Dead {
		return false
	}
	h.Dead = true
	h.Attacking = false
	h.AttackTimer = 0
	h.audio.Play(core.CueHurt)
	return true
}

// Anim returns the visual state tag: the logical state, or "dead".
func (h *Hero) Anim() string {
	if h.Dead {
		return "dead"
	}
	return h.State.String()
}
