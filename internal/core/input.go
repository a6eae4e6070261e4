package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with intents rather than raw devices.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left (held)
	ActionRight          // D, Right arrow - move right (held)
	ActionJump           // Space, W, Up, pointer press - jump
	ActionAttack         // J - attack
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionRestart        // R key - restart run after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionAttack:
		return "Attack"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input for one simulation tick.
// Actions holds one-shot triggers fired since the previous tick; Held holds
// the directions that are currently pressed. The simulation only reads it.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Hold marks a continuous action (direction) as held for this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Holding returns true if the given action is held during this frame.
func (f InputFrame) Holding(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Clear resets all triggers and held actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}

// Masks packs the frame into two bitmasks (triggers, held), one bit per
// Action. Used by the run journal.
func (f InputFrame) Masks() (actions, held uint32) {
	for a, on := range f.Actions {
		if on && a > ActionNone {
			actions |= 1 << uint(a)
		}
	}
	for a, on := range f.Held {
		if on && a > ActionNone {
			held |= 1 << uint(a)
		}
	}
	return actions, held
}

// InputFrameFromMasks rebuilds a frame packed by Masks.
func InputFrameFromMasks(actions, held uint32) InputFrame {
	f := NewInputFrame()
	for a := ActionLeft; a <= ActionPause; a++ {
		if actions&(1<<uint(a)) != 0 {
			f.Set(a)
		}
		if held&(1<<uint(a)) != 0 {
			f.Hold(a)
		}
	}
	return f
}

// PressedSet is the "currently pressed" set written by input handlers
// between ticks. Terminals do not report key releases, so a press stays held
// for holdTicks ticks unless it is repeated or explicitly released.
type PressedSet struct {
	remaining map[Action]int
	holdTicks int
}

// NewPressedSet creates a set where a press lasts holdTicks ticks.
// holdTicks <= 0 means presses last until Release.
func NewPressedSet(holdTicks int) *PressedSet {
	return &PressedSet{
		remaining: make(map[Action]int),
		holdTicks: holdTicks,
	}
}

// Press records a press (or key repeat) of a.
// Opposite directions cancel each other so a turn is immediate.
func (p *PressedSet) Press(a Action) {
	switch a {
	case ActionLeft:
		delete(p.remaining, ActionRight)
	case ActionRight:
		delete(p.remaining, ActionLeft)
	}
	p.remaining[a] = p.holdTicks
}

// Release forgets a, for platforms that do report key-up events.
func (p *PressedSet) Release(a Action) {
	delete(p.remaining, a)
}

// Reset releases everything.
func (p *PressedSet) Reset() {
	for a := range p.remaining {
		delete(p.remaining, a)
	}
}

// Pressed returns true if a is currently held.
func (p *PressedSet) Pressed(a Action) bool {
	_, ok := p.remaining[a]
	return ok
}

// Age counts one tick down on every timed press and drops expired ones.
func (p *PressedSet) Age() {
	if p.holdTicks <= 0 {
		return
	}
	for a, n := range p.remaining {
		n--
		if n <= 0 {
			delete(p.remaining, a)
			continue
		}
		p.remaining[a] = n
	}
}

// Snapshot copies the held actions into frame.Held.
func (p *PressedSet) Snapshot(frame *InputFrame) {
	for a := range p.remaining {
		frame.Hold(a)
	}
}
