package core

import (
	"math"
	"testing"
	"time"
)

func TestPressedSetHoldExpires(t *testing.T) {
	p := NewPressedSet(3)
	p.Press(ActionRight)

	for i := 0; i < 2; i++ {
		p.Age()
		if !p.Pressed(ActionRight) {
			t.Fatalf("press should survive %d ticks", i+1)
		}
	}
	p.Age()
	if p.Pressed(ActionRight) {
		t.Error("press should expire after holdTicks")
	}
}

func TestPressedSetRepeatRefreshes(t *testing.T) {
	p := NewPressedSet(2)
	p.Press(ActionLeft)
	p.Age()
	p.Press(ActionLeft) // key repeat
	p.Age()
	if !p.Pressed(ActionLeft) {
		t.Error("repeat should refresh the hold")
	}
}

func TestPressedSetOppositeCancels(t *testing.T) {
	p := NewPressedSet(0)
	p.Press(ActionLeft)
	p.Press(ActionRight)

	if p.Pressed(ActionLeft) {
		t.Error("pressing right should release left")
	}

	frame := NewInputFrame()
	p.Snapshot(&frame)
	if !frame.Holding(ActionRight) || frame.Holding(ActionLeft) {
		t.Errorf("snapshot = %v, expected only Right", frame.Held)
	}

	// holdTicks <= 0 never decays
	p.Age()
	p.Age()
	if !p.Pressed(ActionRight) {
		t.Error("untimed press should persist until Release")
	}
	p.Release(ActionRight)
	if p.Pressed(ActionRight) {
		t.Error("Release should drop the action")
	}
}

func TestInputFrameMasks(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)
	f.Set(ActionPause)
	f.Hold(ActionLeft)

	actions, held := f.Masks()
	back := InputFrameFromMasks(actions, held)

	if !back.Has(ActionJump) || !back.Has(ActionPause) || back.Has(ActionAttack) {
		t.Errorf("triggers not restored: %v", back.Actions)
	}
	if !back.Holding(ActionLeft) || back.Holding(ActionRight) {
		t.Errorf("held not restored: %v", back.Held)
	}
}

func TestClockDeltas(t *testing.T) {
	c := NewClock(60, 100*time.Millisecond)
	start := time.Unix(0, 0)

	first := c.Tick(start)
	if first.Frames < 0.99 || first.Frames > 1.01 {
		t.Errorf("first tick frames = %v, expected ~1", first.Frames)
	}

	d := c.Tick(start.Add(50 * time.Millisecond))
	if d.Millis != 50 || math.Abs(d.Frames-3) > 1e-9 {
		t.Errorf("50ms tick = %+v, expected {3 50}", d)
	}

	capped := c.Tick(start.Add(5 * time.Second))
	if capped.Millis != 100 {
		t.Errorf("long stall should be capped at 100ms, got %v", capped.Millis)
	}

	c.Reset()
	again := c.Tick(start.Add(time.Hour))
	if again.Millis > 17 {
		t.Errorf("tick after Reset should be nominal, got %v", again.Millis)
	}
}
