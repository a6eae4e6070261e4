// Package replay records the (input, delta) stream of a live run and
// re-simulates journaled runs headlessly to check they reproduce.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/highway-runner/internal/config"
	"github.com/vovakirdan/highway-runner/internal/core"
	"github.com/vovakirdan/highway-runner/internal/games/highway"
	"github.com/vovakirdan/highway-runner/internal/storage"
)

var (
	// ErrNotFound is returned when the journal has no run with the given id.
	ErrNotFound = errors.New("replay: run not found")
	// ErrNotReady is returned when the sprite source cannot open the gate.
	ErrNotReady = errors.New("replay: sprites not ready")
	// ErrMismatch is returned when a replay ends differently from the record.
	ErrMismatch = errors.New("replay: result mismatch")
)

// Recorder collects every Step call of a run.
type Recorder struct {
	ticks []storage.TickRecord
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one Step call.
func (r *Recorder) Record(in core.InputFrame, dt core.Delta) {
	actions, held := in.Masks()
	r.ticks = append(r.ticks, storage.TickRecord{Actions: actions, Held: held, Millis: dt.Millis})
}

// Ticks returns the recorded steps.
func (r *Recorder) Ticks() []storage.TickRecord {
	return r.ticks
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(r.ticks)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.ticks = r.ticks[:0]
}

// Frame rebuilds the input and delta of a recorded step.
func Frame(t storage.TickRecord) (core.InputFrame, core.Delta) {
	return core.InputFrameFromMasks(t.Actions, t.Held), core.DeltaFromMillis(t.Millis)
}

// Result is the end state of a replayed run.
type Result struct {
	Score int
	Ticks int
	Over  bool
	Cause string
}

// Run feeds ticks to a fresh runner built with cfg and seed.
func Run(sprites core.SpriteSource, cfg config.HighwayConfig, seed int64, ticks []storage.TickRecord) (Result, error) {
	if sprites == nil || !sprites.Ready() {
		return Result{}, ErrNotReady
	}

	g := highway.New(core.Services{Sprites: sprites})
	g.PinConfig(cfg)
	rt := core.DefaultConfig()
	rt.Seed = seed
	g.Reset(rt)

	for _, t := range ticks {
		in, dt := Frame(t)
		g.Step(in, dt)
	}

	st := g.State()
	return Result{Score: st.Score, Ticks: st.Ticks, Over: st.GameOver, Cause: g.Cause()}, nil
}

// Verify loads run id from the journal, replays it and compares the outcome
// with the recorded one. The returned record is set whenever the run exists.
func Verify(store *storage.Store, sprites core.SpriteSource, id int64) (Result, *storage.RunRecord, error) {
	run, err := store.Run(id)
	if err != nil {
		return Result{}, nil, err
	}
	if run == nil {
		return Result{}, nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	cfg, err := config.ParseHighway([]byte(run.Config))
	if err != nil {
		return Result{}, run, fmt.Errorf("replay: run %d: %w", id, err)
	}
	ticks, err := store.RunTicks(id)
	if err != nil {
		return Result{}, run, err
	}

	res, err := Run(sprites, cfg, run.Seed, ticks)
	if err != nil {
		return res, run, err
	}
	if res.Score != run.Score || res.Ticks != run.Ticks || res.Cause != run.Cause {
		return res, run, fmt.Errorf("%w: recorded score %d in %d ticks (%q), replayed score %d in %d ticks (%q)",
			ErrMismatch, run.Score, run.Ticks, run.Cause, res.Score, res.Ticks, res.Cause)
	}
	return res, run, nil
}
