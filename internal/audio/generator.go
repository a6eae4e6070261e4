package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

func wave(w WaveType, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// sweep is a finite tone gliding from one frequency to another with a
// linear decay envelope.
type sweep struct {
	from, to float64
	gain     float64
	wave     WaveType
	rate     beep.SampleRate
	length   int
	pos      int
	phase    float64
}

func newSweep(from, to float64, d time.Duration, w WaveType, gain float64, rate beep.SampleRate) *sweep {
	return &sweep{from: from, to: to, gain: gain, wave: w, rate: rate, length: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.length {
			return i, i > 0
		}
		t := float64(s.pos) / float64(s.length)
		freq := s.from + (s.to-s.from)*t
		val := wave(s.wave, s.phase) * s.gain * (1 - t)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// note is one step of the music loop. Zero frequency is a rest.
type note struct {
	freq  float64
	beats float64
}

// bassline is the background loop, in A minor.
var bassline = []note{
	{110.00, 1}, {110.00, 0.5}, {130.81, 0.5}, {146.83, 1}, {164.81, 1},
	{98.00, 1}, {98.00, 0.5}, {110.00, 0.5}, {130.81, 1}, {0, 1},
	{87.31, 1}, {87.31, 0.5}, {98.00, 0.5}, {110.00, 1}, {130.81, 1},
	{82.41, 1}, {98.00, 1}, {110.00, 1}, {0, 1},
}

// melody plays an octave up over every other bar of the bassline.
var melody = []note{
	{440.00, 0.5}, {523.25, 0.5}, {659.25, 1}, {587.33, 1}, {523.25, 1},
	{0, 4},
	{392.00, 0.5}, {440.00, 0.5}, {523.25, 1}, {493.88, 1}, {440.00, 1},
	{0, 4},
}

// track loops a note sequence forever.
type track struct {
	notes   []note
	wave    WaveType
	gain    float64
	rate    beep.SampleRate
	beatLen int
	idx     int
	pos     int
	noteLen int
	phase   float64
}

func newTrack(notes []note, bpm float64, w WaveType, gain float64, rate beep.SampleRate) *track {
	t := &track{
		notes:   notes,
		wave:    w,
		gain:    gain,
		rate:    rate,
		beatLen: rate.N(time.Duration(float64(time.Minute) / bpm)),
	}
	t.noteLen = t.lengthOf(0)
	return t
}

func (t *track) lengthOf(i int) int {
	return int(t.notes[i].beats * float64(t.beatLen))
}

func (t *track) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		for t.pos >= t.noteLen {
			t.idx = (t.idx + 1) % len(t.notes)
			t.pos = 0
			t.noteLen = t.lengthOf(t.idx)
		}

		nt := t.notes[t.idx]
		var val float64
		if nt.freq > 0 {
			// Short attack and release so note boundaries do not click
			env := 1.0
			edge := float64(t.rate.N(8 * time.Millisecond))
			if p := float64(t.pos); p < edge {
				env = p / edge
			} else if r := float64(t.noteLen - t.pos); r < edge {
				env = r / edge
			}
			val = wave(t.wave, t.phase) * t.gain * env
			t.phase += nt.freq / float64(t.rate)
			t.phase -= math.Floor(t.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		t.pos++
	}
	return len(samples), true
}

func (t *track) Err() error { return nil }

// musicStreamer is the endless background music at the given volume.
func musicStreamer(rate beep.SampleRate, vol float64) beep.Streamer {
	mix := &beep.Mixer{}
	mix.Add(
		newTrack(bassline, 140, WaveTriangle, 0.5, rate),
		newTrack(melody, 140, WaveSquare, 0.12, rate),
	)
	return withVolume(mix, vol)
}

// cueStreamer returns the one-shot effect for a cue.
func cueStreamer(name string, rate beep.SampleRate) beep.Streamer {
	switch name {
	case "jump":
		return newSweep(300, 750, 150*time.Millisecond, WaveSine, 0.5, rate)
	case "attack":
		return newSweep(1200, 300, 90*time.Millisecond, WaveSquare, 0.25, rate)
	case "hurt":
		return newSweep(220, 60, 350*time.Millisecond, WaveSquare, 0.35, rate)
	case "kill":
		return beep.Seq(
			newSweep(520, 520, 70*time.Millisecond, WaveSquare, 0.3, rate),
			newSweep(1040, 1040, 120*time.Millisecond, WaveSquare, 0.3, rate),
		)
	default:
		return nil
	}
}

// withVolume scales amplitude linearly (vol 1 = unchanged).
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
