package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/highway-runner/internal/core"
)

// drain streams s to the end (or limit samples) and returns the sample count
// and peak amplitude.
func drain(s beep.Streamer, limit int) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestCueStreamersAreFinite(t *testing.T) {
	cues := []core.Cue{core.CueJump, core.CueAttack, core.CueHurt, core.CueKill}
	limit := sampleRate.N(5 * time.Second)

	for _, c := range cues {
		t.Run(c.String(), func(t *testing.T) {
			s := cueStreamer(c.String(), sampleRate)
			if s == nil {
				t.Fatal("no streamer for cue")
			}
			n, peak := drain(s, limit)
			if n == 0 || n >= limit {
				t.Errorf("streamed %d samples, expected a short finite cue", n)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak = %v, expected audible and within [-1, 1]", peak)
			}
		})
	}

	if cueStreamer("unknown", sampleRate) != nil {
		t.Error("unknown cue should have no streamer")
	}
}

func TestSweepLength(t *testing.T) {
	s := newSweep(100, 200, 100*time.Millisecond, WaveSine, 1, sampleRate)
	n, _ := drain(s, sampleRate.N(time.Second))
	if want := sampleRate.N(100 * time.Millisecond); n != want {
		t.Errorf("sweep streamed %d samples, expected %d", n, want)
	}
	if n, ok := s.Stream(make([][2]float64, 16)); n != 0 || ok {
		t.Errorf("drained sweep returned (%d, %v), expected (0, false)", n, ok)
	}
}

func TestMusicLoopsForever(t *testing.T) {
	s := musicStreamer(sampleRate, MusicVolume)
	limit := sampleRate.N(30 * time.Second)
	n, peak := drain(s, limit)
	if n < limit {
		t.Errorf("music stopped after %d samples", n)
	}
	if peak == 0 || peak > 1 {
		t.Errorf("peak = %v, expected audible and within [-1, 1]", peak)
	}
}

func TestWithVolume(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1, 1},
		{0.4, 0.4},
		{0, 0},
	}
	for _, tc := range tests {
		s := withVolume(newSweep(0, 0, time.Second, WaveSquare, 1, sampleRate), tc.vol)
		buf := make([][2]float64, 1)
		s.Stream(buf)
		if math.Abs(buf[0][0]-tc.want) > 1e-9 {
			t.Errorf("withVolume(%v) first sample = %v, expected %v", tc.vol, buf[0][0], tc.want)
		}
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer(log.New(io.Discard))
	if p.Enabled() {
		t.Fatal("new player should not be enabled")
	}
	// None of these may touch the speaker
	p.Play(core.CueJump)
	p.StartMusic()
	p.StopMusic()
	p.Close()
}
