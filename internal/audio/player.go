// Package audio plays the runner's synthesized sound effects and background
// music through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/highway-runner/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)

	// MusicVolume is the linear gain of the background loop.
	MusicVolume = 0.4
)

// Player implements core.Audio. Until Init succeeds every method is a
// no-op, so a muted or speakerless session needs no special casing.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a silent player.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Init opens the speaker. On failure the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug("speaker ready", "rate", int(sampleRate))
	return nil
}

// Enabled reports whether sound reaches the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play starts a one-shot cue.
func (p *Player) Play(c core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := cueStreamer(c.String(), sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// StartMusic starts the background loop, if it is not already playing.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if p.music != nil && !p.music.Paused {
		return
	}

	ctrl := &beep.Ctrl{Streamer: musicStreamer(sampleRate, MusicVolume)}
	speaker.Lock()
	if p.music != nil {
		p.music.Streamer = nil // Drained by the mixer on its next pass
	}
	p.music = ctrl
	p.mixer.Add(ctrl)
	speaker.Unlock()
}

// StopMusic silences the background loop.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.music == nil {
		return
	}
	speaker.Lock()
	p.music.Paused = true
	speaker.Unlock()
}

// Close stops all sound and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.music = nil
	p.initialized = false
}
