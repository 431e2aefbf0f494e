// Package audio plays short synthesized cues for run events through the
// system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/pipe-runner/internal/core"
	"github.com/vovakirdan/pipe-runner/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a sound effect.
type Cue int

const (
	CueCoin Cue = iota
	CueBlip
	CueCrash
)

func (c Cue) String() string {
	switch c {
	case CueCoin:
		return "coin"
	case CueBlip:
		return "blip"
	case CueCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// Cues maps one frame's events and transitions to the sounds to play.
// Several crossings in one frame still play a single coin.
func Cues(events []game.Event, transitions []game.Transition) []Cue {
	var cues []Cue
	var coin, blip bool
	for _, e := range events {
		switch e.Kind {
		case game.EventScored:
			coin = true
		case game.EventJumped:
			blip = true
		}
	}
	if blip {
		cues = append(cues, CueBlip)
	}
	if coin {
		cues = append(cues, CueCoin)
	}
	for _, t := range transitions {
		if t.To == core.StateDead {
			cues = append(cues, CueCrash)
		}
	}
	return cues
}

// Stream builds a fresh streamer for the cue.
func (c Cue) Stream(rate beep.SampleRate, vol float64) beep.Streamer {
	switch c {
	case CueCoin:
		return CoinSound(rate, vol)
	case CueBlip:
		return BlipSound(rate, vol)
	case CueCrash:
		return CrashSound(rate, vol)
	default:
		return nil
	}
}

// Synth owns the speaker mixer. A Synth that is muted or not initialized
// accepts every call and plays nothing.
type Synth struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

// NewSynth creates a synth at the given linear volume (1 is full scale).
func NewSynth(volume float64, muted bool) *Synth {
	return &Synth{
		mixer:  &beep.Mixer{},
		volume: volume,
		muted:  muted,
	}
}

// Initialize opens the speaker. It does nothing for a muted synth.
func (s *Synth) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized || s.muted {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Cleanup stops every cue. The speaker itself stays open for the process.
func (s *Synth) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// SetMuted toggles output. Muting drops cues already queued.
func (s *Synth) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = muted
	if muted && s.initialized {
		speaker.Lock()
		s.mixer.Clear()
		speaker.Unlock()
	}
}

// Muted reports whether output is muted.
func (s *Synth) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Handle plays the cues for one frame's output.
func (s *Synth) Handle(events []game.Event, transitions []game.Transition) {
	cues := Cues(events, transitions)
	if len(cues) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.muted {
		return
	}

	speaker.Lock()
	for _, c := range cues {
		s.mixer.Add(c.Stream(sampleRate, s.volume))
	}
	speaker.Unlock()
}
