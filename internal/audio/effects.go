package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// Cue durations and shaping.
const (
	coinNote1Duration = 60 * time.Millisecond
	coinNote2Duration = 140 * time.Millisecond
	coinAttack        = 4 * time.Millisecond
	coinRelease       = 80 * time.Millisecond

	blipDuration = 70 * time.Millisecond
	blipAttack   = 3 * time.Millisecond
	blipRelease  = 50 * time.Millisecond

	crashDuration = 350 * time.Millisecond
	crashAttack   = 2 * time.Millisecond
	crashRelease  = 280 * time.Millisecond
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	sweep    float64 // Frequency change per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a wave generator that ends after duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newSweep(freq, 0, duration, wave, rate)
}

func newSweep(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		o.phase += (o.freq + o.sweep*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release fade over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.attackSamples > 0 && e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CoinSound is a rising two-note chime played when an obstacle is passed.
func CoinSound(rate beep.SampleRate, vol float64) beep.Streamer {
	n1 := NewEnvelope(NewOscillator(987.77, coinNote1Duration, WaveSquare, rate),
		coinNote1Duration, coinAttack, coinNote1Duration/2, rate)
	n2 := NewEnvelope(NewOscillator(1318.51, coinNote2Duration, WaveSquare, rate),
		coinNote2Duration, coinAttack, coinRelease, rate)
	return newVolume(beep.Seq(n1, n2), vol*0.5)
}

// BlipSound is a short upward chirp played on every jump.
func BlipSound(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := newSweep(440, 4000, blipDuration, WaveTriangle, rate)
	return newVolume(NewEnvelope(osc, blipDuration, blipAttack, blipRelease, rate), vol*0.6)
}

// CrashSound is a noise burst over a falling rumble played when a run ends.
func CrashSound(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewEnvelope(NewOscillator(0, crashDuration, WaveNoise, rate),
		crashDuration, crashAttack, crashRelease, rate)
	rumble := NewEnvelope(newSweep(140, -200, crashDuration, WaveSine, rate),
		crashDuration, crashAttack, crashRelease, rate)
	return newVolume(beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.7)), vol)
}
