package config

import "math"

// SpeedRamp maps time spent in Playing to a scroll speed.
// The speed starts at BaseSpeed, grows linearly by RampRate per second and
// never exceeds MaxSpeed. HardMode pins it to MaxSpeed from the start.
type SpeedRamp struct {
	BaseSpeed float64
	MaxSpeed  float64
	RampRate  float64
	HardMode  bool
}

// NewSpeedRamp creates a ramp from the difficulty section of the config.
func NewSpeedRamp(cfg DifficultyConfig) SpeedRamp {
	return SpeedRamp{
		BaseSpeed: cfg.BaseSpeed,
		MaxSpeed:  cfg.MaxSpeed,
		RampRate:  cfg.RampRate,
		HardMode:  cfg.HardMode,
	}
}

// Start returns the speed at the moment a run begins.
func (r SpeedRamp) Start() float64 {
	if r.HardMode {
		return r.MaxSpeed
	}
	return r.BaseSpeed
}

// Advance returns the speed one frame of dt seconds later.
func (r SpeedRamp) Advance(speed, dt float64) float64 {
	if r.HardMode {
		return r.MaxSpeed
	}
	if speed < r.MaxSpeed {
		speed += r.RampRate * dt
	}
	return math.Min(speed, r.MaxSpeed)
}

// At returns the speed t seconds into a run.
func (r SpeedRamp) At(t float64) float64 {
	if r.HardMode {
		return r.MaxSpeed
	}
	return math.Min(r.MaxSpeed, r.BaseSpeed+r.RampRate*math.Max(t, 0))
}
