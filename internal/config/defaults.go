package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// Default returns the built-in configuration. It matches defaults/runner.yaml
// and is used when the embedded YAML cannot be decoded.
func Default() Config {
	return Config{
		Course: CourseConfig{
			PoolSize:        5,
			GapX:            7.0,
			GapY:            3.5,
			Spread:          4.0,
			VerticalBias:    1.75,
			FirstX:          14.0,
			Depth:           0.0,
			ScoreBoundary:   0.0,
			ScoreHysteresis: 1.0,
		},
		Player: PlayerConfig{
			JumpVelocity:    10.0,
			InitialRotation: 0.0,
			Floor:           -20.0,
			Radius:          0.5,
		},
		Difficulty: DifficultyConfig{
			BaseSpeed: 5.0,
			MaxSpeed:  8.0,
			RampRate:  0.2,
		},
		Timing: TimingConfig{
			DeadCooldown: time.Second,
		},
		Physics: PhysicsConfig{
			Gravity:      25.0,
			MaxFallSpeed: 30.0,
			PipeWidth:    2.0,
			PipeLength:   10.0,
		},
		View: ViewConfig{
			MinX: -8.0,
			MaxX: 22.0,
			MinY: -7.0,
			MaxY: 7.0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
