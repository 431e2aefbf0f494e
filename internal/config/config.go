// Package config provides YAML-based configuration loading and the
// difficulty model for the runner.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all tunables of a run.
type Config struct {
	Course     CourseConfig     `yaml:"course"`
	Player     PlayerConfig     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Timing     TimingConfig     `yaml:"timing"`
	Physics    PhysicsConfig    `yaml:"physics"`
	View       ViewConfig       `yaml:"view"`
}

// CourseConfig defines the obstacle pool layout.
type CourseConfig struct {
	PoolSize        int     `yaml:"pool_size"`        // Number of obstacle pairs, fixed for the process
	GapX            float64 `yaml:"gap_x"`            // Distance between successive pairs
	GapY            float64 `yaml:"gap_y"`            // Vertical clearance inside a pair
	Spread          float64 `yaml:"spread"`           // Range of the random vertical offset
	VerticalBias    float64 `yaml:"vertical_bias"`    // Added to spread/2 to center the gap on the player
	FirstX          float64 `yaml:"first_x"`          // X of slot 0 in the starting layout
	Depth           float64 `yaml:"depth"`            // Constant Z of every pair
	ScoreBoundary   float64 `yaml:"score_boundary"`   // X a pair must cross to score
	ScoreHysteresis float64 `yaml:"score_hysteresis"` // Distance past the boundary that re-arms a pair
}

// PlayerConfig defines the player body and its limits.
type PlayerConfig struct {
	JumpVelocity    float64 `yaml:"jump_velocity"`
	SpawnX          float64 `yaml:"spawn_x"`
	SpawnY          float64 `yaml:"spawn_y"`
	SpawnZ          float64 `yaml:"spawn_z"`
	InitialRotation float64 `yaml:"initial_rotation"` // Radians around Z, forced every Ready frame
	Floor           float64 `yaml:"floor"`            // Falling below this Y ends the run
	Radius          float64 `yaml:"radius"`
}

// DifficultyConfig defines the scroll speed ramp.
type DifficultyConfig struct {
	BaseSpeed float64 `yaml:"base_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
	RampRate  float64 `yaml:"ramp_rate"` // Units per second, per second
	HardMode  bool    `yaml:"hard_mode"` // Start every run at max speed
}

// TimingConfig defines real-time delays.
type TimingConfig struct {
	DeadCooldown time.Duration `yaml:"dead_cooldown"`
}

// PhysicsConfig defines the physics collaborator parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	PipeWidth    float64 `yaml:"pipe_width"`
	PipeLength   float64 `yaml:"pipe_length"`
}

// ViewConfig defines which part of the world is projected onto the terminal.
type ViewConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// Spawn returns the player spawn point components.
func (p PlayerConfig) Spawn() (x, y, z float64) {
	return p.SpawnX, p.SpawnY, p.SpawnZ
}

// Validate reports every inconsistent value in the config.
func (c Config) Validate() error {
	var errs []error

	if c.Course.PoolSize < 3 {
		errs = append(errs, fmt.Errorf("course.pool_size must be at least 3, got %d", c.Course.PoolSize))
	}
	if c.Course.GapX <= 0 {
		errs = append(errs, fmt.Errorf("course.gap_x must be positive, got %v", c.Course.GapX))
	}
	if c.Course.GapY <= 0 {
		errs = append(errs, fmt.Errorf("course.gap_y must be positive, got %v", c.Course.GapY))
	}
	if c.Course.Spread < 0 {
		errs = append(errs, fmt.Errorf("course.spread must not be negative, got %v", c.Course.Spread))
	}
	if c.Course.ScoreHysteresis <= 0 {
		errs = append(errs, fmt.Errorf("course.score_hysteresis must be positive, got %v", c.Course.ScoreHysteresis))
	}
	if c.Player.JumpVelocity <= 0 {
		errs = append(errs, fmt.Errorf("player.jump_velocity must be positive, got %v", c.Player.JumpVelocity))
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, fmt.Errorf("player.radius must be positive, got %v", c.Player.Radius))
	}
	if c.Difficulty.BaseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("difficulty.base_speed must be positive, got %v", c.Difficulty.BaseSpeed))
	}
	if c.Difficulty.MaxSpeed < c.Difficulty.BaseSpeed {
		errs = append(errs, fmt.Errorf("difficulty.max_speed (%v) is below base_speed (%v)", c.Difficulty.MaxSpeed, c.Difficulty.BaseSpeed))
	}
	if c.Difficulty.RampRate < 0 {
		errs = append(errs, fmt.Errorf("difficulty.ramp_rate must not be negative, got %v", c.Difficulty.RampRate))
	}
	if c.Timing.DeadCooldown < 0 {
		errs = append(errs, fmt.Errorf("timing.dead_cooldown must not be negative, got %v", c.Timing.DeadCooldown))
	}
	if c.Physics.PipeWidth <= 0 || c.Physics.PipeLength <= 0 {
		errs = append(errs, errors.New("physics.pipe_width and physics.pipe_length must be positive"))
	}
	if c.View.MaxX <= c.View.MinX || c.View.MaxY <= c.View.MinY {
		errs = append(errs, errors.New("view window must have positive width and height"))
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
	DifficultyMax    DifficultyPreset = "max"
)

// ParsePreset converts a CLI value into a preset. Empty input keeps the config as loaded.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed, DifficultyMax:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard, fixed or max)", s)
	}
}

// Mode returns the name scores are filed under for this preset.
func (p DifficultyPreset) Mode() string {
	if p == "" {
		return string(DifficultyNormal)
	}
	return string(p)
}

// Presets lists the difficulty presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed, DifficultyMax}
}

// Description is a one-line summary for menus and help output.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "slower start, gentle ramp, wider gaps"
	case DifficultyNormal, "":
		return "speed ramps up as configured"
	case DifficultyHard:
		return "faster start and ramp"
	case DifficultyFixed:
		return "constant speed, no ramp"
	case DifficultyMax:
		return "top speed from the first pipe"
	default:
		return ""
	}
}
