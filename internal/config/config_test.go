package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML and Default() differ:\n%+v\n%+v", cfg, Default())
	}
	if cfg.Timing.DeadCooldown != time.Second {
		t.Errorf("dead_cooldown = %v, expected 1s", cfg.Timing.DeadCooldown)
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte("difficulty:\n  max_speed: 12\n  hard_mode: true\ntiming:\n  dead_cooldown: 1500ms\n")

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Difficulty.MaxSpeed != 12 || !cfg.Difficulty.HardMode {
		t.Errorf("override not applied: %+v", cfg.Difficulty)
	}
	if cfg.Difficulty.BaseSpeed != 5.0 {
		t.Errorf("unset key should keep its default, base_speed = %v", cfg.Difficulty.BaseSpeed)
	}
	if cfg.Timing.DeadCooldown != 1500*time.Millisecond {
		t.Errorf("dead_cooldown = %v", cfg.Timing.DeadCooldown)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"tiny pool", "course:\n  pool_size: 2\n", "pool_size"},
		{"max below base", "difficulty:\n  max_speed: 1\n", "max_speed"},
		{"negative ramp", "difficulty:\n  ramp_rate: -1\n", "ramp_rate"},
		{"bad yaml", "course: [", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.want != "" && !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("player:\n  jump_velocity: 12.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Player.JumpVelocity != 12.5 {
		t.Errorf("jump_velocity = %v, expected 12.5", cfg.Player.JumpVelocity)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing custom path should fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal(Default())) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("round trip changed the config: %+v", cfg)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	ApplyPreset(&cfg, DifficultyMax)
	if !cfg.Difficulty.HardMode {
		t.Error("max preset should enable hard mode")
	}

	cfg = Default()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.RampRate != 0 {
		t.Errorf("fixed preset should stop the ramp, rate = %v", cfg.Difficulty.RampRate)
	}

	cfg = Default()
	ApplyPreset(&cfg, DifficultyEasy)
	if err := cfg.Validate(); err != nil {
		t.Errorf("easy preset produced an invalid config: %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("unknown preset should be rejected")
	}
	if DifficultyPreset("").Mode() != "normal" {
		t.Error("empty preset should file scores under normal")
	}
}

func TestSpeedRampClosedForm(t *testing.T) {
	r := NewSpeedRamp(Default().Difficulty)

	tests := []struct {
		t, expected float64
	}{
		{0, 5.0},
		{10, 7.0},
		{15, 8.0},
		{100, 8.0},
		{-3, 5.0},
	}
	for _, tc := range tests {
		if got := r.At(tc.t); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("At(%v) = %v, expected %v", tc.t, got, tc.expected)
		}
	}
}

func TestSpeedRampPerFrameMatchesClosedForm(t *testing.T) {
	r := NewSpeedRamp(Default().Difficulty)
	dt := 1.0 / 60.0

	speed := r.Start()
	for i := 0; i < 600; i++ {
		next := r.Advance(speed, dt)
		if next < speed {
			t.Fatalf("speed decreased at frame %d: %v -> %v", i, speed, next)
		}
		speed = next
	}
	if math.Abs(speed-7.0) > 1e-6 {
		t.Errorf("speed after 10s = %v, expected 7.0", speed)
	}

	for i := 0; i < 6000; i++ {
		speed = r.Advance(speed, dt)
	}
	if speed != r.MaxSpeed {
		t.Errorf("speed should clamp to max, got %v", speed)
	}
}

func TestSpeedRampHardMode(t *testing.T) {
	cfg := Default().Difficulty
	cfg.HardMode = true
	r := NewSpeedRamp(cfg)

	if r.Start() != 8.0 || r.Advance(5.0, 0.016) != 8.0 || r.At(0) != 8.0 {
		t.Error("hard mode should pin the speed to max")
	}
}
