package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pipe-runner/internal/audio"
	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/core"
	"github.com/vovakirdan/pipe-runner/internal/platform/tui"
	"github.com/vovakirdan/pipe-runner/internal/session"
)

var flagVolume float64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start playing at the selected difficulty.

Controls:
  Space/Up   - Jump (also starts a run)
  P/Esc      - Pause
  B          - Back (paused or between runs)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower start, gentle ramp, wider gaps
  normal - Speed ramps up as configured
  hard   - Faster start and ramp
  fixed  - Constant speed, no ramp
  max    - Top speed from the first pipe

Examples:
  runner play
  runner play --difficulty hard
  runner play --seed 42 --mute
  runner play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.3, "Sound volume (0-1)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	base, preset, err := loadBaseConfig()
	if err != nil {
		return err
	}

	store := openStoreOrWarn(flagDBPath)
	if store != nil {
		defer store.Close()
	}

	logger, closeLog := openLogFile()
	defer closeLog()

	synth := newSynth(logger)
	defer synth.Cleanup()

	_, err = playOnce(withPreset(base, preset), preset, store, synth, runtimeConfig(), logger)
	return err
}

// newSynth opens the speaker unless --mute is set. A speaker failure leaves
// the game silent.
func newSynth(logger *log.Logger) *audio.Synth {
	synth := audio.NewSynth(flagVolume, flagMute)
	if err := synth.Initialize(); err != nil {
		logger.Warn("audio unavailable", "error", err)
		synth.SetMuted(true)
	}
	return synth
}

// playOnce runs one game session in the terminal.
func playOnce(cfg config.Config, preset config.DifficultyPreset, store scoreStore, synth *audio.Synth, rt core.RuntimeConfig, logger *log.Logger) (bool, error) {
	opts := session.Options{
		Config: cfg,
		Mode:   preset.Mode(),
		Seed:   rt.Seed,
		Logger: logger,
		Audio:  synth,
		Store:  store,
	}

	back, err := tui.Run(session.New(opts), rt)
	if err != nil {
		return false, fmt.Errorf("running game: %w", err)
	}
	return back, nil
}
