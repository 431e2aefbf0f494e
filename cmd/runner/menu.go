package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pipe-runner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a difficulty, Enter to play.
After a game, B returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Run history
  Q            - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./runner.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	best := func(mode string) uint32 {
		if store == nil {
			return 0
		}
		info, err := store.LoadScores(mode)
		if err != nil {
			return 0
		}
		return info.High
	}

	rt := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(rt, preset, best)
		if err != nil {
			return err
		}
		rt = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(runHistory(store), preset, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		preset = menuResult.Preset
		back, err := playOnce(withPreset(base, preset), preset, store, synth, rt, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if !back {
			return nil
		}

		// Fresh course for the next game
		rt.Seed = time.Now().UnixNano()
	}
}
