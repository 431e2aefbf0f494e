package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/platform/tui"
	"github.com/vovakirdan/pipe-runner/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse run history",
	Long: `Open the interactive scoreboard.

Controls:
  Tab/Left/Right  - Switch mode
  Up/Down         - Scroll
  Esc/Q           - Close`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	rt := runtimeConfig()
	_, err = tui.RunScoreboard(store, preset, rt.ScreenW, rt.ScreenH)
	return err
}
