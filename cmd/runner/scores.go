package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs for a mode",
	Long: `Display the best runs for a difficulty mode (default: normal),
followed by per-mode totals.

Examples:
  runner scores
  runner scores hard --limit 20
  runner scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history for the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	mode := preset.Mode()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearScores(mode); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Fprintf(out, "Cleared run history for %s.\n", mode)
		return nil
	}

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "Best runs - %s\n\n", mode)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'runner play --difficulty %s' to set the first score!\n", mode)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.AllModesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-7s  %5s  %5s  %7s\n", "Mode", "Runs", "Best", "Avg")
	for _, p := range config.Presets() {
		st, ok := stats[p.Mode()]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-7s  %5d  %5d  %7.1f\n", st.Mode, st.RunsCount, st.HighScore, st.AvgScore)
	}
	return nil
}
