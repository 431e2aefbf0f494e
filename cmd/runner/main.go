// runner is an endless pipe runner for the terminal.
//
// Usage:
//
//	runner                   - Start the difficulty menu
//	runner play              - Play straight away
//	runner serve             - Serve the game over SSH and the leaderboard over HTTP
//	runner scores [mode]     - Show the best runs for a mode
//	runner board             - Browse run history interactively
//	runner config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for a reproducible course
//	--db <path>           - Set database path (default: ~/.runner/runner.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - easy, normal, hard, fixed or max
//	--store <kind>        - sqlite or file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagStore      string
	flagMute       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Pipe Runner - jump through the gaps for as long as you can",
	Long: `Pipe Runner is an endless runner for the terminal. The course scrolls
faster and faster; every pipe you clear is a point, touching one ends the run.

Available commands:
  play     - Start a run directly
  menu     - Pick a difficulty interactively (default)
  serve    - Start the SSH server and the leaderboard API
  scores   - Print the best runs for a mode
  board    - Browse run history
  config   - Print the effective configuration

Examples:
  runner
  runner play --difficulty hard
  runner serve --ssh :2222 --http :8080
  runner scores max`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.runner/runner.db", "Path to the run history database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed, max")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagStore, "store", "sqlite", "Score store: sqlite or file")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(configCmd)
}
