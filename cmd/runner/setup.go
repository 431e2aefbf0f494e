package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/core"
	"github.com/vovakirdan/pipe-runner/internal/platform/tui"
	"github.com/vovakirdan/pipe-runner/internal/session"
	"github.com/vovakirdan/pipe-runner/internal/storage"
)

const (
	storeSQLite = "sqlite"
	storeFile   = "file"
)

// scoreStore is a ScoreKeeper that owns a resource.
type scoreStore interface {
	session.ScoreKeeper
	Close() error
}

// loadBaseConfig loads the config before any preset and parses --difficulty.
func loadBaseConfig() (config.Config, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, preset, nil
}

// withPreset returns a copy of base with preset applied.
func withPreset(base config.Config, preset config.DifficultyPreset) config.Config {
	cfg := base
	config.ApplyPreset(&cfg, preset)
	return cfg
}

// openStore opens the store selected by --store. The returned interface is
// nil on failure so callers can hand it straight to a session.
func openStore(path string) (scoreStore, error) {
	switch flagStore {
	case storeSQLite:
		s, err := storage.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case storeFile:
		f, err := storage.OpenFile(storage.DefaultScoreFile)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown store %q (want sqlite or file)", flagStore)
	}
}

// openStoreOrWarn keeps the game playable without persistence.
func openStoreOrWarn(path string) scoreStore {
	store, err := openStore(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open score store: %v\n", err)
		return nil
	}
	return store
}

// runHistory narrows a store to the scoreboard view. File stores have no
// history and yield a nil interface.
func runHistory(store scoreStore) tui.RunHistory {
	if s, ok := store.(*storage.Store); ok {
		return s
	}
	return nil
}

// newLogger builds a charmbracelet logger at --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile sends TUI logs to ~/.runner/runner.log so they stay off the
// alternate screen. The returned closer is never nil.
func openLogFile() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".runner")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "runner.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "runner"), func() { f.Close() }
}

// runtimeConfig reads the terminal size and the global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}
