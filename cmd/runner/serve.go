package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pipe-runner/internal/platform/tui"
	"github.com/vovakirdan/pipe-runner/internal/platform/web"
	"github.com/vovakirdan/pipe-runner/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagEnvFile     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and the leaderboard API",
	Long: `Start an SSH server for remote play and an HTTP leaderboard API.

Each SSH connection gets its own session with the difficulty menu.
All sessions share one run history database; remote sessions are silent.

The HTTP API is read-only:
  GET /health
  GET /scores?mode=normal&limit=10
  GET /scores/{mode}/best
  GET /scores/{mode}/recent
  GET /stats

Settings are read from flags, then from the environment
(RUNNER_SSH_ADDR, RUNNER_HTTP_ADDR, RUNNER_DB), optionally loaded from
an env file. An empty address disables that listener.

Examples:
  runner serve                           # SSH on :23234, HTTP on :8080
  runner serve --ssh :2222 --http ""     # SSH only
  runner serve --env-file ./runner.env`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP API address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Optional dotenv file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

// envOverride returns the env value when the flag was left at its default.
func envOverride(cmd *cobra.Command, flag, env, value string) string {
	if cmd.Flags().Changed(flag) {
		return value
	}
	if v, ok := os.LookupEnv(env); ok {
		return v
	}
	return value
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Missing env file is fine
	_ = godotenv.Load(flagEnvFile)

	sshAddr := envOverride(cmd, "ssh", "RUNNER_SSH_ADDR", flagSSHAddr)
	httpAddr := envOverride(cmd, "http", "RUNNER_HTTP_ADDR", flagHTTPAddr)
	dbPath := flagDBPath
	if !cmd.Flags().Changed("db") {
		if v, ok := os.LookupEnv("RUNNER_DB"); ok {
			dbPath = v
		}
	}
	if sshAddr == "" && httpAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	base, preset, err := loadBaseConfig()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, "runner")

	// The server always keeps run history in SQLite
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		wg   sync.WaitGroup
		once sync.Once
		fail error
	)
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				logger.Error("server stopped", "server", name, "error", err)
				once.Do(func() { fail = err })
				stop()
			}
		}()
	}

	if sshAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = sshAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.TickRate = flagFPS
		cfg.Game = base
		cfg.Preset = preset

		sshServer, err := tui.NewSSHServer(cfg, store, logger.WithPrefix("ssh"))
		if err != nil {
			return fmt.Errorf("creating SSH server: %w", err)
		}
		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(sshAddr))
		run("ssh", sshServer.Run)
	}

	if httpAddr != "" {
		api := web.New(store, logger.WithPrefix("http"))
		run("http", func(ctx context.Context) error { return api.Run(ctx, httpAddr) })
	}

	fmt.Println("Press Ctrl+C to stop")
	wg.Wait()
	return fail
}

// portOf returns the port of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
