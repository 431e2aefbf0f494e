// Package web serves a read-only JSON leaderboard over HTTP.
//
// Routes:
//
//	GET /health                    liveness
//	GET /scores?mode=&limit=       best runs for a mode
//	GET /scores/{mode}/best        high score for a mode
//	GET /scores/{mode}/recent      latest runs for a mode
//	GET /stats                     per-mode aggregates
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Leaderboard is the read side of the run store.
type Leaderboard interface {
	TopScores(mode string, limit int) ([]storage.RunEntry, error)
	RecentRuns(mode string, limit int) ([]storage.RunEntry, error)
	HighScore(mode string) (uint32, error)
	AllModesStats() (map[string]*storage.ModeStats, error)
}

// Server bundles the router and the leaderboard source.
type Server struct {
	r      *chi.Mux
	board  Leaderboard
	logger *log.Logger
}

// New constructs a Server, installs middleware and registers routes.
// A nil logger discards request logs.
func New(board Leaderboard, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{r: chi.NewRouter(), board: board, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.requestLogger)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "pipe-runner",
			"endpoints": []string{"/health", "/scores", "/scores/{mode}/best", "/scores/{mode}/recent", "/stats"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Route("/scores", func(r chi.Router) {
		r.Get("/", s.handleTop)
		r.Get("/{mode}/best", s.handleBest)
		r.Get("/{mode}/recent", s.handleRecent)
	})
	s.r.Get("/stats", s.handleStats)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the router for tests and embedding.
func (s *Server) Router() chi.Router { return s.r }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// runJSON is the wire form of a run.
type runJSON struct {
	ID        int64     `json:"id"`
	Mode      string    `json:"mode"`
	Score     uint32    `json:"score"`
	HighScore uint32    `json:"high_score"`
	CreatedAt time.Time `json:"created_at"`
}

type runsRes struct {
	Mode string    `json:"mode"`
	Runs []runJSON `json:"runs"`
}

type bestRes struct {
	Mode      string `json:"mode"`
	HighScore uint32 `json:"high_score"`
}

type statsJSON struct {
	Runs       int       `json:"runs"`
	HighScore  uint32    `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	TotalScore int64     `json:"total_score"`
	LastPlayed time.Time `json:"last_played"`
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseMode(w, r.URL.Query().Get("mode"))
	if !ok {
		return
	}
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	runs, err := s.board.TopScores(mode, limit)
	s.writeRuns(w, mode, runs, err)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseMode(w, chi.URLParam(r, "mode"))
	if !ok {
		return
	}
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	runs, err := s.board.RecentRuns(mode, limit)
	s.writeRuns(w, mode, runs, err)
}

func (s *Server) writeRuns(w http.ResponseWriter, mode string, runs []storage.RunEntry, err error) {
	if err != nil {
		s.logger.Error("cannot query runs", "mode", mode, "error", err)
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	res := runsRes{Mode: mode, Runs: make([]runJSON, 0, len(runs))}
	for _, e := range runs {
		res.Runs = append(res.Runs, runJSON{
			ID:        e.ID,
			Mode:      e.Mode,
			Score:     e.Score,
			HighScore: e.HighScore,
			CreatedAt: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseMode(w, chi.URLParam(r, "mode"))
	if !ok {
		return
	}
	high, err := s.board.HighScore(mode)
	if err != nil {
		s.logger.Error("cannot query high score", "mode", mode, "error", err)
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	writeJSON(w, http.StatusOK, bestRes{Mode: mode, HighScore: high})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.board.AllModesStats()
	if err != nil {
		s.logger.Error("cannot query stats", "error", err)
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	res := make(map[string]statsJSON, len(stats))
	for mode, st := range stats {
		res[mode] = statsJSON{
			Runs:       st.RunsCount,
			HighScore:  st.HighScore,
			AvgScore:   st.AvgScore,
			TotalScore: st.TotalScore,
			LastPlayed: st.LastPlayed,
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// parseMode accepts a preset name; empty means normal.
func parseMode(w http.ResponseWriter, raw string) (string, bool) {
	preset, err := config.ParsePreset(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return "", false
	}
	return preset.Mode(), true
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		writeError(w, http.StatusBadRequest, "bad_limit")
		return 0, false
	}
	return min(n, maxLimit), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
