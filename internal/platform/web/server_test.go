package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/pipe-runner/internal/core"
	"github.com/vovakirdan/pipe-runner/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ts := httptest.NewServer(New(store, nil).Router())
	t.Cleanup(ts.Close)
	return ts, store
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if ct := res.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if v != nil {
		if err := json.NewDecoder(res.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res.StatusCode
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]bool
	if code := getJSON(t, ts.URL+"/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !body["ok"] {
		t.Errorf("body = %v", body)
	}
}

func TestTopScores(t *testing.T) {
	ts, store := newTestServer(t)
	for _, n := range []uint32{5, 11, 2} {
		store.SaveScores("normal", core.ScoreInfo{Current: n, High: 11})
	}
	store.SaveScores("hard", core.ScoreInfo{Current: 30, High: 30})

	tests := []struct {
		name   string
		query  string
		scores []uint32
	}{
		{"default mode", "", []uint32{11, 5, 2}},
		{"limited", "?mode=normal&limit=2", []uint32{11, 5}},
		{"other mode", "?mode=hard", []uint32{30}},
		{"empty mode", "?mode=easy", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var res runsRes
			if code := getJSON(t, ts.URL+"/scores"+tc.query, &res); code != http.StatusOK {
				t.Fatalf("status = %d", code)
			}
			if len(res.Runs) != len(tc.scores) {
				t.Fatalf("runs = %+v, expected scores %v", res.Runs, tc.scores)
			}
			for i, s := range tc.scores {
				if res.Runs[i].Score != s {
					t.Errorf("run %d score = %d, expected %d", i, res.Runs[i].Score, s)
				}
			}
		})
	}
}

func TestBadRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		path string
		code int
	}{
		{"/scores?mode=insane", http.StatusBadRequest},
		{"/scores?limit=-1", http.StatusBadRequest},
		{"/scores?limit=abc", http.StatusBadRequest},
		{"/scores/insane/best", http.StatusBadRequest},
		{"/nope", http.StatusNotFound},
	}

	for _, tc := range tests {
		var body map[string]string
		if code := getJSON(t, ts.URL+tc.path, &body); code != tc.code {
			t.Errorf("GET %s = %d, expected %d", tc.path, code, tc.code)
		}
		if body["error"] == "" {
			t.Errorf("GET %s: expected an error code, got %v", tc.path, body)
		}
	}
}

func TestBestAndRecent(t *testing.T) {
	ts, store := newTestServer(t)
	store.SaveScores("hard", core.ScoreInfo{Current: 9, High: 9})
	store.SaveScores("hard", core.ScoreInfo{Current: 4, High: 9})

	var best bestRes
	getJSON(t, ts.URL+"/scores/hard/best", &best)
	if best.Mode != "hard" || best.HighScore != 9 {
		t.Errorf("best = %+v", best)
	}

	var recent runsRes
	getJSON(t, ts.URL+"/scores/hard/recent?limit=1", &recent)
	if len(recent.Runs) != 1 || recent.Runs[0].Score != 4 {
		t.Errorf("recent = %+v, expected the latest run", recent)
	}
}

func TestStats(t *testing.T) {
	ts, store := newTestServer(t)
	store.SaveScores("normal", core.ScoreInfo{Current: 4, High: 4})
	store.SaveScores("normal", core.ScoreInfo{Current: 6, High: 6})

	var stats map[string]statsJSON
	if code := getJSON(t, ts.URL+"/stats", &stats); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if s := stats["normal"]; s.Runs != 2 || s.HighScore != 6 || s.AvgScore != 5 {
		t.Errorf("stats = %+v", stats)
	}
}

type failingBoard struct{}

func (failingBoard) TopScores(string, int) ([]storage.RunEntry, error)  { return nil, errors.New("boom") }
func (failingBoard) RecentRuns(string, int) ([]storage.RunEntry, error) { return nil, errors.New("boom") }
func (failingBoard) HighScore(string) (uint32, error)                   { return 0, errors.New("boom") }
func (failingBoard) AllModesStats() (map[string]*storage.ModeStats, error) {
	return nil, errors.New("boom")
}

func TestStorageErrors(t *testing.T) {
	ts := httptest.NewServer(New(failingBoard{}, nil).Router())
	defer ts.Close()

	for _, path := range []string{"/scores", "/scores/normal/best", "/scores/normal/recent", "/stats"} {
		var body map[string]string
		if code := getJSON(t, ts.URL+path, &body); code != http.StatusInternalServerError {
			t.Errorf("GET %s = %d, expected 500", path, code)
		}
		if body["error"] != "storage_error" {
			t.Errorf("GET %s body = %v", path, body)
		}
	}
}
