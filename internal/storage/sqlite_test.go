package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.gridmaze/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".gridmaze", "scores.db")); err != nil {
		t.Errorf("expected database under home: %v", err)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{3, 12, 7, 12, 1} {
		if _, err := store.SaveScore("maze", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("maze_fixed", 40); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	entries, err := store.TopScores("maze", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	expected := []int{12, 12, 7}
	if len(entries) != len(expected) {
		t.Fatalf("got %d entries, expected %d", len(entries), len(expected))
	}
	for i, want := range expected {
		if entries[i].Score != want {
			t.Errorf("entries[%d].Score = %d, expected %d", i, entries[i].Score, want)
		}
		if entries[i].GameID != "maze" {
			t.Errorf("entries[%d].GameID = %q", i, entries[i].GameID)
		}
	}
	if entries[0].ID > entries[1].ID {
		t.Error("equal scores should be ordered oldest first")
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("maze")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty table = %d, expected 0", high)
	}

	store.SaveScore("maze", 4)
	store.SaveScore("maze", 9)

	high, err = store.HighScore("maze")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 9 {
		t.Errorf("HighScore() = %d, expected 9", high)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	first, err := store.SaveRun(Run{
		GameID:     "maze",
		Player:     "alice",
		Wins:       5,
		Losses:     2,
		BestStreak: 3,
		EndReason:  EndBoardCleared,
		Duration:   95 * time.Second,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if first == uuid.Nil {
		t.Fatal("SaveRun() should assign a run id")
	}

	fixedID := uuid.New()
	second, err := store.SaveRun(Run{RunID: fixedID, GameID: "maze_fixed", Wins: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if second != fixedID {
		t.Errorf("SaveRun() = %s, expected caller id %s", second, fixedID)
	}

	got, err := store.RunByID(first)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.Player != "alice" || got.Wins != 5 || got.Losses != 2 || got.BestStreak != 3 {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.Duration != 95*time.Second || got.EndReason != EndBoardCleared {
		t.Errorf("RunByID() duration/reason = %s/%s", got.Duration, got.EndReason)
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 2 || all[0].RunID != fixedID {
		t.Errorf("RecentRuns(all) should list newest first, got %d runs", len(all))
	}
	if all[0].EndReason != EndQuit {
		t.Errorf("default end reason = %q, expected %q", all[0].EndReason, EndQuit)
	}

	mazeRuns, err := store.RecentRuns("maze", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(mazeRuns) != 1 || mazeRuns[0].RunID != first {
		t.Errorf("RecentRuns(maze) = %+v", mazeRuns)
	}
}

func TestStoreRunByIDNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RunByID(uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RunByID() error = %v, expected ErrNotFound", err)
	}
}

func TestStoreClearAndStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("maze", 2)
	store.SaveScore("maze", 6)
	store.SaveScore("maze_fixed", 1)
	store.SaveRun(Run{GameID: "maze", Wins: 6})

	stats, err := store.AllGamesStats()
	if err != nil {
		t.Fatalf("AllGamesStats() failed: %v", err)
	}
	maze := stats["maze"]
	if maze.GamesCount != 2 || maze.HighScore != 6 || maze.AvgScore != 4 {
		t.Errorf("stats[maze] = %+v", maze)
	}

	if err := store.ClearScores("maze"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if high, _ := store.HighScore("maze"); high != 0 {
		t.Errorf("HighScore() after clear = %d", high)
	}
	if runs, _ := store.RecentRuns("maze", 5); len(runs) != 0 {
		t.Errorf("runs after clear = %d", len(runs))
	}
	if high, _ := store.HighScore("maze_fixed"); high != 1 {
		t.Error("other games should be untouched")
	}
}
