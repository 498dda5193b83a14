package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gridmaze/internal/maze"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

// statsSource is implemented by games that keep maze session counters.
type statsSource interface {
	Stats() maze.Stats
}

// runTracker follows the current run of one player and writes its summary and
// high score when the run ends. It is shared by pointer between copies of the
// Bubble Tea model, so the SSH server can still close the run on disconnect.
type runTracker struct {
	mu      sync.Mutex
	store   *storage.Store
	logger  *log.Logger
	player  string
	gameID  string
	started time.Time
	stats   maze.Stats
	active  bool
}

func newRunTracker(store *storage.Store, logger *log.Logger, player string) *runTracker {
	return &runTracker{store: store, logger: logger, player: player}
}

// begin starts tracking a new run of gameID.
func (t *runTracker) begin(gameID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gameID = gameID
	t.started = time.Now()
	t.stats = maze.Stats{}
	t.active = true
}

func (t *runTracker) update(stats maze.Stats) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		t.stats = stats
	}
}

// finish records the run with reason. Runs without a single win or loss are
// dropped. The returned ID is uuid.Nil when nothing was written.
func (t *runTracker) finish(reason string) uuid.UUID {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return uuid.Nil
	}
	t.active = false

	if t.store == nil || (t.stats.Wins == 0 && t.stats.Losses == 0) {
		return uuid.Nil
	}

	if t.stats.Wins > 0 {
		if _, err := t.store.SaveScore(t.gameID, t.stats.Wins); err != nil {
			t.logger.Warn("cannot save score", "game", t.gameID, "error", err)
		}
	}

	id, err := t.store.SaveRun(storage.Run{
		GameID:     t.gameID,
		Player:     t.player,
		Wins:       t.stats.Wins,
		Losses:     t.stats.Losses,
		BestStreak: t.stats.BestStreak,
		EndReason:  reason,
		Duration:   time.Since(t.started),
	})
	if err != nil {
		t.logger.Warn("cannot save run", "game", t.gameID, "error", err)
		return uuid.Nil
	}
	t.logger.Info("run recorded", "run", id, "game", t.gameID, "player", t.player,
		"wins", t.stats.Wins, "losses", t.stats.Losses, "reason", reason)
	return id
}
