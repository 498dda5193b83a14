package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// End reasons recorded with a run.
const (
	EndQuit         = "quit"
	EndBoardCleared = "board_cleared"
	EndDisconnect   = "disconnect"
	EndRestart      = "restart"
)

// Run is the summary of one play session.
type Run struct {
	ID         int64
	RunID      uuid.UUID
	GameID     string
	Player     string // SSH user or empty for local play
	Wins       int
	Losses     int
	BestStreak int
	EndReason  string
	Duration   time.Duration
	CreatedAt  time.Time
}

// SaveRun records a finished run. A zero RunID is replaced by a fresh UUID; the
// stored ID is returned.
func (s *Store) SaveRun(r Run) (uuid.UUID, error) {
	if r.RunID == uuid.Nil {
		r.RunID = uuid.New()
	}
	if r.EndReason == "" {
		r.EndReason = EndQuit
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, game_id, player, wins, losses, best_streak, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID.String(),
		r.GameID,
		r.Player,
		r.Wins,
		r.Losses,
		r.BestStreak,
		r.EndReason,
		int64(r.Duration/time.Second),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.RunID, nil
}

const runColumns = `id, run_id, game_id, player, wins, losses, best_streak, end_reason, duration_secs, created_at`

// RunByID looks up a run by its UUID. It returns ErrNotFound when absent.
func (s *Store) RunByID(id uuid.UUID) (Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id.String())
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("storage: run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// RecentRuns returns the latest runs of a game, newest first. An empty gameID
// returns runs of every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r         Run
		runID     string
		secs      int64
		createdAt any
	)
	err := sc.Scan(
		&r.ID,
		&runID,
		&r.GameID,
		&r.Player,
		&r.Wins,
		&r.Losses,
		&r.BestStreak,
		&r.EndReason,
		&secs,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}

	r.RunID, err = uuid.Parse(runID)
	if err != nil {
		return Run{}, fmt.Errorf("bad run id %q: %w", runID, err)
	}
	r.Duration = time.Duration(secs) * time.Second
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}
