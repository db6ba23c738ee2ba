// internal/history/store.go
//
// Queries over the history DB.
// Responsibilities:
//   - Users: create (unique, case-insensitive username), lookup by name or id.
//   - Runs: one row per module, strike counter, single solve timestamp.
//   - Aggregates: per-user stats and the fastest-solve leaderboard.

package history

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("history: not found")
	ErrUsernameTaken = errors.New("history: username taken")
)

// User is a registered defuser.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Run is one module instance as recorded at creation.
type Run struct {
	ID        string
	UserID    string // empty for guests
	Stages    int
	StartedAt time.Time
}

// Stats aggregates a user's runs.
type Stats struct {
	Played  int   `json:"played"`
	Solved  int   `json:"solved"`
	Strikes int   `json:"strikes"`
	BestMs  int64 `json:"bestMs,omitempty"`
}

// LBRow is one leaderboard entry.
type LBRow struct {
	RunID     string `json:"runId"`
	Username  string `json:"username,omitempty"`
	Stages    int    `json:"stages"`
	Strikes   int    `json:"strikes"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Store wraps the history DB opened by Open.
type Store struct{ db *sql.DB }

// NewStore returns a Store over db.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// CreateUser inserts u. A taken username yields ErrUsernameTaken.
func (s *Store) CreateUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return ErrUsernameTaken
	}
	return err
}

// UserByUsername looks a user up by name, or returns ErrNotFound.
func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username=?`, username))
}

// UserByID looks a user up by id, or returns ErrNotFound.
func (s *Store) UserByID(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id=?`, id))
}

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// StartRun records a freshly created module.
func (s *Store) StartRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO module_runs (id, user_id, stages, started_at) VALUES (?,?,?,?)`,
		r.ID, nullable(r.UserID), r.Stages, r.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// RecordStrike increments the strike counter of a run.
func (s *Store) RecordStrike(ctx context.Context, runID string) error {
	return s.expectOne(s.db.ExecContext(ctx,
		`UPDATE module_runs SET strikes = strikes + 1 WHERE id=?`, runID))
}

// RecordSolve marks a run solved. A run solves at most once.
func (s *Store) RecordSolve(ctx context.Context, runID string, at time.Time, elapsed time.Duration) error {
	return s.expectOne(s.db.ExecContext(ctx,
		`UPDATE module_runs SET solved_at=?, elapsed_ms=? WHERE id=? AND solved_at IS NULL`,
		at.UTC().Format(time.RFC3339Nano), elapsed.Milliseconds(), runID))
}

// Stats aggregates every run owned by userID.
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	var st Stats
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COUNT(solved_at),
               COALESCE(SUM(strikes), 0),
               MIN(elapsed_ms)
        FROM module_runs WHERE user_id=?`, userID,
	).Scan(&st.Played, &st.Solved, &st.Strikes, &best)
	if err != nil {
		return Stats{}, err
	}
	st.BestMs = best.Int64
	return st, nil
}

// Leaderboard page sizes.
const (
	DefaultLeaderboardLimit = 20
	MaxLeaderboardLimit     = 100
)

// ClampLimit maps a requested page size into 1..MaxLeaderboardLimit,
// using DefaultLeaderboardLimit for non-positive values.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLeaderboardLimit
	case limit > MaxLeaderboardLimit:
		return MaxLeaderboardLimit
	}
	return limit
}

// Leaderboard lists the fastest solves, fewer strikes breaking ties.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LBRow, error) {
	limit = ClampLimit(limit)
	rows, err := s.db.QueryContext(ctx, `
        SELECT r.id, COALESCE(u.username, ''), r.stages, r.strikes, r.elapsed_ms
        FROM module_runs r LEFT JOIN users u ON u.id = r.user_id
        WHERE r.solved_at IS NOT NULL
        ORDER BY r.elapsed_ms ASC, r.strikes ASC, r.solved_at ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.RunID, &r.Username, &r.Stages, &r.Strikes, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// expectOne maps "no rows affected" to ErrNotFound.
func (s *Store) expectOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullable stores empty ids as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
