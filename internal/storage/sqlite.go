// Package storage provides SQLite-based persistence for solved levels.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoSolution is returned when a level has no stored solution.
var ErrNoSolution = errors.New("storage: no solution")

// Store manages the SQLite database connection for solution persistence.
type Store struct {
	db *sql.DB
}

// Solution is one stored move log that completed a level.
type Solution struct {
	ID        int64
	LevelID   string
	Moves     string
	MoveCount int
	CreatedAt time.Time
}

// LevelStats summarizes the solutions stored for one level.
type LevelStats struct {
	LevelID    string
	Solves     int
	BestMoves  int
	LastSolved time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS solutions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			moves TEXT NOT NULL,
			move_count INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solutions_level_id ON solutions(level_id);
		CREATE INDEX IF NOT EXISTS idx_solutions_best ON solutions(level_id, move_count ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSolution records a move log that solved the given level.
// Returns the ID of the inserted record.
func (s *Store) SaveSolution(levelID, moves string) (int64, error) {
	if levelID == "" {
		return 0, fmt.Errorf("storage: empty level id")
	}

	result, err := s.db.Exec(
		"INSERT INTO solutions (level_id, moves, move_count) VALUES (?, ?, ?)",
		levelID, moves, len(moves),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solution: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestSolution returns the shortest stored solution for the level.
// Ties go to the oldest record.
func (s *Store) BestSolution(levelID string) (Solution, error) {
	var sol Solution
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, level_id, moves, move_count, created_at
		 FROM solutions
		 WHERE level_id = ?
		 ORDER BY move_count ASC, id ASC
		 LIMIT 1`,
		levelID,
	).Scan(&sol.ID, &sol.LevelID, &sol.Moves, &sol.MoveCount, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Solution{}, fmt.Errorf("%w for level %s", ErrNoSolution, levelID)
	}
	if err != nil {
		return Solution{}, fmt.Errorf("storage: cannot query best solution: %w", err)
	}

	sol.CreatedAt = parseTime(createdAt)
	return sol, nil
}

// Solutions retrieves up to limit solutions for the level, shortest first.
// An empty levelID returns solutions of every level.
func (s *Store) Solutions(levelID string, limit int) ([]Solution, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, level_id, moves, move_count, created_at
		 FROM solutions
		 WHERE level_id = ?
		 ORDER BY move_count ASC, id ASC
		 LIMIT ?`
	args := []any{levelID, limit}
	if levelID == "" {
		query = `SELECT id, level_id, moves, move_count, created_at
		 FROM solutions
		 ORDER BY level_id ASC, move_count ASC, id ASC
		 LIMIT ?`
		args = []any{limit}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solutions: %w", err)
	}
	defer rows.Close()

	var solutions []Solution
	for rows.Next() {
		var sol Solution
		var createdAt any
		if err := rows.Scan(&sol.ID, &sol.LevelID, &sol.Moves, &sol.MoveCount, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sol.CreatedAt = parseTime(createdAt)
		solutions = append(solutions, sol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return solutions, nil
}

// SolvedLevels returns stats for every level with at least one solution,
// ordered by level ID.
func (s *Store) SolvedLevels() ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(move_count), MAX(created_at)
		 FROM solutions
		 GROUP BY level_id
		 ORDER BY level_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solved levels: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var st LevelStats
		var lastSolved any
		if err := rows.Scan(&st.LevelID, &st.Solves, &st.BestMoves, &lastSolved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastSolved = parseTime(lastSolved)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// IsSolved reports whether the level has a stored solution.
func (s *Store) IsSolved(levelID string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM solutions WHERE level_id = ?", levelID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot count solutions: %w", err)
	}
	return n > 0, nil
}

// ClearSolutions deletes all solutions for the given level.
func (s *Store) ClearSolutions(levelID string) error {
	_, err := s.db.Exec("DELETE FROM solutions WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear solutions: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
