// Package storage provides SQLite-based persistence for game results,
// versus matches and replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/replay"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Result is one finished game of one seat.
type Result struct {
	ID         int64
	Mode       string // "solo" or "versus"
	Randomizer string
	Seed       int64
	Score      int
	Lines      int
	Level      int
	Pieces     int
	Frames     int
	MaxCombo   int
	ReplayID   string // empty when no replay was kept
	Stats      engine.Stats
	CreatedAt  time.Time
}

// NewResult fills a Result from an engine that has finished.
func NewResult(mode, randomizer string, e *engine.Engine) Result {
	st := e.Stats()
	return Result{
		Mode:       mode,
		Randomizer: randomizer,
		Seed:       e.Seed(),
		Score:      st.Score,
		Lines:      st.Lines,
		Level:      e.Level(),
		Pieces:     st.Pieces,
		Frames:     st.Frames,
		MaxCombo:   st.MaxCombo,
		Stats:      st,
	}
}

// MatchRecord is the stored outcome of a versus match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Score1    int
	Score2    int
	Winner    int // seat number, 0 for a draw
	EndReason string
	Frames    int64
	CreatedAt time.Time
}

// ReplayInfo lists a stored replay without its input.
type ReplayInfo struct {
	ID         string
	Seed       int64
	Randomizer string
	Seats      int
	Frames     int
	CreatedAt  time.Time
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			randomizer TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			replay_id TEXT,
			stats TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(mode, score DESC);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			winner INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			randomizer TEXT NOT NULL,
			seats INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// SaveResult records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	stats, err := json.Marshal(r.Stats)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode stats: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO results
		 (mode, randomizer, seed, score, lines, level, pieces, frames, max_combo, replay_id, stats)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Mode, r.Randomizer, r.Seed, r.Score, r.Lines, r.Level, r.Pieces, r.Frames, r.MaxCombo,
		nullString(r.ReplayID), string(stats),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, mode, randomizer, seed, score, lines, level, pieces, frames, max_combo, replay_id, stats, created_at`

// TopResults retrieves the best N results for a mode, ordered by score
// descending.
func (s *Store) TopResults(mode string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE mode = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

func scanResult(rows *sql.Rows) (Result, error) {
	var r Result
	var replayID, stats sql.NullString
	var createdAt any
	if err := rows.Scan(&r.ID, &r.Mode, &r.Randomizer, &r.Seed, &r.Score, &r.Lines, &r.Level,
		&r.Pieces, &r.Frames, &r.MaxCombo, &replayID, &stats, &createdAt); err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.ReplayID = replayID.String
	if stats.Valid && stats.String != "" {
		if err := json.Unmarshal([]byte(stats.String), &r.Stats); err != nil {
			return r, fmt.Errorf("storage: cannot decode stats of result %d: %w", r.ID, err)
		}
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// HighScore returns the highest score for a mode.
// Returns 0 if no results exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearResults deletes all results for a mode.
func (s *Store) ClearResults(mode string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// SaveMatch records the outcome of a versus match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m multiplayer.MatchResult) (int64, error) {
	winner := 0
	if m.Winner != multiplayer.NoWinner {
		winner = int(m.Winner) + 1
	}
	res, err := s.db.Exec(
		`INSERT INTO matches (match_id, score1, score2, winner, end_reason, frames)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(m.MatchID), m.Score1, m.Score2, winner, m.Reason.String(), int64(m.Frames),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentMatches retrieves the most recent versus matches.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, score1, score2, winner, end_reason, frames, created_at
		 FROM matches
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var m MatchRecord
		var createdAt any
		if err := rows.Scan(&m.ID, &m.MatchID, &m.Score1, &m.Score2, &m.Winner, &m.EndReason,
			&m.Frames, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		records = append(records, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SaveReplay stores a replay under its ID, replacing any earlier copy.
func (s *Store) SaveReplay(r *replay.Replay) error {
	data, err := replay.Encode(r)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO replays (id, seed, randomizer, seats, frames, data)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Seed, r.Randomizer, len(r.Seats), r.Frames(), data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay %s: %w", r.ID, err)
	}
	return nil
}

// LoadReplay retrieves a replay by ID.
// Returns nil and no error when there is none.
func (s *Store) LoadReplay(id string) (*replay.Replay, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM replays WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay %s: %w", id, err)
	}

	r, err := replay.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return r, nil
}

// RecentReplays lists the most recently stored replays.
func (s *Store) RecentReplays(limit int) ([]ReplayInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, randomizer, seats, frames, created_at
		 FROM replays
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var infos []ReplayInfo
	for rows.Next() {
		var info ReplayInfo
		var createdAt any
		if err := rows.Scan(&info.ID, &info.Seed, &info.Randomizer, &info.Seats, &info.Frames, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalLines int64
	LastPlayed time.Time
}

// GetAllModeStats retrieves statistics for every mode that has results.
func (s *Store) GetAllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), SUM(lines), MAX(created_at)
		 FROM results
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var ms ModeStats
		var lastPlayed any
		if err := rows.Scan(&ms.Mode, &ms.GamesCount, &ms.HighScore, &ms.AvgScore, &ms.TotalLines, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ms.LastPlayed = parseTime(lastPlayed)
		stats[ms.Mode] = &ms
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
