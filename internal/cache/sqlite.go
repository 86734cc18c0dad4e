package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kdimtricp/videodigest/internal/pipeline"
)

// SQLiteStore persists results across process restarts. The key semantics
// are identical to MemoryStore: weak identity, no eviction, last writer
// wins. Store errors are logged rather than surfaced, since a broken
// cache must never fail a pipeline run.
type SQLiteStore struct {
	conn   *sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS video_analysis_cache (
		filename TEXT NOT NULL,
		size INTEGER NOT NULL,
		result TEXT NOT NULL,
		PRIMARY KEY (filename, size)
	);
	`
	if _, err := conn.Exec(query); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &SQLiteStore{conn: conn, logger: logger}, nil
}

func (s *SQLiteStore) Get(key pipeline.CacheKey) (pipeline.VideoAnalysisResult, bool) {
	var result pipeline.VideoAnalysisResult

	var encoded string
	err := s.conn.QueryRow(
		`SELECT result FROM video_analysis_cache WHERE filename = ? AND size = ?`,
		key.Filename, key.Size,
	).Scan(&encoded)
	if err == sql.ErrNoRows {
		return result, false
	}
	if err != nil {
		s.logger.Warn("cache read failed", "filename", key.Filename, "error", err)
		return result, false
	}

	if err := json.Unmarshal([]byte(encoded), &result); err != nil {
		s.logger.Warn("cache entry corrupt", "filename", key.Filename, "error", err)
		return result, false
	}

	return result, true
}

func (s *SQLiteStore) Put(key pipeline.CacheKey, result pipeline.VideoAnalysisResult) {
	encoded, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("cache encode failed", "filename", key.Filename, "error", err)
		return
	}

	_, err = s.conn.Exec(
		`INSERT OR REPLACE INTO video_analysis_cache (filename, size, result) VALUES (?, ?, ?)`,
		key.Filename, key.Size, string(encoded),
	)
	if err != nil {
		s.logger.Warn("cache write failed", "filename", key.Filename, "error", err)
	}
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
