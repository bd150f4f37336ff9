package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cookie050/plex-playlist-sync/internal/models"
)

// HistoryRepository persists completed sync runs in sqlite. It satisfies
// tasks.HistoryRecorder.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a HistoryRepository over an open database.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Migrate creates the sync_runs table if it does not exist.
func (r *HistoryRepository) Migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS sync_runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		playlist_name TEXT NOT NULL,
		total_tracks INTEGER NOT NULL,
		matched_tracks INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create sync_runs table: %w", err)
	}
	return nil
}

// Record inserts a completed sync run.
func (r *HistoryRepository) Record(run models.SyncRun) error {
	query := `
	INSERT INTO sync_runs (id, source, playlist_name, total_tracks, matched_tracks, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.Exec(query, run.ID, run.Source, run.PlaylistName, run.TotalTracks, run.MatchedTracks, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}
	return nil
}

// List returns the most recent sync runs, newest first, capped at limit.
func (r *HistoryRepository) List(limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT id, source, playlist_name, total_tracks, matched_tracks, created_at
	FROM sync_runs
	ORDER BY created_at DESC
	LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []models.SyncRun
	for rows.Next() {
		var run models.SyncRun
		if err := rows.Scan(&run.ID, &run.Source, &run.PlaylistName, &run.TotalTracks, &run.MatchedTracks, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync runs: %w", err)
	}

	return runs, nil
}
