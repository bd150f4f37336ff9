package repositories

import (
	"testing"
	"time"

	"github.com/cookie050/plex-playlist-sync/internal/models"
	"github.com/cookie050/plex-playlist-sync/internal/shared"
)

func setupRepo(t *testing.T) *HistoryRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewHistoryRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return repo
}

func TestHistoryRepository(t *testing.T) {
	t.Run("records and lists runs", func(t *testing.T) {
		repo := setupRepo(t)

		run := models.SyncRun{
			ID:            "run-1",
			Source:        "spotify",
			PlaylistName:  "Road Trip",
			TotalTracks:   10,
			MatchedTracks: 8,
			CreatedAt:     time.Now().UTC(),
		}
		if err := repo.Record(run); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		runs, err := repo.List(10)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("Expected 1 run, got %d", len(runs))
		}
		got := runs[0]
		if got.ID != "run-1" || got.Source != "spotify" || got.PlaylistName != "Road Trip" {
			t.Errorf("Unexpected run: %+v", got)
		}
		if got.TotalTracks != 10 || got.MatchedTracks != 8 {
			t.Errorf("Expected 8/10 tracks, got %d/%d", got.MatchedTracks, got.TotalTracks)
		}
	})

	t.Run("lists newest first with limit", func(t *testing.T) {
		repo := setupRepo(t)

		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		for i, id := range []string{"run-a", "run-b", "run-c"} {
			run := models.SyncRun{
				ID:           id,
				Source:       "deezer",
				PlaylistName: "Mix",
				CreatedAt:    base.Add(time.Duration(i) * time.Hour),
			}
			if err := repo.Record(run); err != nil {
				t.Fatalf("Record failed: %v", err)
			}
		}

		runs, err := repo.List(2)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("Expected 2 runs, got %d", len(runs))
		}
		if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
			t.Errorf("Expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
		}
	})

	t.Run("fills created_at when zero", func(t *testing.T) {
		repo := setupRepo(t)

		if err := repo.Record(models.SyncRun{ID: "run-z", Source: "spotify", PlaylistName: "Mix"}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		runs, err := repo.List(1)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if runs[0].CreatedAt.IsZero() {
			t.Error("Expected created_at to be filled")
		}
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		repo := setupRepo(t)

		run := models.SyncRun{ID: "run-dup", Source: "spotify", PlaylistName: "Mix"}
		if err := repo.Record(run); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if err := repo.Record(run); err == nil {
			t.Error("Expected duplicate insert to fail")
		}
	})

	t.Run("empty list", func(t *testing.T) {
		repo := setupRepo(t)

		runs, err := repo.List(10)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("Expected no runs, got %d", len(runs))
		}
	})
}
