package tasks

import (
	"fmt"

	"github.com/cookie050/plex-playlist-sync/internal/models"
)

// ProgressUpdate represents a progress event during a sync run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSource Phase = iota
	SearchTracks
	ReplacePlaylist
	Done
)

func (p Phase) String() string {
	switch p {
	case FetchSource:
		return "fetch_source"
	case SearchTracks:
		return "search_tracks"
	case ReplacePlaylist:
		return "replace_playlist"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

func fetchSourceUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reading playlist from %s...", name),
	}
}

func foundPlaylistUpdate(playlist *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found playlist '%s' (%d tracks)", playlist.Name, playlist.TrackCount),
		Data:    playlist,
	}
}

func searchTrackUpdate(step, total int, ref *models.TrackRef) ProgressUpdate {
	update := ProgressUpdate{
		Phase: SearchTracks,
		Step:  step,
		Total: total,
		Data:  ref,
	}
	if ref == nil {
		update.Message = fmt.Sprintf("Matching %d tracks against Plex...", total)
	} else {
		update.Message = fmt.Sprintf("[%d/%d] %s - %s", step, total, ref.Artist, ref.Title)
	}
	return update
}

func replacePlaylistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReplacePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Replacing playlist '%s'...", name),
	}
}

func doneUpdate(result *SyncRunResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Synced %d/%d tracks", result.MatchedCount, result.TotalTracks),
		Data:    result,
	}
}
