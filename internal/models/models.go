package models

import "time"

// TrackRef identifies a track on the source side before matching: title plus
// the first listed artist only. It carries no service identity; duplicates in
// a playlist are preserved in order.
type TrackRef struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// MatchedTrack is an opaque handle to a track in the target catalog, selected
// as the best match for a TrackRef. Held only while building the output list.
type MatchedTrack struct {
	ID     string `json:"id"` // Plex rating key
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
}

// Playlist represents a playlist on either side of a sync.
type Playlist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TrackCount int    `json:"track_count"`
}

// SyncRun records one completed sync for the history log.
type SyncRun struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	PlaylistName  string    `json:"playlist_name"`
	TotalTracks   int       `json:"total_tracks"`
	MatchedTracks int       `json:"matched_tracks"`
	CreatedAt     time.Time `json:"created_at"`
}
