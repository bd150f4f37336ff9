// Capability interfaces for source and target services.
package services

import (
	"context"

	"github.com/cookie050/plex-playlist-sync/internal/models"
)

// SourceReader reads playlists and tracks from a source music service
// (Spotify or Deezer).
type SourceReader interface {
	// Name returns the name of the service (e.g., "Spotify", "Deezer")
	Name() string

	// Authenticate performs OAuth or API key authentication with the service.
	// Returns an error wrapping shared.ErrAuthFailed if credentials are invalid.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// ListPlaylists retrieves all playlists for the configured user, in the
	// order the service returns them.
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)

	// ReadTracks retrieves every track of the given playlist as TrackRefs,
	// following pagination until the service reports no further page. Only
	// the first listed artist of each track is kept.
	ReadTracks(ctx context.Context, playlistID string) ([]models.TrackRef, error)
}

// TargetCatalog searches the target server's music library.
type TargetCatalog interface {
	// SearchTracks queries the catalog for music tracks matching query,
	// returning at most limit results in the catalog's ranking order.
	// A malformed query surfaces as shared.ErrBadSearchRequest.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.MatchedTrack, error)
}

// TargetPlaylistStore manages playlists on the target server.
type TargetPlaylistStore interface {
	// FindPlaylist fetches an existing playlist by exact name. Returns an
	// error wrapping shared.ErrPlaylistNotFound if no playlist has that name.
	FindPlaylist(ctx context.Context, name string) (*models.Playlist, error)

	// DeletePlaylist removes the playlist with the given id.
	DeletePlaylist(ctx context.Context, id string) error

	// CreatePlaylist creates a new playlist with the given name containing
	// the tracks identified by trackIDs, order preserved. trackIDs may be
	// empty; an empty playlist is still created.
	CreatePlaylist(ctx context.Context, name string, trackIDs []string) (*models.Playlist, error)
}
