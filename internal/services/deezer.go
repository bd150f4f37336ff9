// Deezer API implementation of [SourceReader]
//
// Uses the public Deezer API (https://developers.deezer.com/api), which needs
// no credentials for reading public playlists.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cookie050/plex-playlist-sync/internal/models"
	"github.com/cookie050/plex-playlist-sync/internal/shared"
)

const deezerBaseURL = "https://api.deezer.com"

// DeezerArtist represents an artist in Deezer responses.
type DeezerArtist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DeezerTrack represents a track in Deezer responses.
type DeezerTrack struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Duration int          `json:"duration"`
	Artist   DeezerArtist `json:"artist"`
}

// DeezerPlaylist represents a playlist in Deezer list responses.
type DeezerPlaylist struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	NbTracks int    `json:"nb_tracks"`
}

// deezerError is the error envelope Deezer returns with HTTP 200.
type deezerError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type deezerPlaylistPage struct {
	Data  []DeezerPlaylist `json:"data"`
	Total int              `json:"total"`
	Next  string           `json:"next"`
	Error *deezerError     `json:"error"`
}

type deezerTrackPage struct {
	Data  []DeezerTrack `json:"data"`
	Total int           `json:"total"`
	Next  string        `json:"next"`
	Error *deezerError  `json:"error"`
}

// DeezerService implements [SourceReader] for the public Deezer API.
type DeezerService struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

// NewDeezerService creates a new Deezer service for the given user id.
// baseURL defaults to the public API when empty.
func NewDeezerService(baseURL, userID string) *DeezerService {
	if baseURL == "" {
		baseURL = deezerBaseURL
	}

	return &DeezerService{
		baseURL:    baseURL,
		userID:     userID,
		httpClient: http.DefaultClient,
	}
}

func (d *DeezerService) Name() string {
	return "Deezer"
}

// Authenticate is a no-op for the public Deezer API beyond checking that a
// user id is configured.
func (d *DeezerService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if userID, ok := credentials["user_id"]; ok && userID != "" {
		d.userID = userID
	}
	if d.userID == "" {
		return fmt.Errorf("%w: missing deezer user_id", shared.ErrMissingCredentials)
	}
	return nil
}

// doRequest performs a GET against an absolute Deezer URL. Deezer reports
// errors in a JSON envelope with HTTP 200, so the envelope is checked by the
// page decoders, not here.
func (d *DeezerService) doRequest(ctx context.Context, fullURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: deezer API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (d *DeezerService) checkError(e *deezerError) error {
	if e == nil {
		return nil
	}
	// OAuthException covers invalid tokens and permission failures
	if e.Type == "OAuthException" {
		return fmt.Errorf("%w: deezer: %s", shared.ErrAuthFailed, e.Message)
	}
	return fmt.Errorf("%w: deezer error %d: %s", shared.ErrAPIRequest, e.Code, e.Message)
}

// SourceReader interface implementation

// ListPlaylists retrieves all playlists of the configured user, following the
// absolute Next URL until Deezer reports no further page.
func (d *DeezerService) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var allPlaylists []models.Playlist
	next := fmt.Sprintf("%s/user/%s/playlists", d.baseURL, d.userID)

	for next != "" {
		var page deezerPlaylistPage
		if err := d.doRequest(ctx, next, &page); err != nil {
			return nil, err
		}
		if err := d.checkError(page.Error); err != nil {
			return nil, err
		}

		for _, dp := range page.Data {
			allPlaylists = append(allPlaylists, models.Playlist{
				ID:         fmt.Sprintf("%d", dp.ID),
				Name:       dp.Title,
				TrackCount: dp.NbTracks,
			})
		}

		next = page.Next
	}

	return allPlaylists, nil
}

// ReadTracks retrieves every track of the playlist, following the absolute
// Next URL until Deezer reports no further page.
func (d *DeezerService) ReadTracks(ctx context.Context, playlistID string) ([]models.TrackRef, error) {
	var refs []models.TrackRef
	next := fmt.Sprintf("%s/playlist/%s/tracks", d.baseURL, playlistID)

	for next != "" {
		var page deezerTrackPage
		if err := d.doRequest(ctx, next, &page); err != nil {
			return nil, err
		}
		if err := d.checkError(page.Error); err != nil {
			return nil, err
		}

		for _, dt := range page.Data {
			refs = append(refs, models.TrackRef{
				Title:  dt.Title,
				Artist: dt.Artist.Name,
			})
		}

		next = page.Next
	}

	return refs, nil
}
