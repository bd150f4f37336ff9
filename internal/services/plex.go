// Plex Media Server implementations of [TargetCatalog] and [TargetPlaylistStore]
//
// Talks directly to the server's HTTP API: token auth via the X-Plex-Token
// query parameter, XML MediaContainer responses throughout.
package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cookie050/plex-playlist-sync/internal/models"
	"github.com/cookie050/plex-playlist-sync/internal/shared"
)

// Plex encodes media kinds as numeric type codes; 10 is a music track.
const plexTrackType = "10"

// PlexTrack represents a track in Plex search results. The artist arrives as
// grandparentTitle (artist > album > track hierarchy) and may be empty when
// the library item has no artist metadata.
type PlexTrack struct {
	RatingKey string `xml:"ratingKey,attr"`
	Title     string `xml:"title,attr"`
	Artist    string `xml:"grandparentTitle,attr"`
	Album     string `xml:"parentTitle,attr"`
	Duration  int    `xml:"duration,attr"`
}

// PlexPlaylist represents a playlist in Plex responses.
type PlexPlaylist struct {
	RatingKey string `xml:"ratingKey,attr"`
	Title     string `xml:"title,attr"`
	LeafCount int    `xml:"leafCount,attr"`
}

// plexContainer is the MediaContainer envelope wrapping every Plex response.
type plexContainer struct {
	XMLName           xml.Name       `xml:"MediaContainer"`
	MachineIdentifier string         `xml:"machineIdentifier,attr"`
	Tracks            []PlexTrack    `xml:"Track"`
	Playlists         []PlexPlaylist `xml:"Playlist"`
}

// PlexService implements [TargetCatalog] and [TargetPlaylistStore] against a
// Plex Media Server.
type PlexService struct {
	baseURL    string
	token      string
	sectionID  int
	machineID  string
	httpClient *http.Client
}

// NewPlexService creates a new Plex service for the given server URL, token,
// and music library section id.
func NewPlexService(baseURL, token string, sectionID int) *PlexService {
	return &PlexService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		sectionID:  sectionID,
		httpClient: http.DefaultClient,
	}
}

func (p *PlexService) Name() string {
	return "Plex"
}

// doRequest performs a request against the Plex server and decodes the XML
// MediaContainer response into result when non-nil.
func (p *PlexService) doRequest(ctx context.Context, method, path string, params url.Values, result *plexContainer) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("X-Plex-Token", p.token)

	apiURL := p.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/xml")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: plex status %d", shared.ErrBadSearchRequest, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: plex status %d", shared.ErrAuthFailed, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: plex status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := xml.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// MachineIdentifier returns the server's machine identifier, fetching it from
// the server info endpoint on first use. Playlist creation URIs embed it.
func (p *PlexService) MachineIdentifier(ctx context.Context) (string, error) {
	if p.machineID != "" {
		return p.machineID, nil
	}

	var container plexContainer
	if err := p.doRequest(ctx, http.MethodGet, "/", nil, &container); err != nil {
		return "", err
	}
	if container.MachineIdentifier == "" {
		return "", fmt.Errorf("%w: server info has no machine identifier", shared.ErrAPIRequest)
	}

	p.machineID = container.MachineIdentifier
	return p.machineID, nil
}

// TargetCatalog interface implementation

// SearchTracks queries the music section for tracks matching query. Results
// come back in Plex's ranking order, capped at limit.
func (p *PlexService) SearchTracks(ctx context.Context, query string, limit int) ([]models.MatchedTrack, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", plexTrackType)
	params.Set("limit", fmt.Sprintf("%d", limit))

	path := fmt.Sprintf("/library/sections/%d/search", p.sectionID)

	var container plexContainer
	if err := p.doRequest(ctx, http.MethodGet, path, params, &container); err != nil {
		return nil, err
	}

	tracks := make([]models.MatchedTrack, 0, len(container.Tracks))
	for _, t := range container.Tracks {
		tracks = append(tracks, models.MatchedTrack{
			ID:     t.RatingKey,
			Title:  t.Title,
			Artist: t.Artist,
			Album:  t.Album,
		})
	}

	return tracks, nil
}

// TargetPlaylistStore interface implementation

// FindPlaylist fetches an existing playlist by exact name. Plex has no
// server-side title filter for playlists, so the full list is scanned.
func (p *PlexService) FindPlaylist(ctx context.Context, name string) (*models.Playlist, error) {
	var container plexContainer
	if err := p.doRequest(ctx, http.MethodGet, "/playlists", nil, &container); err != nil {
		return nil, err
	}

	for _, pl := range container.Playlists {
		if pl.Title == name {
			return &models.Playlist{
				ID:         pl.RatingKey,
				Name:       pl.Title,
				TrackCount: pl.LeafCount,
			}, nil
		}
	}

	return nil, fmt.Errorf("%w: no playlist named %q", shared.ErrPlaylistNotFound, name)
}

// DeletePlaylist removes the playlist with the given rating key.
func (p *PlexService) DeletePlaylist(ctx context.Context, id string) error {
	return p.doRequest(ctx, http.MethodDelete, "/playlists/"+id, nil, nil)
}

// CreatePlaylist creates an audio playlist containing the tracks identified by
// trackIDs (library rating keys), order preserved. An empty trackIDs slice
// creates an empty playlist.
func (p *PlexService) CreatePlaylist(ctx context.Context, name string, trackIDs []string) (*models.Playlist, error) {
	machineID, err := p.MachineIdentifier(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("type", "audio")
	params.Set("smart", "0")
	params.Set("title", name)
	params.Set("uri", fmt.Sprintf("server://%s/com.plexapp.plugins.library/library/metadata/%s",
		machineID, strings.Join(trackIDs, ",")))

	var container plexContainer
	if err := p.doRequest(ctx, http.MethodPost, "/playlists", params, &container); err != nil {
		return nil, err
	}

	if len(container.Playlists) == 0 {
		return nil, fmt.Errorf("%w: no playlist returned from creation", shared.ErrAPIRequest)
	}

	created := container.Playlists[0]
	return &models.Playlist{
		ID:         created.RatingKey,
		Name:       created.Title,
		TrackCount: created.LeafCount,
	}, nil
}
