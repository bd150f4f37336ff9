package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cookie050/plex-playlist-sync/internal/shared"
)

func newTestSpotify(t *testing.T, baseURL string) *SpotifyService {
	t.Helper()

	service, err := NewSpotifyService(map[string]string{
		"client_id":     "id",
		"client_secret": "secret",
		"user_id":       "user1",
	})
	if err != nil {
		t.Fatalf("NewSpotifyService failed: %v", err)
	}
	service.baseURL = baseURL
	service.token = nil

	if err := service.Authenticate(context.Background(), map[string]string{"access_token": "token"}); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	// The oauth2 client would dial the real token endpoint; plain HTTP is fine here.
	service.httpClient = http.DefaultClient
	return service
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("requires client_id", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_secret": "secret"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("requires client_secret", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_id": "id"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("authenticate requires token or code", func(t *testing.T) {
		service, err := NewSpotifyService(map[string]string{"client_id": "id", "client_secret": "secret"})
		if err != nil {
			t.Fatalf("NewSpotifyService failed: %v", err)
		}
		if err := service.Authenticate(context.Background(), map[string]string{}); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("requests before authenticate fail", func(t *testing.T) {
		service, err := NewSpotifyService(map[string]string{"client_id": "id", "client_secret": "secret"})
		if err != nil {
			t.Fatalf("NewSpotifyService failed: %v", err)
		}
		if _, err := service.ListPlaylists(context.Background()); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}

func TestSpotifyListPlaylists(t *testing.T) {
	t.Run("follows pagination", func(t *testing.T) {
		var requests []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests = append(requests, r.URL.String())

			if r.URL.Query().Get("offset") == "0" {
				fmt.Fprintf(w, `{
					"items": [{"id": "pl1", "name": "Road Trip", "tracks": {"total": 12}}],
					"total": 2, "limit": 50, "offset": 0,
					"next": "%s/users/user1/playlists?limit=50&offset=50"
				}`, r.Host)
			} else {
				fmt.Fprint(w, `{
					"items": [{"id": "pl2", "name": "Focus", "tracks": {"total": 30}}],
					"total": 2, "limit": 50, "offset": 50,
					"next": null
				}`)
			}
		}))
		defer server.Close()

		service := newTestSpotify(t, server.URL)
		playlists, err := service.ListPlaylists(context.Background())
		if err != nil {
			t.Fatalf("ListPlaylists failed: %v", err)
		}

		if len(requests) != 2 {
			t.Errorf("expected 2 pages fetched, got %d", len(requests))
		}
		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
		if playlists[0].ID != "pl1" || playlists[0].TrackCount != 12 {
			t.Errorf("unexpected first playlist: %+v", playlists[0])
		}
		if playlists[1].Name != "Focus" {
			t.Errorf("unexpected second playlist: %+v", playlists[1])
		}
	})

	t.Run("maps 401 to auth failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		service := newTestSpotify(t, server.URL)
		if _, err := service.ListPlaylists(context.Background()); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})
}

func TestSpotifyReadTracks(t *testing.T) {
	t.Run("keeps first artist only", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"items": [
					{"track": {"id": "t1", "name": "Go", "artists": [{"name": "Common"}, {"name": "John Mayer"}]}},
					{"track": {"id": "t2", "name": "Instrumental", "artists": []}}
				],
				"total": 2, "limit": 100, "offset": 0,
				"next": null
			}`)
		}))
		defer server.Close()

		service := newTestSpotify(t, server.URL)
		refs, err := service.ReadTracks(context.Background(), "pl1")
		if err != nil {
			t.Fatalf("ReadTracks failed: %v", err)
		}

		if len(refs) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(refs))
		}
		if refs[0].Artist != "Common" {
			t.Errorf("expected first artist only, got %q", refs[0].Artist)
		}
		if refs[1].Artist != "" {
			t.Errorf("expected empty artist for artistless track, got %q", refs[1].Artist)
		}
	})

	t.Run("sends bearer token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			fmt.Fprint(w, `{"items": [], "total": 0, "limit": 100, "offset": 0, "next": null}`)
		}))
		defer server.Close()

		service := newTestSpotify(t, server.URL)
		if _, err := service.ReadTracks(context.Background(), "pl1"); err != nil {
			t.Fatalf("ReadTracks failed: %v", err)
		}
		if gotAuth != "Bearer token" {
			t.Errorf("expected bearer auth, got %q", gotAuth)
		}
	})
}
