package shared

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Plex.URL != "http://localhost:32400" {
		t.Errorf("unexpected default plex url: %s", config.Plex.URL)
	}
	if config.Plex.MusicSectionID != 1 {
		t.Errorf("unexpected default section id: %d", config.Plex.MusicSectionID)
	}
	if config.Database.Path != "plexsync.db" {
		t.Errorf("unexpected default database path: %s", config.Database.Path)
	}
	if config.Sync.SearchLimit != 5 {
		t.Errorf("unexpected default search limit: %d", config.Sync.SearchLimit)
	}
	if config.Sync.RateLimit != 5.0 {
		t.Errorf("unexpected default rate limit: %f", config.Sync.RateLimit)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.spotify]
client_id = "abc"
client_secret = "def"
user_id = "me"

[credentials.deezer]
user_id = "123"

[plex]
url = "http://plex.local:32400"
token = "tok"
music_section_id = 7

[sync]
search_limit = 10
rate_limit = 2.5
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "abc" {
			t.Errorf("unexpected client id: %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Deezer.UserID != "123" {
			t.Errorf("unexpected deezer user: %s", config.Credentials.Deezer.UserID)
		}
		if config.Plex.MusicSectionID != 7 {
			t.Errorf("unexpected section id: %d", config.Plex.MusicSectionID)
		}
		if config.Sync.RateLimit != 2.5 {
			t.Errorf("unexpected rate limit: %f", config.Sync.RateLimit)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("not [valid"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid toml")
		}
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	config := DefaultConfig()
	config.Credentials.Spotify.AccessToken = "new-token"
	config.Plex.Token = "plex-token"

	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Credentials.Spotify.AccessToken != "new-token" {
		t.Errorf("expected saved token, got %q", loaded.Credentials.Spotify.AccessToken)
	}
	if loaded.Plex.Token != "plex-token" {
		t.Errorf("expected saved plex token, got %q", loaded.Plex.Token)
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("creates from template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile failed: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created config does not parse: %v", err)
		}
		if config.Plex.URL == "" {
			t.Error("expected template defaults in created config")
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file exists")
		}
	})
}

func TestSpotifyConfigHelpers(t *testing.T) {
	t.Run("Map flattens credentials", func(t *testing.T) {
		cfg := SpotifyConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURI:  "http://localhost/cb",
			UserID:       "me",
			AccessToken:  "tok",
		}

		m := cfg.Map()
		if m["client_id"] != "id" || m["access_token"] != "tok" || m["user_id"] != "me" {
			t.Errorf("unexpected map: %v", m)
		}
	})

	t.Run("Update stores tokens", func(t *testing.T) {
		cfg := SpotifyConfig{}
		token := &oauth2.Token{AccessToken: "a", RefreshToken: "r"}

		if err := cfg.Update(token); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if cfg.AccessToken != "a" || cfg.RefreshToken != "r" {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("Update keeps refresh token when absent", func(t *testing.T) {
		cfg := SpotifyConfig{RefreshToken: "old"}

		if err := cfg.Update(&oauth2.Token{AccessToken: "a"}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if cfg.RefreshToken != "old" {
			t.Errorf("expected refresh token preserved, got %q", cfg.RefreshToken)
		}
	})

	t.Run("Update rejects empty token", func(t *testing.T) {
		cfg := SpotifyConfig{}
		if err := cfg.Update(nil); err == nil {
			t.Error("expected error for nil token")
		}
	})
}
