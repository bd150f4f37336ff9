package main

import (
	"context"
	"os"

	"github.com/cookie050/plex-playlist-sync/internal/repositories"
	"github.com/cookie050/plex-playlist-sync/internal/services"
	"github.com/cookie050/plex-playlist-sync/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var spotifyService services.SourceReader
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			spotifyService = svc
		}
	}

	deezerService := services.NewDeezerService("", config.Credentials.Deezer.UserID)

	var plexService *services.PlexService
	if config.Plex.URL != "" && config.Plex.Token != "" {
		plexService = services.NewPlexService(config.Plex.URL, config.Plex.Token, config.Plex.MusicSectionID)
	}

	var history *repositories.HistoryRepository
	if config.Database.Path != "" {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			defer db.Close()
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

			repo := repositories.NewHistoryRepository(db)
			if err := repo.Migrate(); err == nil {
				history = repo
			} else {
				logger.Warn("failed to migrate history database", "error", err)
			}
		} else {
			logger.Warn("failed to open history database", "path", config.Database.Path, "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Spotify: spotifyService,
		Deezer:  deezerService,
		Plex:    plexService,
		History: history,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "plexsync",
		Usage:    "Sync Spotify & Deezer playlists to a Plex music library",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
