package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cookie050/plex-playlist-sync/internal/services"
	"github.com/cookie050/plex-playlist-sync/internal/shared"
	"github.com/urfave/cli/v3"
)

// SpotifyAuth performs the OAuth2 authorization-code flow for Spotify.
//
// Without --code it prints the authorization URL to open in a browser. With
// --code it exchanges the code for tokens and saves them to the config file.
func (r *Runner) SpotifyAuth(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	code := cmd.String("code")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		}
	}

	if config.Credentials.Spotify.ClientID == "" || config.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in %s", shared.ErrInvalidConfig, configPath)
	}

	spotifyService, err := services.NewSpotifyService(config.Credentials.Spotify.Map())
	if err != nil {
		return fmt.Errorf("failed to create Spotify service: %w", err)
	}

	if code == "" {
		authURL := spotifyService.GetAuthURL(shared.GenerateID())
		r.writePlain("Open this URL in your browser and authorize the application:\n\n")
		r.writePlain("  %s\n\n", authURL)
		r.writePlain("Then re-run with the code from the redirect URL:\n")
		r.writePlain("  plexsync spotify auth --code <code>\n")
		return nil
	}

	if err := spotifyService.Authenticate(ctx, map[string]string{"auth_code": code}); err != nil {
		return err
	}

	if err := config.Credentials.Spotify.Update(spotifyService.Token()); err != nil {
		return fmt.Errorf("failed to update spotify configuration: %w", err)
	}

	if err := shared.SaveConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Tokens saved to %s\n\n", configPath)
	r.writePlain("You can now use: plexsync spotify playlists\n")

	return nil
}

// SpotifyPlaylists lists Spotify playlists with optional limit.
func (r *Runner) SpotifyPlaylists(ctx context.Context, cmd *cli.Command) error {
	source, err := r.spotifySource(ctx)
	if err != nil {
		return err
	}
	return r.listPlaylists(ctx, cmd, source)
}

// SpotifyTracks lists the (title, artist) pairs of a Spotify playlist.
func (r *Runner) SpotifyTracks(ctx context.Context, cmd *cli.Command) error {
	source, err := r.spotifySource(ctx)
	if err != nil {
		return err
	}
	return r.listTracks(ctx, cmd, source)
}

// DeezerPlaylists lists the configured user's Deezer playlists.
func (r *Runner) DeezerPlaylists(ctx context.Context, cmd *cli.Command) error {
	source, err := r.deezerSource(ctx)
	if err != nil {
		return err
	}
	return r.listPlaylists(ctx, cmd, source)
}

// DeezerTracks lists the (title, artist) pairs of a Deezer playlist.
func (r *Runner) DeezerTracks(ctx context.Context, cmd *cli.Command) error {
	source, err := r.deezerSource(ctx)
	if err != nil {
		return err
	}
	return r.listTracks(ctx, cmd, source)
}

func (r *Runner) listPlaylists(ctx context.Context, cmd *cli.Command, source services.SourceReader) error {
	limit := cmd.Int("limit")

	r.logger.Infof("listing %s playlists with limit %v", source.Name(), limit)

	playlists, err := source.ListPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if limit > 0 && limit < len(playlists) {
		playlists = playlists[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s Playlists (%d)", source.Name(), len(playlists)))
	for i, pl := range playlists {
		r.writePlain("%d. %s (%d tracks) [%s]\n", i+1, pl.Name, pl.TrackCount, pl.ID)
	}
	return nil
}

func (r *Runner) listTracks(ctx context.Context, cmd *cli.Command, source services.SourceReader) error {
	playlistID := cmd.String("id")

	r.logger.Infof("reading %s playlist %v", source.Name(), playlistID)

	tracks, err := source.ReadTracks(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Tracks (%d)", len(tracks)))
	for i, track := range tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Title)
	}
	return nil
}
