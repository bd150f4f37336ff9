package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/cookie050/plex-playlist-sync/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlexSearch searches the Plex music library for tracks.
func (r *Runner) PlexSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	limit := cmd.Int("limit")

	if r.plex == nil {
		return fmt.Errorf("%w: Plex service not initialized (set url and token in config.toml)", shared.ErrServiceUnavailable)
	}
	if query == "" {
		return fmt.Errorf("%w: search query required", shared.ErrMissingArgument)
	}

	r.logger.Infof("searching plex for %q", query)

	tracks, err := r.plex.SearchTracks(ctx, query, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Plex Results for %q (%d)", query, len(tracks)))
	for i, track := range tracks {
		r.writePlain("%d. %s - %s", i+1, track.Artist, track.Title)
		if track.Album != "" {
			r.writePlain(" (%s)", track.Album)
		}
		r.writePlain(" [%s]\n", track.ID)
	}
	return nil
}

// PlexPlaylist shows a Plex playlist by exact name.
func (r *Runner) PlexPlaylist(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")

	if r.plex == nil {
		return fmt.Errorf("%w: Plex service not initialized (set url and token in config.toml)", shared.ErrServiceUnavailable)
	}
	if name == "" {
		return fmt.Errorf("%w: playlist name required", shared.ErrMissingArgument)
	}

	playlist, err := r.plex.FindPlaylist(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrPlaylistNotFound) {
			r.writePlain("No playlist named %q\n", name)
			return nil
		}
		return err
	}

	r.writePlain("%s (%d tracks) [%s]\n", playlist.Name, playlist.TrackCount, playlist.ID)
	return nil
}
