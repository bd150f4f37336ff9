package main

import (
	"context"
	"fmt"

	"github.com/cookie050/plex-playlist-sync/internal/shared"
	"github.com/urfave/cli/v3"
)

// History shows past sync runs, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")

	if r.history == nil {
		return fmt.Errorf("%w: history database not initialized (run 'plexsync setup database')", shared.ErrServiceUnavailable)
	}

	runs, err := r.history.List(limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, cmd.Bool("pretty"))
	}

	if len(runs) == 0 {
		r.writePlain("No sync runs recorded yet\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Sync History (%d)", len(runs)))
	for _, run := range runs {
		r.writePlain("%s  %-8s %-30s %d/%d matched\n",
			run.CreatedAt.Format("2006-01-02 15:04"), run.Source, run.PlaylistName, run.MatchedTracks, run.TotalTracks)
	}
	return nil
}
