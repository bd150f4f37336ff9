package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cookie050/plex-playlist-sync/internal/models"
	"github.com/cookie050/plex-playlist-sync/internal/services"
	"github.com/cookie050/plex-playlist-sync/internal/shared"
	"golang.org/x/time/rate"
)

// TrackMatchResult represents the result of attempting to match a single track.
type TrackMatchResult struct {
	Ref     models.TrackRef      // Original track from source
	Matched *models.MatchedTrack // Matched Plex track (nil if dropped)
}

// SyncRunResult contains all data from a full sync run.
type SyncRunResult struct {
	RunID           string             // Unique id for this run
	Source          string             // Source service name
	SourcePlaylist  *models.Playlist   // Resolved source playlist
	DestPlaylist    *models.Playlist   // Created Plex playlist
	Matches         []TrackMatchResult // Individual track match results
	TotalTracks     int                // Total TrackRefs read from source
	MatchedCount    int                // Tracks matched and written
	DroppedCount    int                // Tracks silently dropped
	MatchPercentage float64            // Success rate as percentage
}

// HistoryRecorder persists completed sync runs. Wired to the sqlite
// repository in production; nil disables history.
type HistoryRecorder interface {
	Record(run models.SyncRun) error
}

// SyncOpts contains tuning options for a SyncEngine.
type SyncOpts struct {
	SearchLimit int             // Catalog results per query (default 5)
	RateLimit   float64         // Catalog queries per second (default 5)
	History     HistoryRecorder // Optional run history sink
	Logger      *log.Logger     // Defaults to shared.NewLogger(nil)
}

// SyncEngine orchestrates one-way playlist syncs into Plex.
type SyncEngine struct {
	catalog     services.TargetCatalog
	store       services.TargetPlaylistStore
	logger      *log.Logger
	limiter     *rate.Limiter
	history     HistoryRecorder
	searchLimit int
}

// NewSyncEngine creates a SyncEngine over the given catalog and playlist store.
func NewSyncEngine(catalog services.TargetCatalog, store services.TargetPlaylistStore, opts SyncOpts) *SyncEngine {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 5
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &SyncEngine{
		catalog:     catalog,
		store:       store,
		logger:      opts.Logger,
		limiter:     rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		history:     opts.History,
		searchLimit: opts.SearchLimit,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls the sync.
func (e *SyncEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run performs a full source → Plex playlist sync.
//
// idOrName selects the source playlist by id first, then by exact name.
// destName names the Plex playlist to replace; empty defaults to the source
// playlist's name. Unmatched tracks are dropped silently; the output order
// follows the source order among the tracks that matched.
func (e *SyncEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, source services.SourceReader, idOrName, destName string) (*SyncRunResult, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: source service not initialized", shared.ErrServiceUnavailable)
	}
	if e.catalog == nil || e.store == nil {
		return nil, fmt.Errorf("%w: Plex service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchSourceUpdate(source.Name()))

	srcPlaylist, err := e.resolvePlaylist(ctx, source, idOrName)
	if err != nil {
		return nil, err
	}
	if destName == "" {
		destName = srcPlaylist.Name
	}

	refs, err := source.ReadTracks(ctx, srcPlaylist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks: %w", err)
	}

	result := &SyncRunResult{
		RunID:          shared.GenerateID(),
		Source:         source.Name(),
		SourcePlaylist: srcPlaylist,
		TotalTracks:    len(refs),
	}

	e.sendProgress(progress, foundPlaylistUpdate(srcPlaylist))
	e.sendProgress(progress, searchTrackUpdate(0, len(refs), nil))

	matches := make([]TrackMatchResult, len(refs))
	var matched []models.MatchedTrack

	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e.sendProgress(progress, searchTrackUpdate(i+1, len(refs), &ref))

		track, err := e.matchTrack(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to search catalog: %w", err)
		}
		matches[i] = TrackMatchResult{Ref: ref, Matched: track}
		if track != nil {
			matched = append(matched, *track)
		}
	}

	result.Matches = matches
	result.MatchedCount = len(matched)
	result.DroppedCount = result.TotalTracks - result.MatchedCount
	if result.TotalTracks > 0 {
		result.MatchPercentage = float64(result.MatchedCount) / float64(result.TotalTracks) * 100
	}

	e.sendProgress(progress, replacePlaylistUpdate(destName))

	destPlaylist, err := e.replacePlaylist(ctx, destName, matched)
	if err != nil {
		return result, err
	}
	result.DestPlaylist = destPlaylist

	e.recordHistory(result, destName)
	e.sendProgress(progress, doneUpdate(result))
	return result, nil
}

// resolvePlaylist finds the source playlist by id first, then by exact name.
func (e *SyncEngine) resolvePlaylist(ctx context.Context, source services.SourceReader, idOrName string) (*models.Playlist, error) {
	playlists, err := source.ListPlaylists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	for i := range playlists {
		if playlists[i].ID == idOrName {
			return &playlists[i], nil
		}
	}
	for i := range playlists {
		if playlists[i].Name == idOrName {
			return &playlists[i], nil
		}
	}

	return nil, fmt.Errorf("%w: no playlist with id or name '%s'", shared.ErrPlaylistNotFound, idOrName)
}

// search waits for the rate limiter, then queries the catalog. A malformed
// query is logged and reported as an empty result set; any other catalog
// error propagates and aborts the run.
func (e *SyncEngine) search(ctx context.Context, query string) ([]models.MatchedTrack, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	results, err := e.catalog.SearchTracks(ctx, query, e.searchLimit)
	if err != nil {
		if errors.Is(err, shared.ErrBadSearchRequest) {
			e.logger.Info("search rejected by catalog", "query", query)
			return nil, nil
		}
		return nil, err
	}
	return results, nil
}

// matchTrack selects the best Plex match for a TrackRef, or nil when nothing
// acceptable exists.
//
// Policy, deliberately including its limitations: the full title is searched
// first; if that yields nothing, the portion of the title before the first
// '(' is searched once more. Whichever result set is non-empty is scanned in
// catalog order, and the first candidate whose artist equals ref.Artist
// case-insensitively wins. Candidates without an artist field are skipped.
// Two catalog tracks with identical titles by different artists: the first
// one whose artist matches wins, with no secondary disambiguation.
func (e *SyncEngine) matchTrack(ctx context.Context, ref models.TrackRef) (*models.MatchedTrack, error) {
	results, err := e.search(ctx, ref.Title)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		if results, err = e.search(ctx, shared.StripParenthetical(ref.Title)); err != nil {
			return nil, err
		}
	}

	for i := range results {
		candidate := results[i]
		if candidate.Artist == "" {
			e.logger.Info("candidate has no artist, trying next result", "title", ref.Title)
			continue
		}
		if strings.EqualFold(candidate.Artist, ref.Artist) {
			return &candidate, nil
		}
	}

	return nil, nil
}

// replacePlaylist replaces the named Plex playlist with the matched track set:
// delete any existing playlist of that name, then create a fresh one. Only a
// not-found error during lookup is expected; everything else is fatal. An
// empty track set still creates an empty playlist.
func (e *SyncEngine) replacePlaylist(ctx context.Context, name string, tracks []models.MatchedTrack) (*models.Playlist, error) {
	existing, err := e.store.FindPlaylist(ctx, name)
	switch {
	case err == nil:
		if err := e.store.DeletePlaylist(ctx, existing.ID); err != nil {
			return nil, err
		}
		e.logger.Info("deleted existing playlist", "name", name)
	case errors.Is(err, shared.ErrPlaylistNotFound):
	default:
		return nil, err
	}

	trackIDs := make([]string, len(tracks))
	for i, t := range tracks {
		trackIDs[i] = t.ID
	}

	created, err := e.store.CreatePlaylist(ctx, name, trackIDs)
	if err != nil {
		return nil, err
	}
	e.logger.Info("created playlist", "name", name, "tracks", len(trackIDs))

	return created, nil
}

func (e *SyncEngine) recordHistory(result *SyncRunResult, destName string) {
	if e.history == nil {
		return
	}

	run := models.SyncRun{
		ID:            result.RunID,
		Source:        result.Source,
		PlaylistName:  destName,
		TotalTracks:   result.TotalTracks,
		MatchedTracks: result.MatchedCount,
		CreatedAt:     time.Now().UTC(),
	}
	if err := e.history.Record(run); err != nil {
		e.logger.Warn("failed to record sync run", "err", err)
	}
}
