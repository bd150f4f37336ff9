package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/cookie050/plex-playlist-sync/internal/repositories"
	"github.com/cookie050/plex-playlist-sync/internal/services"
	"github.com/cookie050/plex-playlist-sync/internal/shared"
	"github.com/cookie050/plex-playlist-sync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	spotify services.SourceReader
	deezer  services.SourceReader
	plex    *services.PlexService
	history *repositories.HistoryRepository
	logger  *log.Logger
	output  io.Writer
	engine  *tasks.SyncEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Spotify services.SourceReader
	Deezer  services.SourceReader
	Plex    *services.PlexService
	History *repositories.HistoryRepository
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var engine *tasks.SyncEngine
	if opts.Plex != nil {
		var recorder tasks.HistoryRecorder
		if opts.History != nil {
			recorder = opts.History
		}
		engine = tasks.NewSyncEngine(opts.Plex, opts.Plex, tasks.SyncOpts{
			SearchLimit: opts.Config.Sync.SearchLimit,
			RateLimit:   opts.Config.Sync.RateLimit,
			History:     recorder,
			Logger:      opts.Logger,
		})
	}

	return &Runner{
		config:  opts.Config,
		spotify: opts.Spotify,
		deezer:  opts.Deezer,
		plex:    opts.Plex,
		history: opts.History,
		logger:  opts.Logger,
		output:  opts.Output,
		engine:  engine,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, spotifyCommand, deezerCommand, plexCommand, syncCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger; the TUI uses this to redirect logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// resolveSource resolves a service name to its corresponding [services.SourceReader],
// authenticating it for immediate use.
func (r *Runner) resolveSource(ctx context.Context, serviceName string) (services.SourceReader, error) {
	switch serviceName {
	case "spotify":
		return r.spotifySource(ctx)
	case "deezer":
		return r.deezerSource(ctx)
	default:
		return nil, fmt.Errorf("%w: invalid service '%s' (must be 'spotify' or 'deezer')", shared.ErrInvalidArgument, serviceName)
	}
}

func (r *Runner) spotifySource(ctx context.Context) (services.SourceReader, error) {
	if r.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized (set credentials in config.toml)", shared.ErrServiceUnavailable)
	}

	creds := r.config.Credentials.Spotify.Map()
	if creds["access_token"] == "" {
		return nil, fmt.Errorf("%w: run 'plexsync spotify auth' first", shared.ErrNotAuthenticated)
	}
	if err := r.spotify.Authenticate(ctx, creds); err != nil {
		return nil, err
	}

	return r.spotify, nil
}

func (r *Runner) deezerSource(ctx context.Context) (services.SourceReader, error) {
	if r.deezer == nil {
		return nil, fmt.Errorf("%w: Deezer service not initialized", shared.ErrServiceUnavailable)
	}

	creds := map[string]string{"user_id": r.config.Credentials.Deezer.UserID}
	if err := r.deezer.Authenticate(ctx, creds); err != nil {
		return nil, err
	}

	return r.deezer, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
