package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cookie050/plex-playlist-sync/internal/formatter"
	"github.com/cookie050/plex-playlist-sync/internal/shared"
	"github.com/cookie050/plex-playlist-sync/internal/tasks"
	"github.com/cookie050/plex-playlist-sync/internal/ui"
	"github.com/urfave/cli/v3"
)

// SyncRun runs a full source → Plex playlist sync.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	serviceName := cmd.String("service")
	sourceIDOrName := cmd.String("source")
	destName := cmd.String("dest")

	if r.engine == nil {
		return fmt.Errorf("%w: Plex service not initialized (set url and token in config.toml)", shared.ErrServiceUnavailable)
	}

	source, err := r.resolveSource(ctx, serviceName)
	if err != nil {
		return err
	}

	r.logger.Info("starting sync", "service", serviceName, "source", sourceIDOrName, "dest", destName)
	r.writePlain("Starting playlist sync...\n")
	r.writePlain("Source: %s (%s)\n\n", sourceIDOrName, serviceName)

	// Goroutine drains progress updates for display while the engine runs
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchSource:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.SearchTracks:
				if update.Step == 0 {
					r.writePlain("\n🔍 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			case tasks.ReplacePlaylist:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Run(ctx, progressCh, source, sourceIDOrName, destName)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete!")
	r.writePlain("Source: %s (%d tracks)\n", result.SourcePlaylist.Name, result.TotalTracks)
	r.writePlain("Destination: %s (%d tracks)\n", result.DestPlaylist.Name, result.DestPlaylist.TrackCount)
	r.writePlain("Matched: %d/%d (%.1f%%)\n", result.MatchedCount, result.TotalTracks, result.MatchPercentage)

	if result.DroppedCount > 0 {
		r.writePlain("\nDropped %d tracks:\n", result.DroppedCount)
		for _, match := range result.Matches {
			if match.Matched == nil {
				r.writePlain("  - %s - %s\n", match.Ref.Artist, match.Ref.Title)
			}
		}
	}

	if format := cmd.String("report"); format != "" {
		return r.writeReport(result, format, cmd.String("output"))
	}

	return nil
}

// writeReport renders the sync result in the requested format, to a file when
// outputPath is set, otherwise to the runner's output writer.
func (r *Runner) writeReport(result *tasks.SyncRunResult, format, outputPath string) error {
	report, err := formatter.Report(result, format)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, report, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		r.writePlain("\nReport saved to %s\n", outputPath)
		return nil
	}

	r.writePlain("\n")
	if _, err := r.output.Write(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// SyncUI launches the interactive terminal UI for playlist sync.
func (r *Runner) SyncUI(ctx context.Context, cmd *cli.Command) error {
	serviceName := cmd.String("service")

	if r.engine == nil {
		return fmt.Errorf("%w: Plex service not initialized (set url and token in config.toml)", shared.ErrServiceUnavailable)
	}

	source, err := r.resolveSource(ctx, serviceName)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/plexsync-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, source, r.engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
