// Package formatter renders sync run results to various formats (plain text,
// CSV, Markdown, JSON).
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/cookie050/plex-playlist-sync/internal/tasks"
)

// ReportToText renders a sync run result as plain text.
func ReportToText(result *tasks.SyncRunResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", result.SourcePlaylist.Name))
	buf.WriteString(fmt.Sprintf("Source: %s\n", result.Source))
	buf.WriteString(fmt.Sprintf("Matched: %d/%d (%.1f%%)\n\n", result.MatchedCount, result.TotalTracks, result.MatchPercentage))

	for i, match := range result.Matches {
		status := "dropped"
		if match.Matched != nil {
			status = "matched"
		}
		buf.WriteString(fmt.Sprintf("%d. [%s] %s - %s\n", i+1, status, match.Ref.Artist, match.Ref.Title))
	}

	return buf.Bytes(), nil
}

// ReportToCSV renders a sync run result as CSV with columns:
// Title, Artist, Status, PlexID, PlexTitle, PlexArtist
func ReportToCSV(result *tasks.SyncRunResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Artist", "Status", "PlexID", "PlexTitle", "PlexArtist"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, match := range result.Matches {
		record := []string{match.Ref.Title, match.Ref.Artist, "dropped", "", "", ""}
		if match.Matched != nil {
			record[2] = "matched"
			record[3] = match.Matched.ID
			record[4] = match.Matched.Title
			record[5] = match.Matched.Artist
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToMarkdown renders a sync run result as Markdown with separate
// matched and dropped sections.
func ReportToMarkdown(result *tasks.SyncRunResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", result.SourcePlaylist.Name))
	buf.WriteString(fmt.Sprintf("**Source**: %s\n", result.Source))
	buf.WriteString(fmt.Sprintf("**Matched**: %d/%d (%.1f%%)\n\n", result.MatchedCount, result.TotalTracks, result.MatchPercentage))

	buf.WriteString("## Matched\n\n")
	for _, match := range result.Matches {
		if match.Matched == nil {
			continue
		}
		buf.WriteString(fmt.Sprintf("- %s - %s\n", match.Ref.Artist, match.Ref.Title))
	}

	if result.DroppedCount > 0 {
		buf.WriteString("\n## Dropped\n\n")
		for _, match := range result.Matches {
			if match.Matched != nil {
				continue
			}
			buf.WriteString(fmt.Sprintf("- %s - %s\n", match.Ref.Artist, match.Ref.Title))
		}
	}

	return buf.Bytes(), nil
}

// ReportToJSON renders a sync run result as indented JSON.
func ReportToJSON(result *tasks.SyncRunResult) ([]byte, error) {
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return output, nil
}

// Report renders a sync run result in the named format: text, csv, markdown,
// or json.
func Report(result *tasks.SyncRunResult, format string) ([]byte, error) {
	switch format {
	case "", "text", "txt":
		return ReportToText(result)
	case "csv":
		return ReportToCSV(result)
	case "markdown", "md":
		return ReportToMarkdown(result)
	case "json":
		return ReportToJSON(result)
	default:
		return nil, fmt.Errorf("unsupported report format '%s'", format)
	}
}
