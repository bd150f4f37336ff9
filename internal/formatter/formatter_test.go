package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cookie050/plex-playlist-sync/internal/models"
	"github.com/cookie050/plex-playlist-sync/internal/tasks"
)

func sampleResult() *tasks.SyncRunResult {
	return &tasks.SyncRunResult{
		RunID:          "run-1",
		Source:         "spotify",
		SourcePlaylist: &models.Playlist{ID: "pl1", Name: "Road Trip", TrackCount: 2},
		DestPlaylist:   &models.Playlist{ID: "42", Name: "Road Trip", TrackCount: 1},
		Matches: []tasks.TrackMatchResult{
			{
				Ref:     models.TrackRef{Title: "Go", Artist: "Common"},
				Matched: &models.MatchedTrack{ID: "101", Title: "Go", Artist: "Common", Album: "Be"},
			},
			{
				Ref: models.TrackRef{Title: "Missing", Artist: "Nobody"},
			},
		},
		TotalTracks:     2,
		MatchedCount:    1,
		DroppedCount:    1,
		MatchPercentage: 50.0,
	}
}

func TestReportToText(t *testing.T) {
	output, err := ReportToText(sampleResult())
	if err != nil {
		t.Fatalf("ReportToText failed: %v", err)
	}

	text := string(output)
	for _, want := range []string{"Road Trip", "spotify", "1/2 (50.0%)", "[matched] Common - Go", "[dropped] Nobody - Missing"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain '%s', got:\n%s", want, text)
		}
	}
}

func TestReportToCSV(t *testing.T) {
	output, err := ReportToCSV(sampleResult())
	if err != nil {
		t.Fatalf("ReportToCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 records, got %d lines", len(lines))
	}
	if lines[0] != "Title,Artist,Status,PlexID,PlexTitle,PlexArtist" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "matched") || !strings.Contains(lines[1], "101") {
		t.Errorf("Unexpected matched record: %s", lines[1])
	}
	if !strings.Contains(lines[2], "dropped") {
		t.Errorf("Unexpected dropped record: %s", lines[2])
	}
}

func TestReportToMarkdown(t *testing.T) {
	t.Run("includes matched and dropped sections", func(t *testing.T) {
		output, err := ReportToMarkdown(sampleResult())
		if err != nil {
			t.Fatalf("ReportToMarkdown failed: %v", err)
		}

		text := string(output)
		for _, want := range []string{"# Road Trip", "## Matched", "- Common - Go", "## Dropped", "- Nobody - Missing"} {
			if !strings.Contains(text, want) {
				t.Errorf("Expected output to contain '%s'", want)
			}
		}
	})

	t.Run("omits dropped section when everything matched", func(t *testing.T) {
		result := sampleResult()
		result.Matches = result.Matches[:1]
		result.DroppedCount = 0

		output, err := ReportToMarkdown(result)
		if err != nil {
			t.Fatalf("ReportToMarkdown failed: %v", err)
		}
		if strings.Contains(string(output), "## Dropped") {
			t.Error("Expected no dropped section")
		}
	})
}

func TestReportToJSON(t *testing.T) {
	output, err := ReportToJSON(sampleResult())
	if err != nil {
		t.Fatalf("ReportToJSON failed: %v", err)
	}

	var decoded tasks.SyncRunResult
	if err := json.Unmarshal(output, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.MatchedCount != 1 {
		t.Errorf("Unexpected decoded result: %+v", decoded)
	}
}

func TestReport(t *testing.T) {
	result := sampleResult()

	t.Run("dispatches by format", func(t *testing.T) {
		for _, format := range []string{"", "text", "txt", "csv", "markdown", "md", "json"} {
			if _, err := Report(result, format); err != nil {
				t.Errorf("Report(%q) failed: %v", format, err)
			}
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		if _, err := Report(result, "yaml"); err == nil {
			t.Error("Expected error for unsupported format")
		}
	})
}
