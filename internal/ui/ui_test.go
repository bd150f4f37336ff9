package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cookie050/plex-playlist-sync/internal/models"
	"github.com/cookie050/plex-playlist-sync/internal/tasks"
	tu "github.com/cookie050/plex-playlist-sync/internal/testing"
)

func newTestModel() *Model {
	source := &tu.MockSource{ServiceName: "spotify"}
	engine := tasks.NewSyncEngine(&tu.MockCatalog{}, &tu.MockStore{}, tasks.SyncOpts{RateLimit: 1000})
	return NewModel(context.Background(), source, engine)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestViewKeyHandling(t *testing.T) {
	t.Run("esc returns from track preview to playlists", func(t *testing.T) {
		m := newTestModel()
		m.view = TrackListView

		updated, _ := m.handleTrackListKeys(tea.KeyMsg{Type: tea.KeyEsc})
		if updated.(*Model).view != PlaylistListView {
			t.Errorf("expected PlaylistListView, got %v", updated.(*Model).view)
		}
	})

	t.Run("enter advances track preview to confirmation", func(t *testing.T) {
		m := newTestModel()
		m.view = TrackListView

		updated, _ := m.handleTrackListKeys(tea.KeyMsg{Type: tea.KeyEnter})
		if updated.(*Model).view != ConfirmView {
			t.Errorf("expected ConfirmView, got %v", updated.(*Model).view)
		}
	})

	t.Run("n declines confirmation", func(t *testing.T) {
		m := newTestModel()
		m.view = ConfirmView

		updated, _ := m.handleConfirmKeys(runeKey('n'))
		if updated.(*Model).view != TrackListView {
			t.Errorf("expected TrackListView, got %v", updated.(*Model).view)
		}
	})

	t.Run("q quits from result view", func(t *testing.T) {
		m := newTestModel()
		m.view = ResultView

		_, cmd := m.handleResultKeys(runeKey('q'))
		if cmd == nil {
			t.Error("expected quit command")
		}
	})

	t.Run("r restarts from result view", func(t *testing.T) {
		m := newTestModel()
		m.view = ResultView
		m.selectedPlaylist = &models.Playlist{ID: "pl1", Name: "Road Trip"}
		m.result = &tasks.SyncRunResult{}

		updated, _ := m.handleResultKeys(runeKey('r'))
		model := updated.(*Model)
		if model.view != PlaylistListView {
			t.Errorf("expected PlaylistListView, got %v", model.view)
		}
		if model.selectedPlaylist != nil || model.result != nil {
			t.Error("expected selection and result cleared")
		}
	})
}

func TestHelpLines(t *testing.T) {
	keys := newKeyMap()

	cases := []struct {
		name     string
		bindings int
	}{
		{"browse", len(keys.browseHelp())},
		{"preview", len(keys.previewHelp())},
		{"confirm", len(keys.confirmHelp())},
		{"result", len(keys.resultHelp())},
	}
	for _, c := range cases {
		if c.bindings == 0 {
			t.Errorf("expected %s help to list bindings", c.name)
		}
	}
}
