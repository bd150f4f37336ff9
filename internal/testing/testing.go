// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/cookie050/plex-playlist-sync/internal/models"
	"github.com/cookie050/plex-playlist-sync/internal/shared"
)

// MockSource is a configurable test double for [services.SourceReader].
type MockSource struct {
	ServiceName string
	Playlists   []models.Playlist
	Tracks      []models.TrackRef
	ListErr     error
	ReadErr     error
}

func (m *MockSource) Name() string {
	if m.ServiceName == "" {
		return "mock"
	}
	return m.ServiceName
}

func (m *MockSource) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *MockSource) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return m.Playlists, m.ListErr
}

func (m *MockSource) ReadTracks(ctx context.Context, playlistID string) ([]models.TrackRef, error) {
	return m.Tracks, m.ReadErr
}

// MockCatalog is a test double for [services.TargetCatalog]. SearchFunc
// receives each query so tests can script per-query results.
type MockCatalog struct {
	SearchFunc func(query string, limit int) ([]models.MatchedTrack, error)
	Queries    []string
}

func (m *MockCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]models.MatchedTrack, error) {
	m.Queries = append(m.Queries, query)
	if m.SearchFunc == nil {
		return nil, nil
	}
	return m.SearchFunc(query, limit)
}

// MockStore is a test double for [services.TargetPlaylistStore]. It records
// delete and create calls for assertions.
type MockStore struct {
	Existing  *models.Playlist
	FindErr   error
	DeleteErr error
	CreateErr error

	DeletedIDs  []string
	CreatedName string
	CreatedIDs  []string
}

func (m *MockStore) FindPlaylist(ctx context.Context, name string) (*models.Playlist, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if m.Existing == nil {
		return nil, shared.ErrPlaylistNotFound
	}
	return m.Existing, nil
}

func (m *MockStore) DeletePlaylist(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedIDs = append(m.DeletedIDs, id)
	return nil
}

func (m *MockStore) CreatePlaylist(ctx context.Context, name string, trackIDs []string) (*models.Playlist, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.CreatedName = name
	m.CreatedIDs = trackIDs
	return &models.Playlist{ID: "created", Name: name, TrackCount: len(trackIDs)}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
