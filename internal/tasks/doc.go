// Package tasks implements the playlist sync pipeline: read TrackRefs from a
// source service, match each against the Plex catalog, and replace the target
// playlist with the matched set.
//
// The core abstraction is [SyncEngine]. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks
