// Package models holds the neutral data model shared by all services.
//
// Source services produce [TrackRef] values, the Plex catalog produces
// [MatchedTrack] handles, and the sync engine ties the two together. Nothing
// in this package knows about HTTP or any concrete service.
package models
