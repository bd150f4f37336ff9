// Package services contains the HTTP clients for the source music services
// (Spotify, Deezer) and the Plex target server, behind small capability
// interfaces so the sync engine never depends on a concrete client.
package services
