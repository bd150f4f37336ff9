// Package repositories provides the sqlite persistence layer for sync run
// history.
package repositories
