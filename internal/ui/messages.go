// Package ui provides the Bubble Tea TUI for the post share tracker.
package ui

import "github.com/NicholasClooney/blog.clooney.io/internal/posts"

// PostsLoaded is sent when the initial load finishes.
type PostsLoaded struct {
	Snapshot posts.Snapshot
	Err      error
}

// StatusSaved is sent when a save and the reload after it finish.
// SaveErr means nothing was written. ReloadErr means the write went
// through but Snapshot is not fresh.
type StatusSaved struct {
	Request   posts.SaveRequest
	Result    posts.SaveResult
	Snapshot  posts.Snapshot
	SaveErr   error
	ReloadErr error
}
