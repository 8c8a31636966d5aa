package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NicholasClooney/blog.clooney.io/internal/posts"
)

// Loader produces a fresh post snapshot.
type Loader interface {
	Load(ctx context.Context) (posts.Snapshot, error)
}

// Saver applies a status change to a post file.
type Saver interface {
	Save(ctx context.Context, req posts.SaveRequest) (posts.SaveResult, error)
}

// LoadPostsCmd returns an AppConfig.LoadPosts backed by loader.
func LoadPostsCmd(loader Loader) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			snap, err := loader.Load(context.Background())
			return PostsLoaded{Snapshot: snap, Err: err}
		}
	}
}

// SaveStatusCmd returns an AppConfig.SaveStatus that saves and then reloads.
// The reload is skipped when the save fails.
func SaveStatusCmd(saver Saver, loader Loader) func(req posts.SaveRequest) tea.Cmd {
	return func(req posts.SaveRequest) tea.Cmd {
		return func() tea.Msg {
			ctx := context.Background()
			msg := StatusSaved{Request: req}

			msg.Result, msg.SaveErr = saver.Save(ctx, req)
			if msg.SaveErr != nil {
				return msg
			}
			msg.Snapshot, msg.ReloadErr = loader.Load(ctx)
			return msg
		}
	}
}
