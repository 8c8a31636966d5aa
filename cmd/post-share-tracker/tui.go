package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/NicholasClooney/blog.clooney.io/internal/logging"
	"github.com/NicholasClooney/blog.clooney.io/internal/posts"
	"github.com/NicholasClooney/blog.clooney.io/internal/ui"
)

var errNoTerminal = errors.New("the tracker needs an interactive terminal; use the list, activity or set commands instead")

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNoTerminal
	}

	cfg, repo, err := opts.open()
	if err != nil {
		return err
	}
	lock, err := acquireLock(repo.Root())
	if err != nil {
		return err
	}
	defer lock.Release()

	app := ui.NewApp(ui.AppConfig{
		Tracker:    cfg,
		LoadPosts:  ui.LoadPostsCmd(repo),
		SaveStatus: ui.SaveStatusCmd(posts.NewWriter(cfg), repo),
	})

	logging.Info("starting tui", "posts", repo.Root(), "channels", len(cfg.Channels))
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tracker: %w", err)
	}
	return nil
}
