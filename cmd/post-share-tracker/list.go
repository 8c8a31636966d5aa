package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/NicholasClooney/blog.clooney.io/internal/filter"
	"github.com/NicholasClooney/blog.clooney.io/internal/posts"
	"github.com/NicholasClooney/blog.clooney.io/internal/social"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [filter words]",
		Short: "List posts and their status on each channel",
		Long: "List posts and their status on each channel. Filter words must appear\n" +
			"in order in the title, slug, path or a status label.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, args)
		},
	}
}

func runList(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, repo, err := opts.open()
	if err != nil {
		return err
	}
	snap, err := repo.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	reportProblems(cmd.ErrOrStderr(), snap.Problems)

	out := cmd.OutOrStdout()
	if len(snap.Posts) == 0 {
		fmt.Fprintln(out, "No posts found.")
		return nil
	}

	tokens := filter.Tokenize(strings.Join(args, " "))
	now := time.Now()
	width := columnWidth(cfg.Channels)
	shown := 0
	for _, p := range snap.Posts {
		if !filter.MatchesAny(social.SearchText(p, cfg.Channels, now), tokens) {
			continue
		}
		shown++
		fmt.Fprintf(out, "%s %s\n", bold(fmt.Sprintf("%d. %s", shown, p.Title)), faint("("+p.Slug+")"))
		for _, ch := range cfg.Channels {
			s, ok := p.Channel(ch)
			fmt.Fprintf(out, "   %-*s  %s\n", width, ch, paint(social.StatusColor(s, ok), social.StatusLabel(s, ok, now)))
		}
	}
	if shown == 0 {
		fmt.Fprintln(out, "No posts match the filter.")
	}
	return nil
}

func reportProblems(w io.Writer, problems []posts.LoadProblem) {
	if len(problems) == 0 {
		return
	}
	noun := "posts"
	if len(problems) == 1 {
		noun = "post"
	}
	fmt.Fprintln(w, warn("Skipped %d %s with unreadable front matter.", len(problems), noun))
	for _, p := range problems {
		fmt.Fprintln(w, faint("  "+p.Error()))
	}
}
