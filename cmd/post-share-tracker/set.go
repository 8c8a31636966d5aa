package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NicholasClooney/blog.clooney.io/internal/logging"
	"github.com/NicholasClooney/blog.clooney.io/internal/posts"
)

type setOptions struct {
	lastShared      string
	notes           string
	noAutoTimestamp bool
	dryRun          bool
}

func newSetCmd(root *rootOptions) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set <post> <channel> <status>",
		Short: "Set a post's status on one channel",
		Long: "Set a post's status on one channel. <post> is a slug, a path relative to\n" +
			"the posts directory, or an absolute path.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, root, opts, args[0], args[1], args[2])
		},
	}

	cmd.Flags().StringVar(&opts.lastShared, "last-shared", "", "lastShared timestamp to record")
	cmd.Flags().StringVar(&opts.notes, "notes", "", "Notes to record")
	cmd.Flags().BoolVar(&opts.noAutoTimestamp, "no-auto-timestamp", false, "Do not stamp lastShared when the status is shared")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the updated file instead of writing it")
	return cmd
}

func runSet(cmd *cobra.Command, root *rootOptions, opts *setOptions, ref, channel, status string) error {
	cfg, repo, err := root.open()
	if err != nil {
		return err
	}
	if !opts.dryRun {
		lock, err := acquireLock(repo.Root())
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	snap, err := repo.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	post, ok := snap.Find(repo.Root(), ref)
	if !ok {
		return fmt.Errorf("post not found: %s", ref)
	}

	res, err := posts.NewWriter(cfg).Save(cmd.Context(), posts.SaveRequest{
		Path:          post.Path,
		Channel:       channel,
		Status:        status,
		LastShared:    opts.lastShared,
		Notes:         opts.notes,
		DryRun:        opts.dryRun,
		AutoTimestamp: !opts.noAutoTimestamp,
	})
	if err != nil {
		return err
	}
	logging.Info("status saved", "path", post.Path, "channel", channel, "status", res.Status.Status,
		"changed", res.Changed, "dry_run", opts.dryRun)

	if opts.dryRun {
		fmt.Fprint(cmd.OutOrStdout(), res.Content)
		fmt.Fprintln(cmd.ErrOrStderr(), faint("dry run: "+res.Summary(post.Title, channel)))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), paint("green", res.Summary(post.Title, channel)))
	return nil
}
