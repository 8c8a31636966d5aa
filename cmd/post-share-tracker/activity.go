package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NicholasClooney/blog.clooney.io/internal/social"
)

func newActivityCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Show when each channel was last shared to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			width := columnWidth(cfg.Channels)
			for _, act := range social.Summarize(cfg, snap.Posts, time.Now()) {
				line := fmt.Sprintf("%-*s  %s", width, act.Channel, paint(act.Color, act.Display))
				if act.Exact != "" {
					line += " " + faint("("+act.Exact+")")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
