package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/NicholasClooney/blog.clooney.io/internal/config"
	"github.com/NicholasClooney/blog.clooney.io/internal/logging"
	"github.com/NicholasClooney/blog.clooney.io/internal/posts"
)

type rootOptions struct {
	configPath string
	postsDir   string
	logFile    string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "post-share-tracker",
		Short:         "Track where blog posts have been shared",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Tracker config file (default: <exe dir>/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.postsDir, "posts", "", "Posts directory (default: <exe dir>/../../posts)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Log file (default: <user cache dir>/post-share-tracker/tracker.log)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log at debug level")

	cmd.AddCommand(
		newListCmd(opts),
		newActivityCmd(opts),
		newSetCmd(opts),
	)
	return cmd
}

// init fills in default paths and starts logging.
func (o *rootOptions) init() error {
	if o.configPath == "" || o.postsDir == "" {
		dir, err := executableDir()
		if err != nil {
			return fmt.Errorf("locate executable: %w", err)
		}
		if o.configPath == "" {
			o.configPath = filepath.Join(dir, "config.yaml")
		}
		if o.postsDir == "" {
			o.postsDir = filepath.Join(dir, "..", "..", "posts")
		}
	}

	if o.logFile == "" {
		path, err := logging.DefaultPath()
		if err != nil {
			return err
		}
		o.logFile = path
	}
	level := log.InfoLevel
	if o.debug {
		level = log.DebugLevel
	}
	if err := logging.Init(o.logFile, level); err != nil {
		return err
	}
	logging.Debug("paths resolved", "config", o.configPath, "posts", o.postsDir)
	return nil
}

// open loads the config and a repository for the posts directory.
func (o *rootOptions) open() (*config.Tracker, *posts.Repository, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, posts.NewRepository(o.postsDir, cfg), nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func acquireLock(root string) (*posts.Lock, error) {
	dir, err := posts.DefaultLockDir()
	if err != nil {
		return nil, err
	}
	lock, err := posts.AcquireLock(dir, root)
	if err != nil {
		return nil, err
	}
	logging.Debug("lock acquired", "root", root, "path", posts.LockPath(dir, root))
	return lock, nil
}
