// Command post-share-tracker records where blog posts have been shared.
//
// Usage:
//
//	post-share-tracker                          Interactive tracker
//	post-share-tracker list [filter words]      Posts and their channel statuses
//	post-share-tracker activity                 Most recent share per channel
//	post-share-tracker set <post> <channel> <status>
//
// The config defaults to config.yaml next to the executable and the posts
// to ../../posts relative to it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/NicholasClooney/blog.clooney.io/internal/logging"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	defer logging.Close()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		logging.Error("command failed", "err", err)
		fmt.Fprintln(stderr, color.RedString(err.Error()))
		return 1
	}
	return 0
}
