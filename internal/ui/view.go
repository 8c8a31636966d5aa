package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NicholasClooney/blog.clooney.io/internal/social"
)

// View renders the current screen.
func (a App) View() string {
	switch a.mode {
	case modeLoading:
		return a.header() + "\n\n" + a.spinner.View() + " Loading posts…\n"
	case modeLoadError:
		return a.header() + "\n\n" +
			ErrorStyle.Render(fmt.Sprintf("Failed to load posts: %v", a.loadErr)) + "\n" +
			MutedText.Render("Fix the issue and restart the tracker.") + "\n"
	}

	if len(a.snapshot.Posts) == 0 {
		return a.topChrome() + "\n\n" + MutedText.Render("No posts found.") + "\n" + a.bottomChrome()
	}
	return a.topChrome() + "\n" + a.listView() + "\n" + a.bottomChrome()
}

func (a App) header() string {
	return TitleStyle.Render("Post Share Tracker")
}

// topChrome is everything above the list.
func (a App) topChrome() string {
	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Tracking %s across %s.",
		plural(len(a.snapshot.Posts), "post"), plural(len(a.channels()), "channel"))))
	b.WriteString("\n")
	b.WriteString(a.activityView())

	if n := len(a.snapshot.Problems); n > 0 {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Skipped %s with unreadable front matter.", plural(n, "post"))))
	}

	b.WriteString("\n")
	b.WriteString(HeadingStyle.Render(a.heading()))
	b.WriteString("\n")
	b.WriteString(FilterBarPrompt.Render("Filter: "))
	b.WriteString(FilterBarText.Render(*a.filterFor()))
	b.WriteString("\n")
	b.WriteString(a.messageLine())

	if a.mode == modePost {
		b.WriteString("\n")
		b.WriteString(a.postHeader())
	}
	return b.String()
}

// filterFor returns the filter shown for the current level. While saving
// it is the status filter.
func (a *App) filterFor() *string {
	if a.mode == modeSaving {
		return &a.statusFilter
	}
	return a.activeFilter()
}

func (a App) activityView() string {
	lines := []string{SectionHeader.Render("Channel activity")}
	for _, act := range social.Summarize(a.cfg, a.snapshot.Posts, a.now()) {
		line := "  " + act.Channel + ": " + lipgloss.NewStyle().Foreground(colorFor(act.Color)).Render(act.Display)
		if act.Exact != "" {
			line += " " + MutedText.Render("("+act.Exact+")")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a App) heading() string {
	post, _ := a.currentPost()
	switch a.mode {
	case modeChannel:
		return "Choose a channel for " + post.Title
	case modeStatus:
		return fmt.Sprintf("Set %s status for %s", a.selectedChannel, post.Title)
	case modeSaving:
		return fmt.Sprintf("Saving %s status for %s", a.pending.Channel, post.Title)
	default:
		return "Choose a post"
	}
}

// messageLine is always one row tall so the list does not jump.
func (a App) messageLine() string {
	switch {
	case a.mode == modeSaving:
		return a.spinner.View() + " " + MutedText.Render(fmt.Sprintf("Saving %s → %s…", a.pending.Channel, a.pending.Status))
	case a.actionErr != "" && a.message != "":
		return StatusMessage.Render(a.message) + "  " + ErrorStyle.Render(a.actionErr)
	case a.actionErr != "":
		return ErrorStyle.Render(a.actionErr)
	case a.message != "":
		return StatusMessage.Render(a.message)
	}
	return ""
}

func (a App) listView() string {
	switch a.mode {
	case modeChannel:
		if a.channelList.Len() == 0 {
			return a.placeholder("No channels match the filter. Adjust your search or press Esc to clear.")
		}
		return a.channelList.View(a.renderChannelRow)
	case modeStatus, modeSaving:
		if a.statusList.Len() == 0 {
			return a.placeholder("No statuses match the filter. Adjust your search or press Esc to clear.")
		}
		return a.statusList.View(a.renderStatusRow)
	}
	if a.postList.Len() == 0 {
		return a.placeholder("No posts match the filter. Adjust your search or press Esc to clear.")
	}
	return a.postList.View(a.renderPostRow)
}

// placeholder pads a one-line notice to the viewport height.
func (a App) placeholder(text string) string {
	rows := a.postList.ViewportRows()
	lines := make([]string, rows)
	lines[0] = MutedText.Render(text)
	return strings.Join(lines, "\n")
}

func (a App) bottomChrome() string {
	return HelpStyle.Render(a.help.View(a.keys))
}

// chromeHeight measures the rows taken by everything except the list.
func (a App) chromeHeight() int {
	if a.mode == modeLoading || a.mode == modeLoadError {
		return 0
	}
	return lipgloss.Height(a.topChrome()) + lipgloss.Height(a.bottomChrome())
}
