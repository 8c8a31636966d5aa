package social

import (
	"strings"
	"time"

	"github.com/NicholasClooney/blog.clooney.io/internal/posts"
)

// NoStatus is shown for a channel the post has no entry for.
const NoStatus = "—"

// StatusColor names the color for a channel's status. ok is false when the
// post has no entry for the channel.
func StatusColor(s posts.SocialStatus, ok bool) string {
	if !ok {
		return "gray"
	}
	switch s.Status {
	case "shared":
		return "green"
	case "queued":
		return "yellow"
	default:
		return "magenta"
	}
}

// StatusLabel renders a status with its age, e.g. "shared (3d)".
func StatusLabel(s posts.SocialStatus, ok bool, now time.Time) string {
	if !ok {
		return NoStatus
	}
	if s.LastShared == "" {
		return s.Status
	}
	t, valid := posts.ParseTimestamp(s.LastShared)
	if !valid {
		return s.Status + " (invalid date)"
	}
	return s.Status + " (" + RelativeShort(t, now) + ")"
}

// ChannelSummary renders every channel's bare status, e.g.
// "twitter:shared  mastodon:—".
func ChannelSummary(p posts.Post, channels []string) string {
	parts := make([]string, 0, len(channels))
	for _, ch := range channels {
		status := NoStatus
		if s, ok := p.Channel(ch); ok {
			status = s.Status
		}
		parts = append(parts, ch+":"+status)
	}
	return strings.Join(parts, "  ")
}

// PostLabel renders a post title with its channel summary.
func PostLabel(p posts.Post, channels []string) string {
	return p.Title + " — " + ChannelSummary(p, channels)
}

// SearchText lists the strings a post filter is matched against: title,
// slug, path, label and each channel's status label.
func SearchText(p posts.Post, channels []string, now time.Time) []string {
	hay := []string{p.Title, p.Slug, p.Path, PostLabel(p, channels)}
	for _, ch := range channels {
		s, ok := p.Channel(ch)
		hay = append(hay, StatusLabel(s, ok, now))
	}
	return hay
}
