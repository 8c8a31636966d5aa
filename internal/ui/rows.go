package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/NicholasClooney/blog.clooney.io/internal/filter"
	"github.com/NicholasClooney/blog.clooney.io/internal/posts"
	"github.com/NicholasClooney/blog.clooney.io/internal/social"
	"github.com/NicholasClooney/blog.clooney.io/internal/ui/picker"
)

const (
	titleColumnWidth  = 40
	statusColumnWidth = 18
	pointerMarker     = "›"
)

func (a App) postHaystacks(p posts.Post) []string {
	return social.SearchText(p, a.channels(), a.now())
}

func (a App) channelHaystacks(channel string) []string {
	label := a.channelLabel(channel)
	return []string{channel, label, channel + " — " + label}
}

func (a App) statusHaystacks(state string) []string {
	if cur, ok := a.currentState(a.selectedChannel); ok && cur == state {
		return []string{state, state + " (current)"}
	}
	return []string{state}
}

func (a App) postItems() []picker.Item[posts.Post] {
	tokens := filter.Tokenize(a.postFilter)
	items := make([]picker.Item[posts.Post], 0, len(a.snapshot.Posts))
	for _, p := range a.snapshot.Posts {
		if filter.MatchesAny(a.postHaystacks(p), tokens) {
			items = append(items, picker.Item[posts.Post]{Key: p.Path, Value: p})
		}
	}
	return items
}

func (a App) channelItems() []picker.Item[string] {
	if a.selectedPost == "" {
		return nil
	}
	tokens := filter.Tokenize(a.channelFilter)
	var items []picker.Item[string]
	for _, ch := range a.channels() {
		if filter.MatchesAny(a.channelHaystacks(ch), tokens) {
			items = append(items, picker.Item[string]{Key: ch, Value: ch})
		}
	}
	return items
}

func (a App) statusItems() []picker.Item[string] {
	if a.selectedChannel == "" || a.cfg == nil {
		return nil
	}
	tokens := filter.Tokenize(a.statusFilter)
	var items []picker.Item[string]
	for _, st := range a.cfg.States {
		if filter.MatchesAny(a.statusHaystacks(st), tokens) {
			items = append(items, picker.Item[string]{Key: st, Value: st})
		}
	}
	return items
}

func (a App) channels() []string {
	if a.cfg == nil {
		return nil
	}
	return a.cfg.Channels
}

// channelLabel is the selected post's status label for channel.
func (a App) channelLabel(channel string) string {
	post, ok := a.currentPost()
	if !ok {
		return social.NoStatus
	}
	s, has := post.Channel(channel)
	return social.StatusLabel(s, has, a.now())
}

func (a App) currentState(channel string) (string, bool) {
	post, ok := a.currentPost()
	if !ok {
		return "", false
	}
	s, has := post.Channel(channel)
	return s.Status, has
}

// renderPostRow renders "› N. title" followed by one status column per
// channel.
func (a App) renderPostRow(i int, item picker.Item[posts.Post], highlighted bool) string {
	tokens := filter.Tokenize(a.postFilter)
	p := item.Value

	title := strconv.Itoa(i+1) + ". " + p.Title
	var b strings.Builder
	b.WriteString(pointer(highlighted))
	b.WriteString(highlightCell(title, tokens, titleColumnWidth, rowStyle(highlighted)))

	now := a.now()
	for _, ch := range a.channels() {
		s, ok := p.Channel(ch)
		label := social.StatusLabel(s, ok, now)
		style := lipgloss.NewStyle().Foreground(colorFor(social.StatusColor(s, ok)))
		b.WriteString(" ")
		b.WriteString(highlightCell(label, tokens, statusColumnWidth, style))
	}
	return strings.TrimRight(b.String(), " ")
}

func (a App) renderChannelRow(_ int, item picker.Item[string], highlighted bool) string {
	tokens := filter.Tokenize(a.channelFilter)
	post, _ := a.currentPost()
	s, ok := post.Channel(item.Value)
	labelStyle := lipgloss.NewStyle().Foreground(colorFor(social.StatusColor(s, ok)))

	return pointer(highlighted) +
		highlightCell(item.Value, tokens, statusColumnWidth, rowStyle(highlighted)) + " " +
		highlightCell(a.channelLabel(item.Value), tokens, 0, labelStyle)
}

func (a App) renderStatusRow(_ int, item picker.Item[string], highlighted bool) string {
	tokens := filter.Tokenize(a.statusFilter)
	detail := "Set channel to this state"
	if cur, ok := a.currentState(a.selectedChannel); ok && cur == item.Value {
		detail = "Already current status"
	}
	return pointer(highlighted) +
		highlightCell(item.Value, tokens, statusColumnWidth, rowStyle(highlighted)) + " " +
		MutedText.Render(detail)
}

func pointer(highlighted bool) string {
	if highlighted {
		return Pointer.Render(pointerMarker) + " "
	}
	return "  "
}

func rowStyle(highlighted bool) lipgloss.Style {
	if highlighted {
		return SelectedRow
	}
	return lipgloss.NewStyle()
}

// highlightCell truncates text to width cells, styles the filter matches
// and pads the result. A width of zero disables truncation and padding.
func highlightCell(text string, tokens []string, width int, base lipgloss.Style) string {
	if width > 0 {
		text = runewidth.Truncate(text, width, "…")
	}
	ranges := filter.FindSequentialMatches(text, tokens)

	var b strings.Builder
	for _, seg := range filter.Segments(text, ranges) {
		if seg.Matched {
			b.WriteString(MatchStyle.Inherit(base).Render(seg.Text))
		} else {
			b.WriteString(base.Render(seg.Text))
		}
	}
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	return b.String()
}

// postHeader is the column header line of the post table.
func (a App) postHeader() string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(ColumnHeader.Render(runewidth.FillRight("Post", titleColumnWidth)))
	for _, ch := range a.channels() {
		b.WriteString(" ")
		b.WriteString(ColumnHeader.Render(runewidth.FillRight(runewidth.Truncate(ch, statusColumnWidth, "…"), statusColumnWidth)))
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
