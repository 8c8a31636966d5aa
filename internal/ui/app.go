package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/NicholasClooney/blog.clooney.io/internal/config"
	"github.com/NicholasClooney/blog.clooney.io/internal/logging"
	"github.com/NicholasClooney/blog.clooney.io/internal/posts"
	"github.com/NicholasClooney/blog.clooney.io/internal/ui/picker"
)

type mode int

const (
	modeLoading mode = iota
	modeLoadError
	modePost
	modeChannel
	modeStatus
	modeSaving
)

func (m mode) String() string {
	switch m {
	case modeLoading:
		return "loading"
	case modeLoadError:
		return "load-error"
	case modePost:
		return "post"
	case modeChannel:
		return "channel"
	case modeStatus:
		return "status"
	case modeSaving:
		return "saving"
	}
	return "unknown"
}

// AppConfig holds the dependencies injected into App.
type AppConfig struct {
	Tracker *config.Tracker

	// LoadPosts returns a Cmd producing PostsLoaded.
	LoadPosts func() tea.Cmd
	// SaveStatus returns a Cmd that saves, reloads, and produces StatusSaved.
	SaveStatus func(req posts.SaveRequest) tea.Cmd
	// Now is the clock used for relative times. Defaults to time.Now.
	Now func() time.Time
}

// App is the root Bubble Tea model.
// App never touches the filesystem. Posts arrive via messages.
type App struct {
	cfg        *config.Tracker
	loadPosts  func() tea.Cmd
	saveStatus func(req posts.SaveRequest) tea.Cmd
	now        func() time.Time

	mode     mode
	snapshot posts.Snapshot
	loadErr  error

	selectedPost    string // post path
	selectedChannel string
	pending         posts.SaveRequest

	postFilter    string
	channelFilter string
	statusFilter  string

	postList    picker.Model[posts.Post]
	channelList picker.Model[string]
	statusList  picker.Model[string]

	message   string
	actionErr string

	width  int
	height int

	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	resizeLog *rate.Sometimes
}

// NewApp creates an App from cfg.
func NewApp(cfg AppConfig) App {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return App{
		cfg:         cfg.Tracker,
		loadPosts:   cfg.LoadPosts,
		saveStatus:  cfg.SaveStatus,
		now:         now,
		mode:        modeLoading,
		postList:    picker.New[posts.Post](),
		channelList: picker.New[string](),
		statusList:  picker.New[string](),
		keys:        defaultKeyMap(),
		help:        help.New(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		resizeLog:   &rate.Sometimes{Interval: time.Second},
	}
}

// Init starts the initial post load.
func (a App) Init() tea.Cmd {
	if a.loadPosts == nil {
		return nil
	}
	return tea.Batch(a.loadPosts(), a.spinner.Tick)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.resizeLog.Do(func() {
			logging.Debug("terminal resized", "width", msg.Width, "height", msg.Height)
		})
		a.refresh()
		return a, nil

	case spinner.TickMsg:
		if a.mode != modeLoading && a.mode != modeSaving {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case PostsLoaded:
		if msg.Err != nil {
			logging.Error("load posts failed", "err", msg.Err)
			a.mode = modeLoadError
			a.loadErr = msg.Err
			return a, nil
		}
		logging.Info("posts loaded", "posts", len(msg.Snapshot.Posts), "skipped", len(msg.Snapshot.Problems))
		for _, p := range msg.Snapshot.Problems {
			logging.Warn("skipped post", "path", p.Path, "err", p.Err)
		}
		a.snapshot = msg.Snapshot
		a.mode = modePost
		a.refresh()
		return a, nil

	case StatusSaved:
		return a.handleSaved(msg), nil
	}

	return a, nil
}

// handleKey routes a key press according to the current mode.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	switch a.mode {
	case modeLoading, modeLoadError, modeSaving:
		return a, nil
	}

	if key.Matches(msg, a.keys.Back) {
		a.back()
		a.refresh()
		return a, nil
	}

	if key.Matches(msg, a.keys.Erase) {
		f := a.activeFilter()
		if r := []rune(*f); len(r) > 0 {
			*f = string(r[:len(r)-1])
			a.refresh()
		}
		return a, nil
	}

	if text, ok := filterInput(msg, *a.activeFilter()); ok {
		*a.activeFilter() += text
		a.refresh()
		return a, nil
	}

	var action picker.Action
	switch a.mode {
	case modePost:
		a.postList, action = a.postList.Update(msg)
		if action == picker.ActionSelect {
			return a.selectPost()
		}
	case modeChannel:
		a.channelList, action = a.channelList.Update(msg)
		if action == picker.ActionSelect {
			return a.selectChannel()
		}
	case modeStatus:
		a.statusList, action = a.statusList.Update(msg)
		if action == picker.ActionSelect {
			return a.selectStatus()
		}
	}
	return a, nil
}

// filterInput returns the text a key press adds to the filter. j and k
// navigate while the filter is empty and type once it has text.
func filterInput(msg tea.KeyMsg, current string) (string, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return " ", true
	case tea.KeyRunes:
	default:
		return "", false
	}
	if msg.Alt || len(msg.Runes) == 0 {
		return "", false
	}
	if current == "" && len(msg.Runes) == 1 && (msg.Runes[0] == 'j' || msg.Runes[0] == 'k') {
		return "", false
	}

	var b strings.Builder
	for _, r := range msg.Runes {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		} else if unicode.IsSpace(r) {
			b.WriteRune(' ')
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

func (a *App) activeFilter() *string {
	switch a.mode {
	case modeChannel:
		return &a.channelFilter
	case modeStatus:
		return &a.statusFilter
	default:
		return &a.postFilter
	}
}

// back clears messages, then the active filter, and otherwise steps back
// one level.
func (a *App) back() {
	a.message, a.actionErr = "", ""

	if f := a.activeFilter(); *f != "" {
		*f = ""
		return
	}

	switch a.mode {
	case modeChannel:
		a.mode = modePost
		a.selectedPost = ""
		a.selectedChannel = ""
		a.channelFilter, a.statusFilter = "", ""
	case modeStatus:
		a.mode = modeChannel
		a.selectedChannel = ""
		a.statusFilter = ""
	}
}

func (a App) selectPost() (tea.Model, tea.Cmd) {
	item, ok := a.postList.Selected()
	if !ok {
		return a, nil
	}
	a.message, a.actionErr = "", ""
	a.selectedPost = item.Key
	a.selectedChannel = ""
	a.channelFilter, a.statusFilter = "", ""
	a.channelList = a.channelList.Reset()
	a.mode = modeChannel
	a.refresh()
	return a, nil
}

func (a App) selectChannel() (tea.Model, tea.Cmd) {
	item, ok := a.channelList.Selected()
	if !ok {
		return a, nil
	}
	a.message, a.actionErr = "", ""
	a.selectedChannel = item.Key
	a.statusFilter = ""
	a.mode = modeStatus
	a.refresh()

	// Start on the channel's current state.
	a.statusList = a.statusList.Reset()
	if post, ok := a.currentPost(); ok {
		if s, ok := post.Channel(a.selectedChannel); ok {
			for i, it := range a.statusList.Items() {
				if it.Key == s.Status {
					a.statusList = a.statusList.SetHighlight(i)
					break
				}
			}
		}
	}
	return a, nil
}

func (a App) selectStatus() (tea.Model, tea.Cmd) {
	item, ok := a.statusList.Selected()
	post, hasPost := a.currentPost()
	if !ok || !hasPost || a.saveStatus == nil {
		return a, nil
	}
	a.message, a.actionErr = "", ""
	a.pending = posts.SaveRequest{
		Path:          post.Path,
		Channel:       a.selectedChannel,
		Status:        item.Key,
		AutoTimestamp: true,
	}
	a.mode = modeSaving
	logging.Info("saving status", "post", post.Slug, "channel", a.pending.Channel, "status", a.pending.Status)
	return a, tea.Batch(a.saveStatus(a.pending), a.spinner.Tick)
}

// handleSaved applies a save result and returns to the channel level.
func (a App) handleSaved(msg StatusSaved) App {
	title := msg.Request.Path
	if post, ok := a.snapshot.ByPath(msg.Request.Path); ok {
		title = post.Title
	}

	a.mode = modeChannel
	a.selectedChannel = ""
	a.statusFilter = ""
	a.message, a.actionErr = "", ""

	if msg.SaveErr != nil {
		logging.Error("save failed", "path", msg.Request.Path, "channel", msg.Request.Channel, "err", msg.SaveErr)
		var verr *posts.ValidationError
		if errors.As(msg.SaveErr, &verr) {
			a.actionErr = verr.Error()
		} else {
			a.actionErr = fmt.Sprintf("Failed to update %s: %v", msg.Request.Channel, msg.SaveErr)
		}
		a.refresh()
		return a
	}

	logging.Info("status saved", "path", msg.Request.Path, "channel", msg.Request.Channel,
		"status", msg.Result.Status.Status, "changed", msg.Result.Changed)
	a.message = msg.Result.Summary(title, msg.Request.Channel)

	if msg.ReloadErr != nil {
		logging.Error("reload after save failed", "err", msg.ReloadErr)
		a.actionErr = "Status updated but refreshing posts failed: " + msg.ReloadErr.Error()
	} else {
		a.snapshot = msg.Snapshot
	}

	if _, ok := a.snapshot.ByPath(a.selectedPost); !ok {
		a.mode = modePost
		a.selectedPost = ""
		a.channelFilter = ""
	}
	a.refresh()
	return a
}

func (a App) currentPost() (posts.Post, bool) {
	if a.selectedPost == "" {
		return posts.Post{}, false
	}
	return a.snapshot.ByPath(a.selectedPost)
}

// refresh recomputes every derived list and the viewport geometry. It runs
// after each state change.
func (a *App) refresh() {
	a.postList = a.postList.SetItems(a.postItems())
	a.channelList = a.channelList.SetItems(a.channelItems())
	a.statusList = a.statusList.SetItems(a.statusItems())

	reserved := a.chromeHeight()
	a.postList = a.postList.SetHeight(a.height).SetReserved(reserved)
	a.channelList = a.channelList.SetHeight(a.height).SetReserved(reserved)
	a.statusList = a.statusList.SetHeight(a.height).SetReserved(reserved)
}
