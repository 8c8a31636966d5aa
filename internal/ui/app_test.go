package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NicholasClooney/blog.clooney.io/internal/config"
	"github.com/NicholasClooney/blog.clooney.io/internal/posts"
)

var fixedNow = func() time.Time {
	return time.Date(2024, 7, 19, 0, 0, 0, 0, time.UTC)
}

func testTracker() *config.Tracker {
	return &config.Tracker{
		Channels: []string{"twitter", "mastodon"},
		States:   []string{"draft", "planned", "shared"},
		RecencyBands: []config.RecencyBand{
			{Color: "green", MaxAge: 12 * time.Hour},
			{Color: "blue", MaxAge: 30 * 24 * time.Hour},
			{Color: "gray", Unbounded: true},
		},
	}
}

func testSnapshot() posts.Snapshot {
	return posts.Snapshot{Posts: []posts.Post{
		{
			Path: "/p/alpha.md", Slug: "alpha", Title: "Alpha",
			Social: map[string]posts.SocialStatus{
				"twitter": {Status: "shared", LastShared: "2024-07-18T12:00:00.000Z"},
			},
		},
		{Path: "/p/beta.md", Slug: "beta", Title: "Beta"},
		{Path: "/p/gamma.md", Slug: "gamma", Title: "Gamma"},
	}}
}

// mockCmd records the requests the App hands to its injected commands.
type mockCmd struct {
	loads int
	saves []posts.SaveRequest
}

func (m *mockCmd) loadPosts() tea.Cmd {
	m.loads++
	return func() tea.Msg { return PostsLoaded{Snapshot: testSnapshot()} }
}

func (m *mockCmd) saveStatus(req posts.SaveRequest) tea.Cmd {
	m.saves = append(m.saves, req)
	return func() tea.Msg { return StatusSaved{Request: req} }
}

func loadedApp(t *testing.T, mock *mockCmd) App {
	t.Helper()
	app := NewApp(AppConfig{
		Tracker:    testTracker(),
		LoadPosts:  mock.loadPosts,
		SaveStatus: mock.saveStatus,
		Now:        fixedNow,
	})
	app = update(app, tea.WindowSizeMsg{Width: 120, Height: 40})
	return update(app, PostsLoaded{Snapshot: testSnapshot()})
}

func update(app App, msg tea.Msg) App {
	m, _ := app.Update(msg)
	return m.(App)
}

func press(app App, keys ...tea.KeyMsg) (App, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		m, cmd = app.Update(k)
		app = m.(App)
	}
	return app, cmd
}

func typeText(app App, s string) App {
	for _, r := range s {
		if r == ' ' {
			app, _ = press(app, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		app, _ = press(app, runes(string(r)))
	}
	return app
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
	up        = tea.KeyMsg{Type: tea.KeyUp}
)

func TestAppInit(t *testing.T) {
	mock := &mockCmd{}
	app := NewApp(AppConfig{Tracker: testTracker(), LoadPosts: mock.loadPosts})

	if cmd := app.Init(); cmd == nil {
		t.Fatal("Init should return a command")
	}
	if mock.loads != 1 {
		t.Errorf("Init should call LoadPosts once, got %d", mock.loads)
	}
	if app.mode != modeLoading {
		t.Errorf("mode = %v, want loading", app.mode)
	}
	if !strings.Contains(app.View(), "Loading posts…") {
		t.Error("loading view should say so")
	}
}

func TestAppInitNilLoadPosts(t *testing.T) {
	app := NewApp(AppConfig{Tracker: testTracker()})
	if cmd := app.Init(); cmd != nil {
		t.Error("Init should return nil when LoadPosts is nil")
	}
}

func TestAppLoadError(t *testing.T) {
	app := NewApp(AppConfig{Tracker: testTracker(), Now: fixedNow})
	app = update(app, PostsLoaded{Err: errors.New("no such directory")})

	if app.mode != modeLoadError {
		t.Fatalf("mode = %v, want load-error", app.mode)
	}
	view := app.View()
	for _, want := range []string{"Failed to load posts: no such directory", "Fix the issue and restart the tracker."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	app, cmd := press(app, enter)
	if cmd != nil || app.mode != modeLoadError {
		t.Error("keys other than ctrl+c should be ignored after a load error")
	}
	if _, cmd := press(app, tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Error("ctrl+c should quit")
	} else if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}

func TestAppView(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	view := app.View()

	for _, want := range []string{
		"Post Share Tracker",
		"Tracking 3 posts across 2 channels.",
		"Channel activity",
		"twitter: 12 hours ago",
		"mastodon: never shared",
		"Choose a post",
		"1. Alpha",
		"shared (12h)",
		"filter (j/k navigate while empty)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestAppEmptySnapshot(t *testing.T) {
	app := NewApp(AppConfig{Tracker: testTracker(), Now: fixedNow})
	app = update(app, PostsLoaded{})
	if !strings.Contains(app.View(), "No posts found.") {
		t.Error("empty snapshot should say no posts were found")
	}
	if app, cmd := press(app, enter); cmd != nil || app.mode != modePost {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestAppSkippedPostsWarning(t *testing.T) {
	snap := testSnapshot()
	snap.Problems = []posts.LoadProblem{{Path: "/p/bad.md", Err: errors.New("yaml: bad")}}

	app := NewApp(AppConfig{Tracker: testTracker(), Now: fixedNow})
	app = update(app, PostsLoaded{Snapshot: snap})
	if !strings.Contains(app.View(), "Skipped 1 post with unreadable front matter.") {
		t.Error("view should count skipped posts")
	}
}

func TestAppNavigation(t *testing.T) {
	app := loadedApp(t, &mockCmd{})

	app, _ = press(app, runes("j"))
	if app.postList.Highlight() != 1 {
		t.Errorf("after j, highlight = %d, want 1", app.postList.Highlight())
	}
	app, _ = press(app, runes("k"))
	if app.postList.Highlight() != 0 {
		t.Errorf("after k, highlight = %d, want 0", app.postList.Highlight())
	}
	app, _ = press(app, up)
	if app.postList.Highlight() != 2 {
		t.Errorf("up from the top should wrap, got %d", app.postList.Highlight())
	}
	if app.postFilter != "" {
		t.Errorf("navigation keys should not type, filter = %q", app.postFilter)
	}
}

func TestAppFilterTyping(t *testing.T) {
	app := loadedApp(t, &mockCmd{})

	app = typeText(app, "be")
	if app.postFilter != "be" {
		t.Fatalf("filter = %q", app.postFilter)
	}
	if app.postList.Len() != 1 || app.postList.Items()[0].Value.Title != "Beta" {
		t.Errorf("filtered items = %+v", app.postList.Items())
	}

	// j is text once the filter is non-empty.
	app = typeText(app, "j")
	if app.postFilter != "bej" {
		t.Errorf("filter = %q, want %q", app.postFilter, "bej")
	}
	if !strings.Contains(app.View(), "No posts match the filter. Adjust your search or press Esc to clear.") {
		t.Error("view should show the no-match placeholder")
	}

	app, _ = press(app, backspace)
	if app.postFilter != "be" {
		t.Errorf("backspace should trim, filter = %q", app.postFilter)
	}

	app = typeText(app, " ")
	if app.postFilter != "be " {
		t.Errorf("space should append, filter = %q", app.postFilter)
	}

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true})
	if app.postFilter != "be " {
		t.Errorf("alt chords should not type, filter = %q", app.postFilter)
	}
}

func TestAppFilterMatchesStatusLabels(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = typeText(app, "shared 12h")
	if app.postList.Len() != 1 || app.postList.Items()[0].Key != "/p/alpha.md" {
		t.Errorf("status label filter items = %+v", app.postList.Items())
	}
}

func TestAppStatusFilterMatchesOnlyCurrentState(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app, _ = press(app, enter, enter)
	if app.mode != modeStatus || app.selectedChannel != "twitter" {
		t.Fatalf("mode = %v channel = %q", app.mode, app.selectedChannel)
	}

	app = typeText(app, "current")
	items := app.statusList.Items()
	if len(items) != 1 || items[0].Key != "shared" {
		t.Errorf("status items for %q = %+v, want only shared", app.statusFilter, items)
	}
}

func TestAppEscape(t *testing.T) {
	app := loadedApp(t, &mockCmd{})

	app, _ = press(app, enter)
	if app.mode != modeChannel || app.selectedPost != "/p/alpha.md" {
		t.Fatalf("enter should select the post, mode = %v post = %q", app.mode, app.selectedPost)
	}

	app = typeText(app, "mast")
	app, _ = press(app, esc)
	if app.mode != modeChannel || app.channelFilter != "" {
		t.Errorf("esc should clear the filter first, mode = %v filter = %q", app.mode, app.channelFilter)
	}

	// The cleared filter keeps mastodon highlighted.
	app, _ = press(app, enter)
	if app.mode != modeStatus || app.selectedChannel != "mastodon" {
		t.Fatalf("enter should select mastodon, mode = %v channel = %q", app.mode, app.selectedChannel)
	}
	app, _ = press(app, esc)
	if app.mode != modeChannel || app.selectedChannel != "" {
		t.Errorf("esc should step back to channel, mode = %v", app.mode)
	}
	app, _ = press(app, esc)
	if app.mode != modePost || app.selectedPost != "" {
		t.Errorf("esc should step back to post, mode = %v", app.mode)
	}
	app, _ = press(app, esc)
	if app.mode != modePost {
		t.Errorf("esc at the top level should stay, mode = %v", app.mode)
	}
}

func TestAppEscapeClearsMessageFirst(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = typeText(app, "alpha")
	app.message = "Updated Alpha: twitter → shared"

	app, _ = press(app, esc)
	if app.message != "" {
		t.Error("esc should clear the message")
	}
	if app.postFilter != "" {
		t.Error("esc should also clear the filter on the same press")
	}
}

func TestAppSelectStatusSaves(t *testing.T) {
	mock := &mockCmd{}
	app := loadedApp(t, mock)

	app, _ = press(app, enter, enter)
	if app.mode != modeStatus {
		t.Fatalf("mode = %v, want status", app.mode)
	}
	if item, _ := app.statusList.Selected(); item.Key != "shared" {
		t.Errorf("status list should start on the current state, got %q", item.Key)
	}
	view := app.View()
	if !strings.Contains(view, "Already current status") || !strings.Contains(view, "Set channel to this state") {
		t.Errorf("status rows should describe each state:\n%s", view)
	}

	app, _ = press(app, runes("k"))
	app, cmd := press(app, enter)
	if app.mode != modeSaving {
		t.Fatalf("mode = %v, want saving", app.mode)
	}
	if cmd == nil {
		t.Fatal("select should return the save command")
	}
	want := posts.SaveRequest{Path: "/p/alpha.md", Channel: "twitter", Status: "planned", AutoTimestamp: true}
	if len(mock.saves) != 1 || mock.saves[0] != want {
		t.Errorf("saves = %+v, want %+v", mock.saves, want)
	}

	app, cmd = press(app, enter)
	if cmd != nil || len(mock.saves) != 1 {
		t.Error("input should be ignored while saving")
	}
	if app.mode != modeSaving {
		t.Errorf("mode = %v, want saving", app.mode)
	}
}

func savingApp(t *testing.T) App {
	t.Helper()
	app := loadedApp(t, &mockCmd{})
	app, _ = press(app, enter, enter, enter)
	if app.mode != modeSaving {
		t.Fatalf("mode = %v, want saving", app.mode)
	}
	return app
}

func TestAppSaveSuccess(t *testing.T) {
	app := savingApp(t)
	req := app.pending

	snap := testSnapshot()
	app = update(app, StatusSaved{
		Request:  req,
		Result:   posts.SaveResult{Changed: true, Status: posts.SocialStatus{Status: "shared", LastShared: "2024-07-19T00:00:00.000Z"}},
		Snapshot: snap,
	})

	if app.mode != modeChannel || app.selectedChannel != "" || app.selectedPost != "/p/alpha.md" {
		t.Errorf("after save: mode = %v channel = %q post = %q", app.mode, app.selectedChannel, app.selectedPost)
	}
	if want := "Updated Alpha: twitter → shared, lastShared 2024-07-19T00:00:00.000Z"; app.message != want {
		t.Errorf("message = %q, want %q", app.message, want)
	}
	if item, _ := app.channelList.Selected(); item.Key != "twitter" {
		t.Errorf("channel highlight should be kept, got %q", item.Key)
	}
}

func TestAppSaveUnchanged(t *testing.T) {
	app := savingApp(t)
	app = update(app, StatusSaved{
		Request:  app.pending,
		Result:   posts.SaveResult{Status: posts.SocialStatus{Status: "shared"}},
		Snapshot: testSnapshot(),
	})
	if want := "No changes written. twitter already shared."; app.message != want {
		t.Errorf("message = %q, want %q", app.message, want)
	}
}

func TestAppSaveFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"write", errors.New("disk full"), "Failed to update twitter: disk full"},
		{"validation", &posts.ValidationError{Field: "status", Value: "viral"}, "Unsupported social status: viral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := savingApp(t)
			app = update(app, StatusSaved{Request: app.pending, SaveErr: tt.err})

			if app.actionErr != tt.want {
				t.Errorf("actionErr = %q, want %q", app.actionErr, tt.want)
			}
			if app.message != "" {
				t.Errorf("message should be empty, got %q", app.message)
			}
			if app.mode != modeChannel || app.selectedChannel != "" {
				t.Errorf("mode = %v channel = %q", app.mode, app.selectedChannel)
			}
			if !strings.Contains(app.View(), tt.want) {
				t.Error("view should show the error")
			}
		})
	}
}

func TestAppReloadFailureKeepsSnapshot(t *testing.T) {
	app := savingApp(t)
	app = update(app, StatusSaved{
		Request:   app.pending,
		Result:    posts.SaveResult{Changed: true, Status: posts.SocialStatus{Status: "shared"}},
		ReloadErr: errors.New("permission denied"),
	})

	if want := "Status updated but refreshing posts failed: permission denied"; app.actionErr != want {
		t.Errorf("actionErr = %q, want %q", app.actionErr, want)
	}
	if !strings.HasPrefix(app.message, "Updated Alpha") {
		t.Errorf("message = %q", app.message)
	}
	if len(app.snapshot.Posts) != 3 {
		t.Error("the previous snapshot should be kept")
	}
	if app.mode != modeChannel {
		t.Errorf("mode = %v, want channel", app.mode)
	}
}

func TestAppSelectedPostVanishes(t *testing.T) {
	app := savingApp(t)

	snap := testSnapshot()
	snap.Posts = snap.Posts[1:]
	app = update(app, StatusSaved{
		Request:  app.pending,
		Result:   posts.SaveResult{Changed: true, Status: posts.SocialStatus{Status: "shared"}},
		Snapshot: snap,
	})

	if app.mode != modePost || app.selectedPost != "" {
		t.Errorf("mode = %v post = %q, want a reset to post", app.mode, app.selectedPost)
	}
	if app.postList.Len() != 2 {
		t.Errorf("post list len = %d", app.postList.Len())
	}
}

func TestAppResizeKeepsState(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = typeText(app, "a")
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyDown})
	highlighted, _ := app.postList.Selected()

	app = update(app, tea.WindowSizeMsg{Width: 80, Height: 10})
	if app.postFilter != "a" {
		t.Errorf("filter = %q after resize", app.postFilter)
	}
	if got, _ := app.postList.Selected(); got.Key != highlighted.Key {
		t.Errorf("highlight moved from %q to %q", highlighted.Key, got.Key)
	}
	if rows := app.postList.ViewportRows(); rows != 3 {
		t.Errorf("short terminal should floor the viewport, got %d rows", rows)
	}
}

// drain runs cmd and everything it batches, feeding results into app.
// Spinner ticks are dropped.
func drain(t *testing.T, app App, cmd tea.Cmd) App {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
		default:
			m, next := app.Update(msg)
			app = m.(App)
			queue = append(queue, next)
		}
	}
	return app
}

func TestAppSharesPostEndToEnd(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) string {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	write("beta.md", "---\ntitle: Beta Post\nsocial:\n  twitter:\n    status: shared\n    lastShared: 2024-05-01T12:34:56.000Z\n---\nBeta body.\n")
	target := write("drafts/no-title.md", "---\nsocial:\n  twitter:\n    status: draft\n---\nDraft body.\n")

	cfg := testTracker()
	repo := posts.NewRepository(root, cfg)
	writer := posts.NewWriter(cfg)
	writer.Now = fixedNow

	app := NewApp(AppConfig{
		Tracker:    cfg,
		LoadPosts:  LoadPostsCmd(repo),
		SaveStatus: SaveStatusCmd(writer, repo),
		Now:        fixedNow,
	})
	app = update(app, tea.WindowSizeMsg{Width: 120, Height: 40})
	app = drain(t, app, app.Init())
	if app.mode != modePost || len(app.snapshot.Posts) != 2 {
		t.Fatalf("mode = %v posts = %d", app.mode, len(app.snapshot.Posts))
	}

	app = typeText(app, "no-title")
	app, _ = press(app, enter)
	if app.selectedPost != target {
		t.Fatalf("selected %q, want %q", app.selectedPost, target)
	}
	app, _ = press(app, enter)
	if app.selectedChannel != "twitter" {
		t.Fatalf("selected channel %q", app.selectedChannel)
	}
	app = typeText(app, "shared")
	app, cmd := press(app, enter)
	app = drain(t, app, cmd)

	if want := "Updated drafts/no-title: twitter → shared, lastShared 2024-07-19T00:00:00.000Z"; app.message != want {
		t.Errorf("message = %q, want %q", app.message, want)
	}
	if app.actionErr != "" {
		t.Errorf("unexpected error %q", app.actionErr)
	}
	if app.mode != modeChannel {
		t.Errorf("mode = %v, want channel", app.mode)
	}

	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	post, _ := snap.ByPath(target)
	if got := post.Social["twitter"]; got != (posts.SocialStatus{Status: "shared", LastShared: "2024-07-19T00:00:00.000Z"}) {
		t.Errorf("twitter = %+v", got)
	}
	if data, _ := os.ReadFile(target); !strings.HasSuffix(string(data), "---\nDraft body.\n") {
		t.Errorf("body changed:\n%s", data)
	}
}
