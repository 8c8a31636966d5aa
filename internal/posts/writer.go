package posts

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NicholasClooney/blog.clooney.io/internal/config"
)

// SharedState is the status that gets an automatic lastShared timestamp.
const SharedState = "shared"

// ValidationError rejects a save before any file is touched.
type ValidationError struct {
	Field string // "channel" or "status"
	Value string
}

func (e *ValidationError) Error() string {
	if e.Field == "channel" {
		return "Unknown social channel: " + e.Value
	}
	return "Unsupported social status: " + e.Value
}

// SaveRequest describes one channel update.
type SaveRequest struct {
	Path       string
	Channel    string
	Status     string
	LastShared string
	Notes      string

	// DryRun computes the result without writing.
	DryRun bool
	// AutoTimestamp stamps LastShared with the current time when the new
	// status is shared and no LastShared was given.
	AutoTimestamp bool
}

// SaveResult reports what a save did, or would do in a dry run.
type SaveResult struct {
	Changed bool
	Status  SocialStatus
	Content string
}

// Summary describes the result for a post titled title, e.g.
// "Updated My Post: twitter → shared, lastShared 2024-07-19T00:00:00.000Z".
func (r SaveResult) Summary(title, channel string) string {
	if !r.Changed {
		return fmt.Sprintf("No changes written. %s already %s.", channel, r.Status.Status)
	}
	msg := fmt.Sprintf("Updated %s: %s → %s", title, channel, r.Status.Status)
	if r.Status.LastShared != "" {
		msg += ", lastShared " + r.Status.LastShared
	}
	return msg
}

// Writer updates the social block of a post's front matter.
type Writer struct {
	cfg *config.Tracker

	// Now is the timestamp source for AutoTimestamp.
	Now func() time.Time

	write func(path string, data []byte, perm os.FileMode) error
}

// NewWriter returns a Writer validating against cfg.
func NewWriter(cfg *config.Tracker) *Writer {
	return &Writer{cfg: cfg, Now: time.Now, write: atomicWriteFile}
}

// Save replaces the status entry for req.Channel and writes the file when
// its content changes. Other channels, other keys and the body are kept.
func (w *Writer) Save(ctx context.Context, req SaveRequest) (SaveResult, error) {
	if !w.cfg.HasChannel(req.Channel) {
		return SaveResult{}, &ValidationError{Field: "channel", Value: req.Channel}
	}
	if !w.cfg.HasState(req.Status) {
		return SaveResult{}, &ValidationError{Field: "status", Value: req.Status}
	}

	next := SocialStatus{
		Status:     req.Status,
		LastShared: strings.TrimSpace(req.LastShared),
		Notes:      strings.TrimSpace(req.Notes),
	}
	if next.LastShared == "" && req.AutoTimestamp && req.Status == SharedState {
		next.LastShared = FormatTimestamp(w.Now())
	}

	if err := ctx.Err(); err != nil {
		return SaveResult{}, err
	}

	raw, err := os.ReadFile(req.Path)
	if err != nil {
		return SaveResult{}, fmt.Errorf("read %s: %w", req.Path, err)
	}
	info, err := os.Stat(req.Path)
	if err != nil {
		return SaveResult{}, fmt.Errorf("stat %s: %w", req.Path, err)
	}
	original := string(raw)

	doc, err := parseDocument(original)
	if err != nil {
		return SaveResult{}, fmt.Errorf("parse %s: %w", req.Path, err)
	}

	social := mappingValue(doc.header, "social")
	if entryEquals(mappingValue(social, req.Channel), next) {
		return SaveResult{Changed: false, Status: next, Content: original}, nil
	}
	if social == nil || social.Kind != yaml.MappingNode {
		social = emptyMapping()
		setMappingValue(doc.header, "social", social)
	}
	setMappingValue(social, req.Channel, statusNode(next))
	orderChannels(social, w.cfg.Channels)

	content, err := doc.render()
	if err != nil {
		return SaveResult{}, fmt.Errorf("render %s: %w", req.Path, err)
	}
	result := SaveResult{Changed: content != original, Status: next, Content: content}

	if result.Changed && !req.DryRun {
		if err := w.write(req.Path, []byte(content), info.Mode().Perm()); err != nil {
			return SaveResult{}, fmt.Errorf("write %s: %w", req.Path, err)
		}
	}
	return result, nil
}

func statusNode(s SocialStatus) *yaml.Node {
	n := emptyMapping()
	n.Content = append(n.Content, stringNode("status"), stringNode(s.Status))
	if s.LastShared != "" {
		n.Content = append(n.Content, stringNode("lastShared"), stringNode(s.LastShared))
	}
	if s.Notes != "" {
		n.Content = append(n.Content, stringNode("notes"), stringNode(s.Notes))
	}
	return n
}

// entryEquals reports whether an existing channel entry already holds
// exactly the fields of s.
func entryEquals(entry *yaml.Node, s SocialStatus) bool {
	if entry == nil || entry.Kind != yaml.MappingNode {
		return false
	}
	want := map[string]string{"status": s.Status}
	if s.LastShared != "" {
		want["lastShared"] = s.LastShared
	}
	if s.Notes != "" {
		want["notes"] = s.Notes
	}
	if len(entry.Content) != 2*len(want) {
		return false
	}
	for i := 0; i+1 < len(entry.Content); i += 2 {
		key, value := entry.Content[i], entry.Content[i+1]
		v, ok := want[key.Value]
		if !ok || value.Kind != yaml.ScalarNode || value.Value != v {
			return false
		}
		if tag := value.ShortTag(); tag != "!!str" && tag != "!!timestamp" {
			return false
		}
	}
	return true
}

// orderChannels puts configured channels first, in configured order, and
// keeps any other keys after them in their original order.
func orderChannels(social *yaml.Node, channels []string) {
	type pair struct{ key, value *yaml.Node }
	pairs := make([]pair, 0, len(social.Content)/2)
	for i := 0; i+1 < len(social.Content); i += 2 {
		pairs = append(pairs, pair{social.Content[i], social.Content[i+1]})
	}

	rank := make(map[string]int, len(channels))
	for i, c := range channels {
		rank[c] = i
	}

	ordered := make([]*yaml.Node, 0, len(social.Content))
	for _, c := range channels {
		for _, p := range pairs {
			if p.key.Value == c {
				ordered = append(ordered, p.key, p.value)
				break
			}
		}
	}
	for _, p := range pairs {
		if _, known := rank[p.key.Value]; !known {
			ordered = append(ordered, p.key, p.value)
		}
	}
	social.Content = ordered
}
