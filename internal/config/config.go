// Package config loads and validates the tracker configuration file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Field paths used in error messages.
const (
	channelsField = "social.channels"
	statesField   = "social.states"
	bandsField    = "channelActivity.recencyBands"
)

// Tracker is the validated tracker configuration. It is built once at
// startup and shared read-only by every component that needs it.
type Tracker struct {
	Channels     []string
	States       []string
	RecencyBands []RecencyBand
}

// RecencyBand colors channel activity no older than MaxAge.
// The last band may be Unbounded, catching everything older.
type RecencyBand struct {
	Color     string
	MaxAge    time.Duration
	Unbounded bool
}

// Error is a configuration problem. Field names the offending path, e.g.
// "channelActivity.recencyBands[1].maxAge", and is empty when the document
// itself could not be read.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "Config error: " + e.Message
}

func fieldErrorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Load reads and validates the config file at path.
func Load(path string) (*Tracker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("unable to read %s: %v", path, err)}
	}
	return Parse(data)
}

// Parse validates a YAML config document.
func Parse(data []byte) (*Tracker, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Message: "unable to parse tracker config."}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, &Error{Message: "unable to parse tracker config."}
	}
	root := doc.Content[0]

	channels, err := stringList(lookup(root, "social", "channels"), channelsField)
	if err != nil {
		return nil, err
	}
	states, err := stringList(lookup(root, "social", "states"), statesField)
	if err != nil {
		return nil, err
	}
	bands, err := recencyBands(lookup(root, "channelActivity", "recencyBands"), bandsField)
	if err != nil {
		return nil, err
	}

	return &Tracker{Channels: channels, States: states, RecencyBands: bands}, nil
}

// HasChannel reports whether name is a configured channel.
func (t *Tracker) HasChannel(name string) bool {
	return contains(t.Channels, name)
}

// HasState reports whether name is a configured state.
func (t *Tracker) HasState(name string) bool {
	return contains(t.States, name)
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

// lookup walks nested mappings by key. It returns nil when any step is
// missing or not a mapping.
func lookup(node *yaml.Node, keys ...string) *yaml.Node {
	for _, key := range keys {
		if node == nil || node.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				next = node.Content[i+1]
				break
			}
		}
		node = next
	}
	return node
}

// stringList validates a sequence of non-empty strings, trimming and
// deduplicating entries while keeping first-seen order.
func stringList(node *yaml.Node, label string) ([]string, error) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, fieldErrorf(label, "`%s` must be an array.", label)
	}

	seen := make(map[string]bool, len(node.Content))
	out := make([]string, 0, len(node.Content))
	for _, entry := range node.Content {
		if entry.Kind != yaml.ScalarNode || entry.ShortTag() != "!!str" {
			return nil, fieldErrorf(label, "`%s` entries must be non-empty strings.", label)
		}
		v := strings.TrimSpace(entry.Value)
		if v == "" {
			return nil, fieldErrorf(label, "`%s` entries must be non-empty strings.", label)
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, fieldErrorf(label, "`%s` must contain at least one entry.", label)
	}
	return out, nil
}

func recencyBands(node *yaml.Node, label string) ([]RecencyBand, error) {
	if node == nil || node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return nil, fieldErrorf(label, "`%s` must be a non-empty array.", label)
	}

	bands := make([]RecencyBand, 0, len(node.Content))
	var previous time.Duration
	last := len(node.Content) - 1
	for i, entry := range node.Content {
		path := fmt.Sprintf("%s[%d]", label, i)
		if entry.Kind != yaml.MappingNode {
			return nil, fieldErrorf(path, "`%s` must be an object with \"color\" and optional \"maxAge\".", path)
		}

		colorNode := lookup(entry, "color")
		color := ""
		if colorNode != nil && colorNode.Kind == yaml.ScalarNode && colorNode.ShortTag() == "!!str" {
			color = strings.TrimSpace(colorNode.Value)
		}
		if color == "" {
			return nil, fieldErrorf(path+".color", "`%s.color` must be a non-empty string.", path)
		}

		ageNode := lookup(entry, "maxAge")
		if ageNode == nil || ageNode.ShortTag() == "!!null" {
			if i != last {
				return nil, fieldErrorf(path+".maxAge", "`%s.maxAge` is missing. Only the last band may omit maxAge.", path)
			}
			bands = append(bands, RecencyBand{Color: color, Unbounded: true})
			continue
		}

		maxAge, err := bandMaxAge(ageNode, path+".maxAge")
		if err != nil {
			return nil, err
		}
		if i > 0 && maxAge <= previous {
			return nil, fieldErrorf(path+".maxAge", "`%s.maxAge` must be greater than the previous band.", path)
		}
		previous = maxAge
		bands = append(bands, RecencyBand{Color: color, MaxAge: maxAge})
	}
	return bands, nil
}

func bandMaxAge(node *yaml.Node, label string) (time.Duration, error) {
	if node.Kind != yaml.ScalarNode {
		return 0, fieldErrorf(label, "`%s` must be a string duration or number of milliseconds.", label)
	}

	switch node.ShortTag() {
	case "!!int", "!!float":
		var ms float64
		if err := node.Decode(&ms); err != nil {
			return 0, fieldErrorf(label, "`%s` must be a string duration or number of milliseconds.", label)
		}
		if ms <= 0 {
			return 0, fieldErrorf(label, "`%s` must be greater than zero.", label)
		}
		d, ok := millis(ms)
		if !ok {
			return 0, fieldErrorf(label, "`%s` resolved to an invalid duration.", label)
		}
		return d, nil
	case "!!str":
		d, err := ParseDuration(node.Value, "`"+label+"`")
		if err != nil {
			return 0, &Error{Field: label, Message: err.Error()}
		}
		if d <= 0 {
			return 0, fieldErrorf(label, "`%s` must be greater than zero.", label)
		}
		return d, nil
	default:
		return 0, fieldErrorf(label, "`%s` must be a string duration or number of milliseconds.", label)
	}
}
