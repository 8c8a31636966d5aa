package posts

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// isoMillis matches JavaScript's Date.toISOString, the format the tracker
// writes and normalizes dates to.
const isoMillis = "2006-01-02T15:04:05.000Z"

var errNotMapping = errors.New("front matter is not a mapping")

// document is a Markdown file split into its front matter and body.
type document struct {
	header *yaml.Node // mapping node
	body   string
	eol    string // line ending of the first line
}

// splitFrontMatter separates a leading "---" block from the body. Files
// without a closed block have no front matter.
func splitFrontMatter(content string) (header, body string, ok bool) {
	first, rest, found := strings.Cut(content, "\n")
	if !found || strings.TrimRight(first, "\r") != delimiter {
		return "", content, false
	}

	offset := 0
	for offset <= len(rest) {
		line, after, more := strings.Cut(rest[offset:], "\n")
		if strings.TrimRight(line, "\r") == delimiter {
			header = rest[:offset]
			if more {
				return header, after, true
			}
			return header, "", true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", content, false
}

// parseDocument parses content into front matter and body.
func parseDocument(content string) (*document, error) {
	eol := lineEnding(content)
	header, body, ok := splitFrontMatter(content)
	if !ok {
		return &document{header: emptyMapping(), body: content, eol: eol}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(header), &root); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return &document{header: emptyMapping(), body: body, eol: eol}, nil
	}
	mapping := root.Content[0]
	if mapping.Kind == yaml.ScalarNode && mapping.ShortTag() == "!!null" {
		return &document{header: emptyMapping(), body: body, eol: eol}, nil
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, errNotMapping
	}
	return &document{header: mapping, body: body, eol: eol}, nil
}

// render serializes the document back to Markdown.
// The delimiters and header use the line ending the file started with.
func (d *document) render() (string, error) {
	eol := d.eol
	if eol == "" {
		eol = "\n"
	}

	var header bytes.Buffer
	if len(d.header.Content) > 0 {
		enc := yaml.NewEncoder(&header)
		enc.SetIndent(2)
		if err := enc.Encode(d.header); err != nil {
			return "", fmt.Errorf("encode front matter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode front matter: %w", err)
		}
	}

	var b strings.Builder
	b.WriteString(delimiter + eol)
	if eol == "\n" {
		b.Write(header.Bytes())
	} else {
		b.WriteString(strings.ReplaceAll(header.String(), "\n", eol))
	}
	b.WriteString(delimiter + eol)
	b.WriteString(d.body)
	return b.String(), nil
}

// lineEnding reports "\r\n" when the first line of content ends with it.
func lineEnding(content string) string {
	if first, _, found := strings.Cut(content, "\n"); found && strings.HasSuffix(first, "\r") {
		return "\r\n"
	}
	return "\n"
}

func emptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// mappingValue returns the value node for key, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// setMappingValue replaces the value for key, appending the pair if the
// key is new.
func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, stringNode(key), value)
}

// stringNode builds a scalar that reads back as the same string. Values
// that look like timestamps stay plain so they keep their date form.
func stringNode(v string) *yaml.Node {
	tag := "!!str"
	if _, ok := parseYAMLTimestamp(v); ok {
		tag = "!!timestamp"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}

// scalarString returns a string scalar's value. Timestamp scalars come back
// as ISO 8601 UTC with milliseconds.
func scalarString(n *yaml.Node) (string, bool) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", false
	}
	switch n.ShortTag() {
	case "!!str":
		return n.Value, true
	case "!!timestamp":
		t, ok := parseYAMLTimestamp(n.Value)
		if !ok {
			return n.Value, true
		}
		return t.UTC().Format(isoMillis), true
	}
	return "", false
}

// yamlTimestampLayouts mirrors the timestamp forms YAML resolves implicitly.
var yamlTimestampLayouts = []string{
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

func parseYAMLTimestamp(s string) (time.Time, bool) {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return time.Time{}, false
	}
	for _, layout := range yamlTimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
