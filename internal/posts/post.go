// Package posts reads Markdown posts and writes their social sharing status.
package posts

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Post is a Markdown file under the posts root. Posts are rebuilt on every
// load and never mutated in place.
type Post struct {
	Slug  string
	Title string
	// Path is the absolute file path. It identifies the post for lookups
	// and writes.
	Path string

	CreatedAt    time.Time
	HasCreatedAt bool

	// Social holds only configured channels with a recognized status.
	Social map[string]SocialStatus
}

// SocialStatus is one channel's sharing state. Empty LastShared or Notes
// means the field is not set.
type SocialStatus struct {
	Status     string
	LastShared string
	Notes      string
}

// Channel returns the status for channel, if the post has one.
func (p Post) Channel(channel string) (SocialStatus, bool) {
	s, ok := p.Social[channel]
	return s, ok
}

// LoadProblem is a post that was skipped because its front matter could
// not be parsed.
type LoadProblem struct {
	Path string
	Err  error
}

func (p LoadProblem) Error() string {
	return fmt.Sprintf("%s: %v", p.Path, p.Err)
}

// Snapshot is the result of one repository load.
type Snapshot struct {
	Posts    []Post
	Problems []LoadProblem
}

// ByPath returns the post at path.
func (s Snapshot) ByPath(path string) (Post, bool) {
	for _, p := range s.Posts {
		if p.Path == path {
			return p, true
		}
	}
	return Post{}, false
}

// Find resolves ref as an absolute path, a path relative to root, or a slug.
func (s Snapshot) Find(root, ref string) (Post, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Post{}, false
	}

	candidates := []string{ref}
	if !filepath.IsAbs(ref) {
		candidates = append(candidates, filepath.Join(root, ref))
		if !strings.HasSuffix(ref, ".md") {
			candidates = append(candidates, filepath.Join(root, ref+".md"))
		}
	}
	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		if p, ok := s.ByPath(abs); ok {
			return p, true
		}
	}

	slug := strings.TrimSuffix(filepath.ToSlash(ref), ".md")
	for _, p := range s.Posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}
