package posts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/NicholasClooney/blog.clooney.io/internal/config"
)

// defaultConcurrency bounds concurrent file reads during a load.
const defaultConcurrency = 8

// Repository discovers and parses the posts under a root directory.
type Repository struct {
	root string
	cfg  *config.Tracker

	// stat resolves filesystem timestamps. Tests replace it.
	stat        func(path string, info fs.FileInfo) fileTimes
	concurrency int
}

// NewRepository returns a repository for the posts under root.
func NewRepository(root string, cfg *config.Tracker) *Repository {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Repository{
		root:        filepath.Clean(root),
		cfg:         cfg,
		stat:        statTimes,
		concurrency: defaultConcurrency,
	}
}

// Root returns the absolute posts root.
func (r *Repository) Root() string {
	return r.root
}

// Load reads every Markdown file under the root. A missing root or an
// unreadable file fails the whole load; a post whose front matter does not
// parse is skipped and reported in Snapshot.Problems.
func (r *Repository) Load(ctx context.Context) (Snapshot, error) {
	paths, err := r.discover()
	if err != nil {
		return Snapshot{}, err
	}

	type result struct {
		post    Post
		problem *LoadProblem
	}
	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			post, err := r.loadPost(path)
			var problem LoadProblem
			if errors.As(err, &problem) {
				results[i] = result{problem: &problem}
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = result{post: post}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Posts: make([]Post, 0, len(results))}
	for _, res := range results {
		if res.problem != nil {
			snap.Problems = append(snap.Problems, *res.problem)
			continue
		}
		snap.Posts = append(snap.Posts, res.post)
	}
	SortPosts(snap.Posts)
	return snap, nil
}

// discover lists Markdown files under the root, skipping hidden entries.
func (r *Repository) discover() ([]string, error) {
	info, err := os.Stat(r.root)
	if err != nil {
		return nil, fmt.Errorf("posts directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("posts directory %s is not a directory", r.root)
	}

	var paths []string
	err = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != r.root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover posts: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// loadPost reads one file. Front matter that does not parse is reported
// as a LoadProblem.
func (r *Repository) loadPost(path string) (Post, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Post{}, fmt.Errorf("read %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Post{}, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, err := parseDocument(string(content))
	if err != nil {
		return Post{}, LoadProblem{Path: path, Err: err}
	}

	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	slug := filepath.ToSlash(rel)
	slug = slug[:len(slug)-len(filepath.Ext(slug))]

	post := Post{
		Slug:   slug,
		Title:  slug,
		Path:   path,
		Social: r.normalizeSocial(mappingValue(doc.header, "social")),
	}
	if title, ok := scalarString(mappingValue(doc.header, "title")); ok && strings.TrimSpace(title) != "" {
		post.Title = strings.TrimSpace(title)
	}

	if t, ok := frontMatterDate(doc.header); ok {
		post.CreatedAt, post.HasCreatedAt = t, true
	} else if t, ok := r.stat(path, info).created(); ok {
		post.CreatedAt, post.HasCreatedAt = t, true
	}
	return post, nil
}

func frontMatterDate(header *yaml.Node) (time.Time, bool) {
	for _, key := range []string{"date", "createdAt"} {
		v, ok := scalarString(mappingValue(header, key))
		if !ok {
			continue
		}
		if t, ok := ParseTimestamp(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeSocial keeps configured channels whose entry is a mapping with a
// configured status. Everything else is dropped.
func (r *Repository) normalizeSocial(node *yaml.Node) map[string]SocialStatus {
	social := make(map[string]SocialStatus)
	if node == nil || node.Kind != yaml.MappingNode {
		return social
	}
	for _, channel := range r.cfg.Channels {
		entry := mappingValue(node, channel)
		if entry == nil || entry.Kind != yaml.MappingNode {
			continue
		}
		status, ok := scalarString(mappingValue(entry, "status"))
		if !ok || !r.cfg.HasState(status) {
			continue
		}
		s := SocialStatus{Status: status}
		if v, ok := scalarString(mappingValue(entry, "lastShared")); ok {
			s.LastShared = v
		}
		if v, ok := scalarString(mappingValue(entry, "notes")); ok {
			s.Notes = v
		}
		social[channel] = s
	}
	return social
}

// SortPosts orders posts newest first. Undated posts go last; ties fall
// back to case-insensitive title, then path.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.HasCreatedAt != b.HasCreatedAt {
			return a.HasCreatedAt
		}
		if a.HasCreatedAt && !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if ta != tb {
			return ta < tb
		}
		return a.Path < b.Path
	})
}
