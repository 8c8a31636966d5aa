package e2e

import (
	"os"
	"path/filepath"
)

const fixtureConfig = `social:
  channels:
    - twitter
    - mastodon
  states:
    - draft
    - planned
    - shared
channelActivity:
  recencyBands:
    - color: green
      maxAge: 12 hours
    - color: blue
      maxAge: 30 days
    - color: gray
`

var fixturePosts = map[string]string{
	"2024/beta.md":       "---\ntitle: Beta Post\nsocial:\n  twitter:\n    status: shared\n    lastShared: 2024-05-01T12:34:56.000Z\n---\nBeta body.\n",
	"drafts/no-title.md": "---\nsocial:\n  twitter:\n    status: draft\n---\nDraft body.\n",
}

// seedFixture writes a config and a small posts tree under dir and returns
// their paths.
func seedFixture(dir string) (configPath, postsDir string, err error) {
	configPath = filepath.Join(dir, "config.yaml")
	postsDir = filepath.Join(dir, "posts")

	if err := os.WriteFile(configPath, []byte(fixtureConfig), 0o644); err != nil {
		return "", "", err
	}
	for rel, content := range fixturePosts {
		path := filepath.Join(postsDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", "", err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", "", err
		}
	}
	return configPath, postsDir, nil
}
