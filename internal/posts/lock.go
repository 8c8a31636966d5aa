package posts

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked means another tracker holds the lock for the same posts root.
var ErrLocked = errors.New("another tracker is already editing")

// Lock is an advisory lock on a posts root, held while a tracker edits it.
type Lock struct {
	root string
	lock *flock.Flock
}

// LockPath returns the lock file for root inside dir. The posts tree itself
// is never written to.
func LockPath(dir, root string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(filepath.Clean(root)))
	return filepath.Join(dir, fmt.Sprintf("%x.lock", h.Sum64()))
}

// DefaultLockDir is the per-user directory holding tracker locks.
func DefaultLockDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get user cache dir: %w", err)
	}
	return filepath.Join(base, "post-share-tracker"), nil
}

// AcquireLock takes the lock for root without blocking.
func AcquireLock(dir, root string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	l := &Lock{root: root, lock: flock.New(LockPath(dir, root))}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", root, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrLocked, root)
	}
	return l, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	return l.lock.Unlock()
}
