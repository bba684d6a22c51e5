//go:build !unix

package lock

import (
	"fmt"
	"os"
	"time"
)

// Without flock a lock file older than this is assumed to belong to a
// process that died without cleaning up.
const staleLockTimeout = 24 * time.Hour

func tryLock(path string) (*os.File, error) {
	if info, err := os.Stat(path); err == nil {
		if time.Since(info.ModTime()) > staleLockTimeout {
			_ = os.Remove(path)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrHeld
		}
		return nil, fmt.Errorf("lock: create %s: %w", path, err)
	}
	return f, nil
}

func unlock(f *os.File, path string) error {
	_ = f.Close()
	return os.Remove(path)
}
