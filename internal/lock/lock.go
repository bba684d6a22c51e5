// Package lock provides the non-blocking single-instance lock used for
// cron-style runs: one process per command name at a time.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ErrHeld is returned by TryAcquire when another process owns the lock.
var ErrHeld = errors.New("lock: held by another process")

// Lock is an acquired lock file. Release it when the run ends.
type Lock struct {
	file *os.File
	path string
}

// Path returns the lock file used for name inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+".lock")
}

// TryAcquire takes the lock for name without waiting. dir is created if
// missing. ErrHeld means another process is running the same command.
func TryAcquire(dir, name string) (*Lock, error) {
	if name == "" {
		return nil, errors.New("lock: empty name")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("lock: create directory: %w", err)
	}

	path := Path(dir, name)
	f, err := tryLock(path)
	if err != nil {
		return nil, err
	}

	// Write our PID to the lock file for debugging
	_ = f.Truncate(0)
	_, _ = f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0)

	return &Lock{file: f, path: path}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release gives the lock up. Calling it twice is harmless.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unlock(l.file, l.path)
	l.file = nil
	return err
}
