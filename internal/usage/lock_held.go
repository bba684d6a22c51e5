package usage

import "fmt"

// LockHeld is reported when another process owns the command's lock file.
// It exits 0: skipping a run already in progress is not a failure.
func LockHeld(command string) *Error {
	return &Error{
		Kind:    ErrLockHeld,
		Message: "Another process holds the lock!",
		Detail:  fmt.Sprintf("lock: %s", command),
	}
}
