package usage

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrUnhandledCommand
	ErrLockHeld
	ErrInvalidArgument
	ErrInvalidConfigKey
)

// Exit codes:
//
//	Exit 0: Benign no-ops
//	  - Lock held by another process
//
//	Exit 1: Command resolution errors
//	  - Unknown errors
//	  - Unhandled command
//	  - Invalid config key
//
//	Exit 2: User input errors
//	  - Invalid argument
var exitCodes = map[ErrorKind]int{
	ErrUnknown:          1,
	ErrUnhandledCommand: 1,
	ErrLockHeld:         0,
	ErrInvalidArgument:  2,
	ErrInvalidConfigKey: 1,
}

// Error represents a user-facing usage error with semantic type information.
// Usage errors are reported to the console and turned into an exit status;
// they are never returned up the call stack as failures.
type Error struct {
	Kind    ErrorKind
	Message string
	Detail  string // optional second line
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// ExitCode returns the process exit status for this error.
func (e *Error) ExitCode() int {
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
