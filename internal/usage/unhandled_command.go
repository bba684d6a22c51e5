package usage

import "fmt"

// UnhandledCommand is reported when a route matched but no handler is mapped
// for its dispatch key.
func UnhandledCommand(command string) *Error {
	return &Error{
		Kind:    ErrUnhandledCommand,
		Message: fmt.Sprintf("Unhandled command %q invoked", command),
		Detail:  "The command does not have a registered handler.",
	}
}
