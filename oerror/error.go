package oerror

import "fmt"

// StrafeError is an error raised by strafe itself, as opposed to one passed through from a
// collaborator such as the file system.
type StrafeError struct {
	Err string
}

// New returns a new StrafeError with the message formatted from format and args.
func New(format string, args ...any) *StrafeError {
	if len(args) == 0 {
		return &StrafeError{Err: format}
	}
	return &StrafeError{Err: fmt.Sprintf(format, args...)}
}

func (e *StrafeError) Error() string {
	return e.Err
}
