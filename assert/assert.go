package assert

import "github.com/oomph-ac/strafe/oerror"

// IsTrue panics with a StrafeError if ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
